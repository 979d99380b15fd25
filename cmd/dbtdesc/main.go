// Package main provides the dbtdesc CLI, a description linter for dbt
// schema files.
package main

import (
	"os"

	"github.com/BEEQUIP/dbt-yaml-description-validator/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
