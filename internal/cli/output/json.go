package output

// JSON output shapes shared by the check, fix and watch commands.

// CheckOutput is the machine-readable result of a check run.
type CheckOutput struct {
	RunID         string          `json:"run_id"`
	Rule          string          `json:"rule"`
	FilesScanned  int             `json:"files_scanned"`
	Violations    []RuleViolation `json:"violations"`
	ParseFailures []FileFailure   `json:"parse_failures,omitempty"`
	Summary       CheckSummary    `json:"summary"`
	DurationMS    int64           `json:"duration_ms"`
}

// RuleViolation is one description that failed the selected rule.
type RuleViolation struct {
	Path   string `json:"path"`
	Kind   string `json:"kind"`
	Entity string `json:"entity"`
	Rule   string `json:"rule"`
}

// FileFailure is a file the run could not process, with the reason.
type FileFailure struct {
	Path   string `json:"path"`
	Detail string `json:"detail"`
}

// CheckSummary aggregates a check run for quick consumption.
type CheckSummary struct {
	Violations    int  `json:"violations"`
	ParseFailures int  `json:"parse_failures"`
	Clean         bool `json:"clean"`
}

// FixOutput is the machine-readable result of a fix run.
type FixOutput struct {
	RunID        string        `json:"run_id"`
	Rule         string        `json:"rule"`
	DryRun       bool          `json:"dry_run"`
	FilesScanned int           `json:"files_scanned"`
	Modified     []string      `json:"modified"`
	Failures     []FileFailure `json:"failures,omitempty"`
	DurationMS   int64         `json:"duration_ms"`
}
