// Package patch rewrites description values directly in raw schema file
// text, so fixes never disturb comments, key order, or scalar quoting the
// way a parse-and-reserialize round trip would.
//
// The patcher is line oriented and understands two shapes:
//
//	description: inline value        # fixed in place on the line
//	description: |                   # block scalar: de-indented, fixed,
//	  text over                      # re-indented and spliced back, but
//	  several lines                  # only when the fix changed something
//
// It deliberately supports only the default two-space indentation step.
// Anything else (explicit indentation indicators such as |2, tab
// indentation, under-indented lines) is left byte-for-byte untouched:
// a description the patcher cannot place exactly is not patched at all.
package patch

import (
	"regexp"
	"strings"

	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint"
)

// descriptionKey matches a description key at any indentation, capturing
// everything through the colon and its following spacing, then the rest of
// the line.
var descriptionKey = regexp.MustCompile(`^(\s*description:\s*)(.*)$`)

// blockIndicators are the literal block scalar openers.
var blockIndicators = map[string]bool{
	"|": true, "|-": true, "|+": true,
	">": true, ">-": true, ">+": true,
}

// state of the line machine.
type state int

const (
	stateScanning state = iota
	stateInBlock
	stateDone
)

// blockSpan tracks an open block scalar while its lines are collected.
type blockSpan struct {
	keyIndent int      // indentation of the description key line
	lines     []string // raw block lines, blanks included
}

// machine applies one fix across one file's lines.
type machine struct {
	fix      lint.FixFunc
	state    state
	out      []string
	block    blockSpan
	modified bool
}

// Apply runs fix over every description value in src and returns the patched
// text plus whether anything changed. When nothing changes, src is returned
// as-is, so the result is byte-identical to the input.
func Apply(src string, fix lint.FixFunc) (string, bool) {
	m := &machine{fix: fix, state: stateScanning}
	lines := strings.Split(src, "\n")
	m.out = make([]string, 0, len(lines))

	i := 0
	for m.state != stateDone {
		if i >= len(lines) {
			if m.state == stateInBlock {
				m.flushBlock()
			}
			m.state = stateDone
			continue
		}
		line := lines[i]
		switch m.state {
		case stateScanning:
			m.scanLine(line)
			i++
		case stateInBlock:
			if blockIncludes(line, m.block.keyIndent) {
				m.block.lines = append(m.block.lines, line)
				i++
				continue
			}
			// The boundary line is not consumed here: it may itself
			// introduce a description, so the scanning state gets it.
			m.flushBlock()
			m.state = stateScanning
		}
	}

	if !m.modified {
		return src, false
	}
	return strings.Join(m.out, "\n"), true
}

// scanLine handles one line in the scanning state.
func (m *machine) scanLine(line string) {
	match := descriptionKey.FindStringSubmatch(line)
	if match == nil {
		m.out = append(m.out, line)
		return
	}
	prefix, value := match[1], match[2]

	trimmed := strings.TrimRight(value, " \t")
	if trimmed == "" || blockIndicators[trimmed] {
		// The value lives on the following lines; the key line itself
		// never changes.
		m.out = append(m.out, line)
		m.block = blockSpan{keyIndent: indentOf(line)}
		m.state = stateInBlock
		return
	}

	// Inline scalar: the fix sees the raw remainder, quotes and all.
	fixed := m.fix(value)
	if fixed != value {
		m.modified = true
		m.out = append(m.out, prefix+fixed)
		return
	}
	m.out = append(m.out, line)
}

// blockIncludes reports whether line is part of a block opened by a key at
// keyIndent. Blank lines always are, as are lines indented deeper than the
// key. A non-blank line at or above the key's level ends the block when it
// is flush left or introduces a new key.
func blockIncludes(line string, keyIndent int) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	indent := indentOf(line)
	if indent > keyIndent {
		return true
	}
	if indent == 0 {
		return false
	}
	return !strings.Contains(line, ":")
}

// flushBlock hands the collected block text to the fix and splices the
// result back, or re-emits the original lines when nothing changed or the
// block is outside the supported shape.
func (m *machine) flushBlock() {
	lines := m.block.lines
	inner := m.block.keyIndent + 2

	// Trailing blank lines are not description text; they go back verbatim
	// regardless of what the fix does to the rest.
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}

	text, ok := deindent(lines[:end], inner)
	if !ok || strings.TrimSpace(text) == "" {
		m.out = append(m.out, lines...)
		return
	}

	fixed := m.fix(text)
	if fixed == text {
		m.out = append(m.out, lines...)
		return
	}

	m.modified = true
	indent := strings.Repeat(" ", inner)
	for _, part := range strings.Split(fixed, "\n") {
		if part == "" {
			m.out = append(m.out, "")
			continue
		}
		m.out = append(m.out, indent+part)
	}
	m.out = append(m.out, lines[end:]...)
}

// deindent strips exactly width leading spaces from every non-blank line and
// joins the result. It reports failure when any non-blank line is indented
// with anything else (tabs, shallower indentation): such a block cannot be
// re-indented without corrupting it, so it must stay untouched.
func deindent(lines []string, width int) (string, bool) {
	prefix := strings.Repeat(" ", width)
	parts := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			parts[i] = ""
			continue
		}
		if !strings.HasPrefix(line, prefix) {
			return "", false
		}
		parts[i] = line[width:]
	}
	return strings.Join(parts, "\n"), true
}

// indentOf counts leading horizontal whitespace characters.
func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
