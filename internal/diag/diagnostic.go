// Package diag defines the diagnostic and fix data model shared by the
// rendering pipeline and the CLI. Structures here are deterministic and
// data-only; rendering fixes lives in internal/render, applying them in
// internal/fix.
package diag

import (
	"mend/internal/source"
)

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit replaces the text covered by Span with NewText. OldText is an
// optional guard: when non-empty, the fix engine verifies the current
// buffer content before applying the edit.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixApplicability states how confidently a fix can be applied unattended.
type FixApplicability uint8

const (
	FixApplicabilityAlwaysSafe FixApplicability = iota
	FixApplicabilitySafeWithHeuristics
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	}
	return "unknown"
}

// Fix is a concrete automated correction: rendered replacement text already
// turned into edits.
type Fix struct {
	ID            string
	Title         string
	Applicability FixApplicability
	IsPreferred   bool
	Edits         []TextEdit
}

// Diagnostic is one finding produced by a rule match.
type Diagnostic struct {
	Severity Severity
	RuleID   string
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
