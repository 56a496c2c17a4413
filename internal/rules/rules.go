// Package rules loads and validates rule files. A rule pairs a search
// pattern with a replacement (fix) pattern; parsing either pattern into a
// tree is the matcher's job, so this package only checks the textual
// contract: known languages, parsable severities, and fix metavariables
// that the search pattern actually binds.
package rules

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"mend/internal/diag"
	"mend/internal/pattern"
	"mend/internal/render"
)

// Rule describes one finding and its optional fix pattern.
type Rule struct {
	ID            string   `toml:"id"`
	Languages     []string `toml:"languages"`
	Severity      string   `toml:"severity"`
	Message       string   `toml:"message"`
	Pattern       string   `toml:"pattern"`
	Fix           string   `toml:"fix"`
	Applicability string   `toml:"applicability"`
}

// File is a parsed rule file.
type File struct {
	Rules []Rule `toml:"rule"`
}

// Load reads and validates a TOML rule file.
func Load(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(content)
}

// Parse decodes and validates rule-file content.
func Parse(content []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// ByID returns the rule with the given ID, if present.
func (f *File) ByID(id string) (*Rule, bool) {
	for i := range f.Rules {
		if f.Rules[i].ID == id {
			return &f.Rules[i], true
		}
	}
	return nil, false
}

func (f *File) validate() error {
	seen := make(map[string]bool)
	for i := range f.Rules {
		r := &f.Rules[i]
		if r.ID == "" {
			return fmt.Errorf("rules: rule %d has no id", i)
		}
		if seen[r.ID] {
			return fmt.Errorf("rules: duplicate rule id %q", r.ID)
		}
		seen[r.ID] = true

		if err := r.validate(); err != nil {
			return fmt.Errorf("rules: rule %q: %w", r.ID, err)
		}
	}
	return nil
}

func (r *Rule) validate() error {
	if len(r.Languages) == 0 {
		return fmt.Errorf("no languages")
	}
	for _, l := range r.Languages {
		if _, ok := render.ParseLanguage(l); !ok {
			return fmt.Errorf("unknown language %q", l)
		}
	}
	if r.Pattern == "" {
		return fmt.Errorf("empty pattern")
	}
	if r.Severity != "" {
		if _, err := diag.ParseSeverity(r.Severity); err != nil {
			return err
		}
	}
	if r.Applicability != "" {
		if _, err := ParseApplicability(r.Applicability); err != nil {
			return err
		}
	}

	if r.Fix != "" {
		bound := make(map[string]bool)
		for _, mv := range pattern.ScanMetavars(r.Pattern) {
			bound[mv] = true
			// $...X also answers for $X spelled without the ellipsis
			bound[strings.Replace(mv, "$...", "$", 1)] = true
		}
		for _, mv := range pattern.ScanMetavars(r.Fix) {
			if !bound[mv] && !bound[strings.Replace(mv, "$...", "$", 1)] {
				return fmt.Errorf("fix references %s which the pattern never binds", mv)
			}
		}
	}
	return nil
}

// SeverityOrDefault parses the rule severity, defaulting to warning.
func (r *Rule) SeverityOrDefault() diag.Severity {
	if r.Severity == "" {
		return diag.SevWarning
	}
	sev, err := diag.ParseSeverity(r.Severity)
	if err != nil {
		return diag.SevWarning
	}
	return sev
}

// ApplicabilityOrDefault parses the rule applicability, defaulting to
// safe-with-heuristics so unreviewed fixes never auto-apply in --all mode.
func (r *Rule) ApplicabilityOrDefault() diag.FixApplicability {
	if r.Applicability == "" {
		return diag.FixApplicabilitySafeWithHeuristics
	}
	app, err := ParseApplicability(r.Applicability)
	if err != nil {
		return diag.FixApplicabilitySafeWithHeuristics
	}
	return app
}

// ParseApplicability converts the rule-file spelling into an applicability.
func ParseApplicability(s string) (diag.FixApplicability, error) {
	switch s {
	case "always-safe":
		return diag.FixApplicabilityAlwaysSafe, nil
	case "safe-with-heuristics":
		return diag.FixApplicabilitySafeWithHeuristics, nil
	case "manual-review":
		return diag.FixApplicabilityManualReview, nil
	}
	return 0, fmt.Errorf("unknown applicability %q", s)
}
