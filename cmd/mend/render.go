package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mend/internal/diag"
	"mend/internal/fix"
	"mend/internal/format"
	"mend/internal/matchdump"
	"mend/internal/preview"
	"mend/internal/render"
	"mend/internal/rules"
	"mend/internal/source"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] <dump.mp|dump.json>",
	Short: "Render fixes from a match dump, then preview or apply them",
	Long: "Load a match dump produced by the matching engine, render each match's " +
		"fix against the target file, and either preview the resulting edits or " +
		"apply them according to the chosen strategy.",
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("rules", "", "rule file supplying messages and fix safety levels")
	renderCmd.Flags().Bool("apply", false, "write the selected fixes back to the target file")
	renderCmd.Flags().Bool("dry-run", false, "select and stage fixes but write nothing")
	renderCmd.Flags().Bool("all", false, "apply all always-safe fixes")
	renderCmd.Flags().Bool("once", false, "apply the first fix (default)")
	renderCmd.Flags().String("id", "", "apply the fix with a specific identifier")
	renderCmd.Flags().Int("jobs", runtime.NumCPU(), "number of concurrent render workers")
}

func runRender(cmd *cobra.Command, args []string) error {
	applyFlag, err := cmd.Flags().GetBool("apply")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	rulesPath, err := cmd.Flags().GetString("rules")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	if jobs < 1 {
		jobs = 1
	}

	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	dump, err := matchdump.Load(args[0])
	if err != nil {
		return err
	}

	var ruleFile *rules.File
	if rulesPath != "" {
		ruleFile, err = rules.Load(rulesPath)
		if err != nil {
			return err
		}
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(dump.Target)
	if err != nil {
		return fmt.Errorf("render: load target: %w", err)
	}

	diagnostics, renderErrs := renderDiagnostics(dump, ruleFile, fs, fileID, jobs)
	for _, re := range renderErrs {
		fmt.Fprintf(os.Stderr, "warning: %v\n", re)
	}
	if len(diagnostics) == 0 {
		return fmt.Errorf("render: no fixes could be rendered")
	}

	if !applyFlag && !dryRun {
		return previewDiagnostics(cmd, fs, diagnostics)
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}
	res, applyErr := fix.Apply(fs, diagnostics, fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		DryRun:   dryRun,
	})
	return handleApplyResult(cmd, res, applyErr)
}

// renderDiagnostics renders every match concurrently and turns the results
// into diagnostics carrying one fix each. Matches whose rendering fails are
// reported as errors but do not abort the run.
func renderDiagnostics(dump *matchdump.Dump, ruleFile *rules.File, fs *source.FileSet, fileID source.FileID, jobs int) ([]diag.Diagnostic, []error) {
	file := fs.Get(fileID)
	// all workers slice verbatim text from the same normalized buffer the
	// fix engine will edit
	target := source.LazyBytes(file.Content)

	reg := render.NewRegistry()
	format.RegisterAll(reg)

	rendered := make([]string, len(dump.Matches))
	renderErrs := make([]error, len(dump.Matches))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i := range dump.Matches {
		g.Go(func() error {
			m := &dump.Matches[i]
			lang, _ := render.ParseLanguage(m.Language)
			binds := m.PatternBindings()
			fp := m.FixPattern()
			out, err := render.Render(reg, lang, binds, target, fp, m.FixedTree(binds, fp))
			if err != nil {
				renderErrs[i] = fmt.Errorf("match %d (%s): %w", i, m.RuleID, err)
				return nil
			}
			rendered[i] = out
			return nil
		})
	}
	// workers report per-match failures through renderErrs
	_ = g.Wait()

	diagnostics := make([]diag.Diagnostic, 0, len(dump.Matches))
	errs := make([]error, 0)
	for i := range dump.Matches {
		if renderErrs[i] != nil {
			errs = append(errs, renderErrs[i])
			continue
		}
		m := &dump.Matches[i]

		message := m.RuleID
		severity := diag.SevWarning
		applicability := diag.FixApplicabilitySafeWithHeuristics
		if ruleFile != nil {
			if r, ok := ruleFile.ByID(m.RuleID); ok {
				severity = r.SeverityOrDefault()
				applicability = r.ApplicabilityOrDefault()
				if r.Message != "" {
					message = r.Message
				}
			}
		}

		span := m.Span(fileID)
		var oldText string
		if int(m.End) <= len(file.Content) {
			oldText = string(file.Content[m.Start:m.End])
		}

		diagnostics = append(diagnostics, diag.Diagnostic{
			Severity: severity,
			RuleID:   m.RuleID,
			Message:  message,
			Primary:  span,
			Fixes: []diag.Fix{{
				Title:         message,
				Applicability: applicability,
				IsPreferred:   true,
				Edits: []diag.TextEdit{{
					Span:    span,
					NewText: rendered[i],
					OldText: oldText,
				}},
			}},
		})
	}
	return diagnostics, errs
}

func previewDiagnostics(cmd *cobra.Command, fs *source.FileSet, diagnostics []diag.Diagnostic) error {
	out := cmd.OutOrStdout()
	opts := preview.Options{Color: colorEnabled(cmd, os.Stdout)}
	quiet := quietEnabled(cmd)

	for _, d := range diagnostics {
		if !quiet {
			fmt.Fprintf(out, "%s: %s [%s]\n", d.Severity, d.Message, d.RuleID)
		}
		for _, f := range d.Fixes {
			for _, edit := range f.Edits {
				if err := preview.RenderEdit(out, fs, edit, opts); err != nil {
					return err
				}
			}
			if !quiet {
				fmt.Fprintf(out, "  applicability: %s\n", f.Applicability)
			}
		}
		fmt.Fprintln(out)
	}
	if !quiet {
		fmt.Fprintf(out, "%d fix(es) rendered; rerun with --apply to write them\n", len(diagnostics))
	}
	return nil
}

func handleApplyResult(cmd *cobra.Command, res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		return applyErr
	}
	out := cmd.OutOrStdout()

	if len(res.Applied) > 0 {
		fmt.Fprintf(out, "Applied %d fix(es):\n", len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(out, "  %s [%s] at %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability)
		}
	}

	if len(res.FileChanges) > 0 {
		fmt.Fprintln(out, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(out, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(out, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	return applyErr
}
