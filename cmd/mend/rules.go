package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mend/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules <rules.toml>",
	Short: "Validate a rule file and list its rules",
	Args:  cobra.ExactArgs(1),
	RunE:  runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	f, err := rules.Load(args[0])
	if err != nil {
		return err
	}
	if quietEnabled(cmd) {
		return nil
	}

	out := cmd.OutOrStdout()
	for i := range f.Rules {
		r := &f.Rules[i]
		mark := "    "
		if r.Fix != "" {
			mark = "fix "
		}
		fmt.Fprintf(out, "%s%-24s %-8s %-20s [%s] %s\n",
			mark, r.ID,
			r.SeverityOrDefault(),
			r.ApplicabilityOrDefault(),
			strings.Join(r.Languages, ","),
			r.Message,
		)
	}
	fmt.Fprintf(out, "%d rule(s) ok\n", len(f.Rules))
	return nil
}
