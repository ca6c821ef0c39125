package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lgaravaglia/contaflow/internal/cli"
	"github.com/lgaravaglia/contaflow/internal/config"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect the active rule table",
		Long: `Load the rule table and print the expanded rules in matching order:
longest pattern first, load order on ties. Useful for spotting generic
patterns that would shadow specific ones.`,
		RunE: runRules,
	}

	cmd.Flags().StringP("rules", "r", "", "rule table (.xlsx, .xls or .csv)")
	_ = cmd.MarkFlagRequired("rules")

	return cmd
}

func runRules(cmd *cobra.Command, _ []string) error {
	rulesPath, _ := cmd.Flags().GetString("rules")

	c, err := loadClassifier(config.ExpandPath(rulesPath))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\n",
		cli.TableHeaderStyle.Render("Pattern"),
		cli.TableHeaderStyle.Render("Category"))
	fmt.Fprintf(w, "%s\t%s\n", strings.Repeat("-", 30), strings.Repeat("-", 30))

	for _, rule := range c.Rules() {
		fmt.Fprintf(w, "%s\t%s\n", rule.Pattern, rule.Category)
	}
	w.Flush()

	fmt.Fprintln(os.Stdout, cli.SubtleStyle.Render(fmt.Sprintf("%d rules", c.Len())))
	return nil
}
