package main

import (
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lgaravaglia/contaflow/internal/classifier"
	"github.com/lgaravaglia/contaflow/internal/common"
	"github.com/lgaravaglia/contaflow/internal/config"
	"github.com/lgaravaglia/contaflow/internal/exporter"
	"github.com/lgaravaglia/contaflow/internal/model"
	"github.com/lgaravaglia/contaflow/internal/pdftext"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify bank statement PDF lines against a rule table",
		Long: `Load a rule table (xlsx or CSV), extract the statement PDF's text page
by page, classify every non-empty line by substring match, and write an
xlsx report with one row per line.

Examples:
  contaflow classify --rules reglas.xlsx --pdf extracto.pdf --out salida.xlsx
  contaflow classify -r reglas.csv -p extracto.pdf`,
		RunE: runClassify,
	}

	cmd.Flags().StringP("rules", "r", "", "rule table (.xlsx, .xls or .csv)")
	cmd.Flags().StringP("pdf", "p", "", "bank statement PDF to classify")
	cmd.Flags().StringP("out", "o", "salida_clasificada.xlsx", "output xlsx report")
	_ = cmd.MarkFlagRequired("rules")
	_ = cmd.MarkFlagRequired("pdf")

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	rulesPath, _ := cmd.Flags().GetString("rules")
	pdfPath, _ := cmd.Flags().GetString("pdf")
	outPath, _ := cmd.Flags().GetString("out")

	rules, err := loadClassifier(config.ExpandPath(rulesPath))
	if err != nil {
		return err
	}

	pages, err := pdftext.ExtractPages(config.ExpandPath(pdfPath))
	if err != nil {
		return err
	}

	bar := progressbar.Default(int64(len(pages)), "classifying")
	var results []model.LineClassification
	unclassified := 0
	for _, page := range pages {
		for _, result := range rules.ClassifyPage(page) {
			if result.Category == classifier.CategoryUnclassified {
				unclassified++
			}
			results = append(results, result)
		}
		_ = bar.Add(1)
	}

	if err := exporter.WriteClassificationReport(config.ExpandPath(outPath), results); err != nil {
		return err
	}

	common.LogInfo("Classification report written", common.Fields{
		"file":         outPath,
		"lines":        len(results),
		"unclassified": unclassified,
	})
	return nil
}

// loadClassifier builds the active classifier from the rule table, using
// the configured column headers.
func loadClassifier(path string) (*classifier.Classifier, error) {
	rows, err := classifier.LoadRules(path,
		viper.GetString("rules.category_column"),
		viper.GetString("rules.pattern_column"))
	if err != nil {
		return nil, err
	}

	c := classifier.New(rows)
	if c.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrNoRules, path)
	}

	slog.Debug("Built classifier", "rules", c.Len())
	return c, nil
}
