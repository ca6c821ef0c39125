// Package classifier assigns accounting categories to bank statement lines
// by ordered, case-insensitive substring matching against a rule table.
package classifier

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lgaravaglia/contaflow/internal/model"
)

// CategoryUnclassified is the sentinel category for lines no rule matched.
const CategoryUnclassified = "UNCLASSIFIED"

// RuleRow is one raw row of the rule table: a category and a pattern cell
// that may hold several ';'-separated patterns sharing that category.
type RuleRow struct {
	Category    string
	PatternCell string
}

// Rule is a single expanded (category, pattern) pair.
type Rule struct {
	Category string
	Pattern  string
}

// Result is the outcome of classifying one line. An empty Pattern means no
// rule matched and Category holds the sentinel.
type Result struct {
	Category string
	Pattern  string
}

// Classifier holds the expanded rule set, ordered longest-pattern-first so
// a short generic pattern cannot shadow a longer, more specific one.
type Classifier struct {
	rules []Rule
	upper []string
}

// New expands and orders the rule rows. Rows with an empty category are
// dropped, as are pattern cells that are empty or hold spreadsheet null
// markers ("nan", "none"). The sort is stable: ties keep load order.
func New(rows []RuleRow) *Classifier {
	var rules []Rule
	for _, row := range rows {
		category := strings.TrimSpace(row.Category)
		cell := strings.TrimSpace(row.PatternCell)
		if category == "" {
			continue
		}
		switch strings.ToLower(cell) {
		case "", "nan", "none":
			continue
		}
		for _, pattern := range strings.Split(cell, ";") {
			if pattern = strings.TrimSpace(pattern); pattern != "" {
				rules = append(rules, Rule{Category: category, Pattern: pattern})
			}
		}
	}

	sort.SliceStable(rules, func(i, j int) bool {
		return utf8.RuneCountInString(rules[i].Pattern) > utf8.RuneCountInString(rules[j].Pattern)
	})

	c := &Classifier{rules: rules, upper: make([]string, len(rules))}
	for i, rule := range rules {
		c.upper[i] = strings.ToUpper(rule.Pattern)
	}
	return c
}

// Classify normalizes the line's whitespace and returns the first rule, in
// stored order, whose pattern is a substring of the line. Comparison is
// case-insensitive on both sides.
func (c *Classifier) Classify(line string) Result {
	upper := strings.ToUpper(strings.Join(strings.Fields(line), " "))
	for i, rule := range c.rules {
		if strings.Contains(upper, c.upper[i]) {
			return Result{Category: rule.Category, Pattern: rule.Pattern}
		}
	}
	return Result{Category: CategoryUnclassified}
}

// ClassifyPage splits one page of statement text into lines, skips the
// empty ones, and classifies the rest in encounter order.
func (c *Classifier) ClassifyPage(page model.Page) []model.LineClassification {
	var results []model.LineClassification
	for _, raw := range strings.Split(page.Text, "\n") {
		line := strings.Join(strings.Fields(raw), " ")
		if line == "" {
			continue
		}
		res := c.Classify(line)
		results = append(results, model.LineClassification{
			Page:     page.Number,
			Line:     line,
			Category: res.Category,
			Pattern:  res.Pattern,
		})
	}
	return results
}

// Rules returns the active rule set in matching order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Len reports the number of active rules.
func (c *Classifier) Len() int {
	return len(c.rules)
}
