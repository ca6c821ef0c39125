package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/lgaravaglia/contaflow/internal/common"
	"github.com/lgaravaglia/contaflow/internal/config"
	"github.com/lgaravaglia/contaflow/internal/dateparse"
	"github.com/lgaravaglia/contaflow/internal/exporter"
	"github.com/lgaravaglia/contaflow/internal/importer"
	"github.com/lgaravaglia/contaflow/internal/joiner"
	"github.com/lgaravaglia/contaflow/internal/model"
)

// previewLimit caps how many invoices a listing prints at once.
const previewLimit = 20

// SessionOptions configures an interactive session.
type SessionOptions struct {
	// DefaultRegion is assigned to invoices with no marketplace match.
	DefaultRegion string
	// IncludeMarketplace also turns marketplace sale rows into invoice
	// records alongside the AFIP ones.
	IncludeMarketplace bool
}

// Session owns the in-memory invoice set for one interactive run. All menu
// handlers operate on this handle; there is no package-level state.
//
// records holds everything loaded; view holds the current filtered subset.
// Filters narrow the view further on each use, so a date filter followed by
// a province filter behaves like one combined filter. Loading resets the
// view.
type Session struct {
	reader  *LineReader
	out     io.Writer
	records []model.InvoiceRecord
	view    []model.InvoiceRecord
	opts    SessionOptions
}

// NewSession creates a session reading menu input from in and printing to out.
func NewSession(in io.Reader, out io.Writer, opts SessionOptions) *Session {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Session{
		reader: NewLineReader(in),
		out:    out,
		opts:   opts,
	}
}

// Run loops over the menu until the user exits or input ends. Invalid
// options reprint the menu; handler failures are reported and never
// corrupt the loaded records.
func (s *Session) Run(ctx context.Context) error {
	for {
		s.printMenu()

		choice, err := s.reader.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, ErrInputCancelled) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch choice {
		case "1":
			s.load(ctx)
		case "2":
			s.show(s.view)
		case "3":
			s.filterProvince(ctx)
		case "4":
			s.filterDate(ctx)
		case "5":
			s.export(ctx)
		case "6":
			return nil
		default:
			fmt.Fprintln(s.out, ErrorStyle.Render("Invalid option."))
		}
	}
}

func (s *Session) printMenu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, TitleStyle.Render("--- Invoice reconciliation ---"))
	fmt.Fprintln(s.out, "1. Load AFIP and marketplace files")
	fmt.Fprintln(s.out, "2. Show invoices")
	fmt.Fprintln(s.out, "3. Filter by province")
	fmt.Fprintln(s.out, "4. Filter by date range")
	fmt.Fprintln(s.out, "5. Export to CSV")
	fmt.Fprintln(s.out, "6. Exit")
	fmt.Fprint(s.out, PromptStyle.Render("Option: "))
}

func (s *Session) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(s.out, PromptStyle.Render(label))
	return s.reader.ReadLine(ctx)
}

// load replaces the session's records with the reconciled contents of the
// two exports and resets the filtered view. On any failure the previous
// records are kept.
func (s *Session) load(ctx context.Context) {
	afipPath, err := s.prompt(ctx, "AFIP file: ")
	if err != nil {
		return
	}
	marketPath, err := s.prompt(ctx, "Marketplace file: ")
	if err != nil {
		return
	}
	afipPath = config.ExpandPath(afipPath)
	marketPath = config.ExpandPath(marketPath)

	invoices, err := importer.LoadAFIP(afipPath)
	if err != nil {
		s.reportError(err)
		return
	}
	marketplace, err := importer.LoadMarketplace(marketPath)
	if err != nil {
		s.reportError(err)
		return
	}

	lookup := joiner.BuildLookup(marketplace)
	records := joiner.Apply(invoices, lookup, s.opts.DefaultRegion)

	if s.opts.IncludeMarketplace {
		sales, err := importer.LoadMarketplaceInvoices(marketPath)
		if err != nil {
			s.reportError(err)
			return
		}
		for _, sale := range sales {
			if sale.Province == "" {
				sale.Province = s.opts.DefaultRegion
			}
			records = append(records, sale)
		}
	}

	s.records = records
	s.view = records
	fmt.Fprintln(s.out, SuccessStyle.Render(fmt.Sprintf("Loaded %d invoices.", len(s.records))))
}

func (s *Session) show(records []model.InvoiceRecord) {
	if len(s.records) == 0 {
		s.reportError(common.NewUserError("Load the files first", common.ErrNoRecords))
		return
	}
	if len(records) == 0 {
		fmt.Fprintln(s.out, InfoStyle.Render("No invoices match."))
		return
	}

	shown := records
	if len(shown) > previewLimit {
		shown = shown[:previewLimit]
	}

	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		TableHeaderStyle.Render("Date"),
		TableHeaderStyle.Render("Number"),
		TableHeaderStyle.Render("Province"),
		TableHeaderStyle.Render("Amount"))
	for _, record := range shown {
		fmt.Fprintf(w, "%s\tN° %s\t%s\t$%s\n",
			record.Date.Format("02/01/2006"),
			record.Number,
			record.Province,
			formatAmount(record.Amount))
	}
	w.Flush()

	if len(records) > previewLimit {
		fmt.Fprintln(s.out, SubtleStyle.Render(fmt.Sprintf("Showing first %d of %d invoices", previewLimit, len(records))))
		return
	}
	fmt.Fprintln(s.out, SubtleStyle.Render(fmt.Sprintf("%d invoices", len(records))))
}

// filterProvince narrows the current view to one province and keeps the
// result, so further filters stack on top of it.
func (s *Session) filterProvince(ctx context.Context) {
	if len(s.records) == 0 {
		s.reportError(common.NewUserError("Load the files first", common.ErrNoRecords))
		return
	}

	province, err := s.prompt(ctx, "Province: ")
	if err != nil {
		return
	}

	var matched []model.InvoiceRecord
	for _, record := range s.view {
		if strings.EqualFold(record.Province, province) {
			matched = append(matched, record)
		}
	}
	s.view = matched
	s.show(s.view)
}

// filterDate narrows the current view to a date range and keeps the result.
// An unparsable bound is reported and leaves the view untouched.
func (s *Session) filterDate(ctx context.Context) {
	if len(s.records) == 0 {
		s.reportError(common.NewUserError("Load the files first", common.ErrNoRecords))
		return
	}

	fromText, err := s.prompt(ctx, "From (dd/mm/yyyy): ")
	if err != nil {
		return
	}
	toText, err := s.prompt(ctx, "To (dd/mm/yyyy): ")
	if err != nil {
		return
	}

	from, okFrom := dateparse.Parse(fromText)
	to, okTo := dateparse.Parse(toText)
	if !okFrom || !okTo {
		fmt.Fprintln(s.out, ErrorStyle.Render("Invalid date range."))
		return
	}

	var matched []model.InvoiceRecord
	for _, record := range s.view {
		if !record.Date.Before(from) && !record.Date.After(to) {
			matched = append(matched, record)
		}
	}
	s.view = matched
	s.show(s.view)
}

func (s *Session) export(ctx context.Context) {
	if len(s.records) == 0 {
		s.reportError(common.NewUserError("Nothing to export", common.ErrNoRecords))
		return
	}

	name, err := s.prompt(ctx, "Output CSV name: ")
	if err != nil {
		return
	}
	if name == "" {
		fmt.Fprintln(s.out, ErrorStyle.Render("A file name is required."))
		return
	}

	path, err := exporter.ExportInvoiceCSV(config.ExpandPath(name), s.records)
	if err != nil {
		s.reportError(err)
		return
	}
	fmt.Fprintln(s.out, SuccessStyle.Render(fmt.Sprintf("Exported %d invoices to %s.", len(s.records), path)))
}

func (s *Session) reportError(err error) {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		fmt.Fprintln(s.out, WarningStyle.Render(userErr.UserMessage+"."))
		return
	}
	fmt.Fprintln(s.out, ErrorStyle.Render(err.Error()))
}

// formatAmount renders an amount for display with thousands separators,
// e.g. 1234567.5 -> "1,234,567.50". The CSV export keeps the plain form.
func formatAmount(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}
