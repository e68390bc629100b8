/*
PURPOSE:
  Document Composer. Lays out one person's report as a paginated PDF.

REQUIREMENTS:
  User-specified:
  - Page order: identity header, metric table, then charts in the order given.
  - One chart per page.
  - Rendering failures propagate to the caller; no retries.

  Implementation-discovered:
  - fpdf core fonts are cp1252; names with accents go through the unicode translator.
  - fpdf accumulates errors internally, so Compose checks Error() once at the end.
  - Re-runs must give identical text, so nothing time-dependent is written into the body.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Uses: github.com/go-pdf/fpdf, internal/model

ERROR HANDLING:
  - Returns the first fpdf error (e.g. unreadable chart image).

USAGE:
  doc, err := document.NewComposer().Compose(rec, "Alice", files)
  err = doc.WriteFile("reports/Alice_Report.pdf")

RELATED FILES:
  - internal/document/document.go
*/

package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/daryltucker/ei-reports/internal/model"
	"github.com/go-pdf/fpdf"
)

// Palette, RGB.
var (
	colorPrimary   = [3]int{37, 99, 235}
	colorTextDark  = [3]int{17, 24, 39}
	colorTextMuted = [3]int{107, 114, 128}
	colorTableHead = [3]int{30, 58, 95}
	colorTableAlt  = [3]int{243, 244, 246}
	colorGridLine  = [3]int{220, 220, 220}
	colorGood      = [3]int{5, 150, 105}
	colorFair      = [3]int{217, 119, 6}
	colorLow       = [3]int{220, 38, 38}
)

const (
	margin     = 20.0
	fontFamily = "Helvetica"
)

// Composer builds report documents.
type Composer struct {
	Title  string
	Author string
	Schema model.Schema
	// Date is stamped into the PDF metadata when set; it never appears in the text.
	Date time.Time
}

// Option customises a Composer.
type Option func(*Composer)

// WithTitle overrides the report title.
func WithTitle(title string) Option {
	return func(c *Composer) { c.Title = title }
}

// WithDate sets the PDF creation date.
func WithDate(t time.Time) Option {
	return func(c *Composer) { c.Date = t }
}

// WithSchema overrides the column schema used to classify metrics.
func WithSchema(s model.Schema) Option {
	return func(c *Composer) { c.Schema = s }
}

// NewComposer creates a Composer with the default title and schema.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{
		Title:  "Emotional Intelligence Assessment Report",
		Author: "ei-reports",
		Schema: model.DefaultSchema(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose lays out the report for rec. charts are embedded one per page in
// the given order.
func (c *Composer) Compose(rec model.Record, identity string, charts []model.ChartFile) (*Document, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, 25)
	pdf.SetCatalogSort(true)
	if !c.Date.IsZero() {
		pdf.SetCreationDate(c.Date)
		pdf.SetModificationDate(c.Date)
	}

	d := &Document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetTitle(d.tr(c.Title+" - "+identity), false)
	pdf.SetAuthor(c.Author, false)

	binding, _ := c.Schema.Bind(rec.Columns)

	pdf.AddPage()
	c.writeHeader(d, rec, identity)
	c.writeMetrics(d, rec, binding)

	for _, ch := range charts {
		pdf.AddPage()
		c.writePageHeader(d, identity)
		c.writeChart(d, ch)
	}

	c.addPageNumbers(d)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to compose report for %s: %w", identity, err)
	}
	return d, nil
}

func (c *Composer) writeHeader(d *Document, rec model.Record, identity string) {
	pdf := d.pdf
	pageWidth, _ := pdf.GetPageSize()

	pdf.SetFillColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	pdf.Rect(0, 0, pageWidth, 8, "F")

	pdf.SetY(22)
	pdf.SetFont(fontFamily, "B", 20)
	pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
	d.cell(0, 10, c.Title, "", 1, "C")

	pdf.SetFont(fontFamily, "B", 16)
	pdf.SetTextColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	d.cell(0, 10, identity, "", 1, "C")

	pdf.SetFont(fontFamily, "", 11)
	pdf.SetTextColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
	if v := rec.Text(model.ColVintage); v != "" {
		d.cell(0, 7, "Assessment Year: "+v, "", 1, "C")
	}
	if score, err := rec.Number(model.ColEIScore); err == nil {
		d.cell(0, 7, fmt.Sprintf("Overall EI Score: %.1f (%s)", score, model.BandOf(score)), "", 1, "C")
	}
	pdf.Ln(6)
}

func (c *Composer) writeMetrics(d *Document, rec model.Record, b model.Binding) {
	pdf := d.pdf
	pdf.SetFont(fontFamily, "B", 14)
	pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
	d.cell(0, 9, "Assessment Metrics", "", 1, "L")
	pdf.Ln(2)

	cols := append(b.Columns(model.RoleComposite), b.Percentages()...)
	if len(cols) == 0 {
		pdf.SetFont(fontFamily, "I", 11)
		pdf.SetTextColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
		d.cell(0, 8, "No metrics available for this person.", "", 1, "L")
		return
	}

	widths := []float64{95, 40, 35}
	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(colorTableHead[0], colorTableHead[1], colorTableHead[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(colorGridLine[0], colorGridLine[1], colorGridLine[2])
	for i, h := range []string{"Metric", "Value", "Band"} {
		ln := 0
		if i == len(widths)-1 {
			ln = 1
		}
		d.fillCell(widths[i], 8, h, "1", ln, "C", true)
	}

	pdf.SetFont(fontFamily, "", 10)
	for row, col := range cols {
		fill := row%2 == 1
		pdf.SetFillColor(colorTableAlt[0], colorTableAlt[1], colorTableAlt[2])
		pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
		d.fillCell(widths[0], 7, col, "1", 0, "L", fill)

		v, err := rec.Number(col)
		if err != nil {
			text := "n/a"
			if raw := rec.Text(col); raw != "" {
				text = raw
			}
			d.fillCell(widths[1], 7, text, "1", 0, "R", fill)
			d.fillCell(widths[2], 7, "-", "1", 1, "C", fill)
			continue
		}
		value := fmt.Sprintf("%.1f", v)
		if strings.Contains(col, "%") {
			value += "%"
		}
		d.fillCell(widths[1], 7, value, "1", 0, "R", fill)

		band := model.BandOf(v)
		if col == model.ColStress {
			band = model.BandOf(100 - v)
		}
		bc := bandColor(band)
		pdf.SetTextColor(bc[0], bc[1], bc[2])
		d.fillCell(widths[2], 7, string(band), "1", 1, "C", fill)
	}
}

func (c *Composer) writePageHeader(d *Document, identity string) {
	pdf := d.pdf
	pageWidth, _ := pdf.GetPageSize()

	pdf.SetDrawColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	pdf.SetLineWidth(0.5)
	pdf.Line(margin, 15, pageWidth-margin, 15)

	pdf.SetY(18)
	pdf.SetFont(fontFamily, "B", 9)
	pdf.SetTextColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	pdf.CellFormat(0, 5, d.tr(strings.ToUpper(c.Title)), "", 0, "L", false, 0, "")

	pdf.SetFont(fontFamily, "", 9)
	pdf.SetTextColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
	pdf.CellFormat(0, 5, d.tr(identity), "", 1, "R", false, 0, "")
	pdf.SetY(30)
}

func (c *Composer) writeChart(d *Document, ch model.ChartFile) {
	pdf := d.pdf
	pageWidth, _ := pdf.GetPageSize()

	pdf.SetFont(fontFamily, "B", 14)
	pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
	d.cell(0, 10, ch.Kind.Title(), "", 1, "L")
	pdf.Ln(3)

	w := pageWidth - 2*margin
	pdf.ImageOptions(ch.Path, margin, pdf.GetY(), w, 0, false,
		fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

// addPageNumbers stamps "Page i of n" on every page once layout is final.
func (c *Composer) addPageNumbers(d *Document) {
	pdf := d.pdf
	pdf.SetAutoPageBreak(false, 0)
	total := pdf.PageCount()
	for i := 1; i <= total; i++ {
		pdf.SetPage(i)
		pageWidth, pageHeight := pdf.GetPageSize()

		pdf.SetDrawColor(colorGridLine[0], colorGridLine[1], colorGridLine[2])
		pdf.SetLineWidth(0.3)
		pdf.Line(margin, pageHeight-20, pageWidth-margin, pageHeight-20)

		pdf.SetY(pageHeight - 15)
		pdf.SetFont(fontFamily, "", 8)
		pdf.SetTextColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
		d.cell(0, 5, fmt.Sprintf("Page %d of %d", i, total), "", 0, "C")
	}
}

func bandColor(b model.Band) [3]int {
	switch b {
	case model.BandGood:
		return colorGood
	case model.BandFair:
		return colorFair
	default:
		return colorLow
	}
}
