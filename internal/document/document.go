package document

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Document is a composed, not yet written report.
type Document struct {
	pdf  *fpdf.Fpdf
	tr   func(string) string
	text []string
}

// cell writes a text cell and records its content.
func (d *Document) cell(w, h float64, txt, border string, ln int, align string) {
	d.fillCell(w, h, txt, border, ln, align, false)
}

func (d *Document) fillCell(w, h float64, txt, border string, ln int, align string, fill bool) {
	d.text = append(d.text, txt)
	d.pdf.CellFormat(w, h, d.tr(txt), border, ln, align, fill, 0, "")
}

// Text returns the document's text content in layout order.
func (d *Document) Text() []string {
	return append([]string(nil), d.text...)
}

// Pages returns the page count.
func (d *Document) Pages() int {
	return d.pdf.PageCount()
}

// Bytes renders the PDF into memory.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output error: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes the PDF to path. A Document can be written once.
func (d *Document) WriteFile(path string) error {
	if err := d.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
