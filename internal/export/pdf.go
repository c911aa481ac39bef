// ABOUTME: PDF rendering of report documents.
// ABOUTME: Writes to any io.Writer or to a uniquely named temporary file.
package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

func newPDF(doc Document) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("move", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	if doc.Description != "" {
		pdf.Ln(5)
		pdf.MultiCell(0, 10, tr(doc.Description), "", "L", false)
	}
	if doc.GeneratedAt != "" {
		pdf.Ln(5)
		pdf.CellFormat(0, 10, tr(doc.GeneratedAt), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
	for _, line := range doc.Lines {
		pdf.CellFormat(0, 10, tr(line), "", 1, "L", false, 0, "")
	}

	if doc.Footer != "" {
		pdf.Ln(10)
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 10, tr(doc.Footer), "", 1, "L", false, 0, "")
	}
	return pdf
}

// WritePDF renders doc as a PDF into w.
func WritePDF(w io.Writer, doc Document) error {
	pdf := newPDF(doc)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// PDF returns doc rendered as PDF bytes.
func PDF(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SavePDF writes doc to a new file in dir named after base with a random
// suffix and returns its path. The caller owns the file.
func SavePDF(dir, base string, doc Document) (string, error) {
	return save(dir, base+"-*.pdf", func(w io.Writer) error {
		return WritePDF(w, doc)
	})
}
