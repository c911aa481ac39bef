// ABOUTME: Builds the short report document listing the most recent rows.
// ABOUTME: The document is format-neutral; pdf.go renders it.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/move/internal/models"
)

// Document is a title, a description paragraph, one line per recent row and a footer.
type Document struct {
	Title       string
	Description string
	GeneratedAt string
	Lines       []string
	Footer      string
}

// BuildDocument lays out the report of a profile for the min(K, N) most recent
// rows of t, K being the profile report window.
func BuildDocument(p *models.Profile, session string, t *models.Table, generatedAt time.Time) (Document, error) {
	report := p.Report
	doc := Document{
		Title:       report.Title,
		Description: report.Description,
		Footer:      report.Footer,
	}
	if session != "" {
		doc.Title = fmt.Sprintf("%s - %s", report.Title, session)
	}
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}
	if report.ShowGeneratedAt {
		doc.GeneratedAt = "Data generazione: " + generatedAt.Format(time.DateTime)
	}

	columns := make([]*models.Column, len(report.Fields))
	for i, f := range report.Fields {
		c, ok := t.Column(f.Column)
		if !ok {
			return Document{}, fmt.Errorf("report field %q: unknown column %q", f.Label, f.Column)
		}
		columns[i] = c
	}

	recent := t.Recent(report.Window)
	for i := 0; i < recent.Len(); i++ {
		parts := make([]string, len(report.Fields))
		for fi, f := range report.Fields {
			c, _ := recent.Column(columns[fi].Name)
			prec := c.Precision
			if f.Precision != nil {
				prec = *f.Precision
			}
			parts[fi] = fmt.Sprintf("%s=%s%s", f.Label, models.FormatNumber(c.Values[i], c.Kind, prec), f.Suffix)
		}
		doc.Lines = append(doc.Lines, fmt.Sprintf("%s: %s", recent.FormatDate(i), strings.Join(parts, ", ")))
	}
	return doc, nil
}

// Text renders the document as plain text, one paragraph per block.
func (d Document) Text() string {
	var sb strings.Builder
	sb.WriteString(d.Title + "\n\n")
	if d.Description != "" {
		sb.WriteString(d.Description + "\n\n")
	}
	if d.GeneratedAt != "" {
		sb.WriteString(d.GeneratedAt + "\n\n")
	}
	for _, l := range d.Lines {
		sb.WriteString(l + "\n")
	}
	if d.Footer != "" {
		sb.WriteString("\n" + d.Footer + "\n")
	}
	return sb.String()
}
