// ABOUTME: Dispatches a table export to the writer of the requested format.
// ABOUTME: Shared by the HTTP handlers, the CLI and the MCP tools.
package export

import (
	"fmt"
	"io"

	"github.com/harperreed/move/internal/models"
)

// Write renders t in format f. The profile supplies titles and the report layout.
func Write(w io.Writer, f Format, p *models.Profile, t *models.Table, meta Meta) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatPDF:
		doc, err := BuildDocument(p, meta.Session, t, meta.GeneratedAt)
		if err != nil {
			return err
		}
		return WritePDF(w, doc)
	case FormatXLSX:
		return WriteXLSX(w, t)
	case FormatJSON:
		data, err := JSON(t, meta)
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatYAML:
		data, err := YAML(t, meta)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(p.Title, t, meta))
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}
