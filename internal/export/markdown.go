// ABOUTME: Markdown export of metric tables.
// ABOUTME: Renders a heading, generation metadata and a pipe table of rows.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/move/internal/models"
)

// Markdown renders the table under a level-one heading.
func Markdown(title string, t *models.Table, meta Meta) string {
	var sb strings.Builder
	generated := meta.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", generated.Format(time.RFC3339)))
	if meta.Session != "" {
		sb.WriteString(fmt.Sprintf("Session: %s\n\n", meta.Session))
	}

	names := t.Names()
	sb.WriteString("| " + strings.Join(names, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat("------|", len(names)) + "\n")
	for i := 0; i < t.Len(); i++ {
		sb.WriteString("| " + strings.Join(t.Record(i), " | ") + " |\n")
	}
	return sb.String()
}
