// ABOUTME: HTML dashboard pages, chart images and export downloads.
// ABOUTME: Every link carries the seed and start instant so it regenerates the shown table.
package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/move/internal/charts"
	"github.com/harperreed/move/internal/dashboard"
	"github.com/harperreed/move/internal/export"
	"github.com/harperreed/move/internal/models"
)

const comparePrefix = "compare-"

// DashboardHandler serves the browser dashboards.
type DashboardHandler struct {
	Builder *dashboard.Builder
}

// Register mounts the index, dashboard, chart and export routes.
func (h *DashboardHandler) Register(r *gin.Engine) {
	r.GET("/", h.index)
	group := r.Group("/dashboards/:profile")
	group.GET("", h.page)
	group.GET("/export/:format", h.export)
	group.GET("/charts/:chart", h.chart)
}

func (h *DashboardHandler) view(c *gin.Context) (*dashboard.View, error) {
	opts, err := parseOptions(c)
	if err != nil {
		return nil, err
	}
	return h.Builder.Build(c.Param("profile"), opts)
}

func (h *DashboardHandler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Profiles": h.Builder.Catalog().Profiles(),
	})
}

type namedLink struct {
	Label    string
	URL      string
	Selected bool
}

type comparisonBlock struct {
	Column   string
	ChartURL string
	Sessions []dashboard.SessionSummary
}

type pageData struct {
	View        *dashboard.View
	Header      []string
	Records     [][]string
	Charts      []namedLink
	Exports     []namedLink
	Sessions    []namedLink
	Compared    map[string]bool
	Comparisons []comparisonBlock
	Regenerate  string
}

func (h *DashboardHandler) page(c *gin.Context) {
	v, err := h.view(c)
	if err != nil {
		Fail(c, err)
		return
	}

	p := v.Profile
	base := "/dashboards/" + p.Name
	q := v.Query()

	data := pageData{
		View:       v,
		Header:     v.Recent.Names(),
		Compared:   make(map[string]bool, len(v.Compare)),
		Regenerate: base,
	}
	for i := 0; i < v.Recent.Len(); i++ {
		data.Records = append(data.Records, v.Recent.Record(i))
	}
	for _, ch := range p.Charts {
		data.Charts = append(data.Charts, namedLink{Label: ch.Title, URL: link(base+"/charts/"+ch.ID, q)})
	}
	for _, f := range export.AllFormats {
		data.Exports = append(data.Exports, namedLink{Label: strings.ToUpper(string(f)), URL: link(base+"/export/"+string(f), q)})
	}
	for _, s := range p.Sessions {
		data.Sessions = append(data.Sessions, namedLink{
			Label:    s,
			URL:      link(base, withParam(q, "session", s)),
			Selected: s == v.SessionName(),
		})
	}
	if v.SessionName() != "" {
		data.Regenerate = link(base, withParam(nil, "session", v.SessionName()))
	}
	for _, s := range v.Compare {
		data.Compared[s] = true
	}
	for _, cmp := range v.Comparisons {
		data.Comparisons = append(data.Comparisons, comparisonBlock{
			Column:   cmp.Column,
			ChartURL: link(base+"/charts/"+comparePrefix+chartSlug(cmp.Column), q),
			Sessions: cmp.Sessions,
		})
	}

	c.HTML(http.StatusOK, "dashboard.html", data)
}

func (h *DashboardHandler) export(c *gin.Context) {
	f, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		Fail(c, err)
		return
	}
	v, err := h.view(c)
	if err != nil {
		Fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, f, v.Profile, v.Table, v.Meta()); err != nil {
		Fail(c, fmt.Errorf("export %s: %w", f, err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", v.FileName(f)))
	c.Data(http.StatusOK, f.ContentType(), buf.Bytes())
}

func (h *DashboardHandler) chart(c *gin.Context) {
	out, err := charts.ParseOutput(c.Query("img"))
	if err != nil {
		Fail(c, &models.ConfigError{Field: "img", Reason: err.Error()})
		return
	}
	v, err := h.view(c)
	if err != nil {
		Fail(c, err)
		return
	}

	id := c.Param("chart")
	var buf bytes.Buffer
	if slug, ok := strings.CutPrefix(id, comparePrefix); ok {
		err = h.renderComparison(&buf, out, v, slug)
	} else if chart, found := v.Profile.Chart(id); found {
		err = charts.Render(&buf, out, chart, v.Table)
	} else {
		err = fmt.Errorf("%w: %q", errUnknownChart, id)
	}
	if err != nil {
		Fail(c, err)
		return
	}
	c.Data(http.StatusOK, out.ContentType(), buf.Bytes())
}

func (h *DashboardHandler) renderComparison(buf *bytes.Buffer, out charts.Output, v *dashboard.View, slug string) error {
	for _, cmp := range v.Comparisons {
		if chartSlug(cmp.Column) != slug {
			continue
		}
		groups, _ := v.ComparisonGroups(cmp.Column)
		return charts.Comparison(buf, out, cmp.Column, groups)
	}
	return fmt.Errorf("%w: %q", errUnknownChart, comparePrefix+slug)
}
