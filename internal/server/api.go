// ABOUTME: JSON API for the dashboard catalog, generated views and CSV inspection.
// ABOUTME: Replies use the {code, message, data} envelope.
package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/move/internal/dashboard"
	"github.com/harperreed/move/internal/export"
	"github.com/harperreed/move/internal/summary"
)

// MaxUploadBytes caps the size of an inspected CSV.
const MaxUploadBytes = 10 << 20

// APIHandler serves the JSON API.
type APIHandler struct {
	Builder *dashboard.Builder
}

// Register mounts the /api routes.
func (h *APIHandler) Register(r *gin.Engine) {
	group := r.Group("/api")
	group.GET("/dashboards", h.listDashboards)
	group.GET("/dashboards/:profile", h.getDashboard)
	group.POST("/inspect", h.inspect)
}

func (h *APIHandler) listDashboards(c *gin.Context) {
	Ok(c, dashboard.Describe(h.Builder.Catalog()))
}

func (h *APIHandler) getDashboard(c *gin.Context) {
	opts, err := parseOptions(c)
	if err != nil {
		Fail(c, err)
		return
	}
	v, err := h.Builder.Build(c.Param("profile"), opts)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, v.Snapshot())
}

// inspect accepts a multipart "file" field or a raw CSV body.
func (h *APIHandler) inspect(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes)

	var body io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			Error(c, http.StatusBadRequest, fmt.Sprintf("missing file field: %v", err))
			return
		}
		f, err := fh.Open()
		if err != nil {
			Fail(c, fmt.Errorf("open upload: %w", err))
			return
		}
		defer f.Close()
		body = f
	}

	t, err := export.ParseCSV(body)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error())
		return
	}
	in, err := summary.Inspect(t)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, in)
}
