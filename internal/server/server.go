// ABOUTME: Gin engine setup and the HTTP server lifecycle.
// ABOUTME: Registers dashboard, API and health handlers and shuts down gracefully.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/move/internal/dashboard"
	"github.com/harperreed/move/internal/models"
	"github.com/harperreed/move/internal/summary"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// ShutdownTimeout bounds how long in-flight requests may run after a stop signal.
const ShutdownTimeout = 10 * time.Second

func loadTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"fmt1": func(v float64) string { return summary.Format(v, 1) },
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// New builds the gin engine serving every dashboard of builder.
func New(builder *dashboard.Builder, log *zap.Logger, mode string) (*gin.Engine, error) {
	switch mode {
	case "":
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(mode)
	default:
		return nil, &models.ConfigError{Field: "server.mode", Reason: fmt.Sprintf("unknown gin mode %q", mode)}
	}

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestID())
	engine.Use(accessLog(log))
	engine.SetHTMLTemplate(tmpl)

	healthHandler := &HealthHandler{}
	healthHandler.Register(engine)
	dashboardHandler := &DashboardHandler{Builder: builder}
	dashboardHandler.Register(engine)
	apiHandler := &APIHandler{Builder: builder}
	apiHandler.Register(engine)

	return engine, nil
}

// Run serves handler on addr until ctx is cancelled, then drains in-flight
// requests for at most ShutdownTimeout.
func Run(ctx context.Context, addr string, handler http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case serveErr = <-errCh:
		log.Error("server error", zap.Error(serveErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	if serveErr != nil {
		return fmt.Errorf("http server: %w", serveErr)
	}
	return nil
}

// HealthHandler answers liveness checks.
type HealthHandler struct{}

// Register mounts /healthz.
func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)
}

func (h *HealthHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
