package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ougirez/hcdash/internal/api/controller"
	"github.com/ougirez/hcdash/internal/pkg/config"
	"github.com/ougirez/hcdash/internal/pkg/store"
	"github.com/ougirez/hcdash/internal/service/narrative"
	"github.com/ougirez/hcdash/internal/service/session"
)

type APIService struct {
	router           *echo.Echo
	narrativeService *narrative.Service
	sessionService   *session.Service

	secret     string
	sessionTTL time.Duration
}

// Serve blocks until the server stops. A graceful Shutdown is not an error.
func (svc *APIService) Serve(addr string) error {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("echo.Start: %w", err)
	}
	return nil
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

// Handler exposes the router, for httptest.
func (svc *APIService) Handler() http.Handler {
	return svc.router
}

func NewAPIService(store store.Store, sessions *session.Service, cfg *config.Config) (*APIService, error) {
	svc := &APIService{
		router:         echo.New(),
		sessionService: sessions,
		secret:         cfg.SessionSecret,
		sessionTTL:     cfg.SessionTTL,
	}

	renderer, err := newRenderer()
	if err != nil {
		return nil, fmt.Errorf("newRenderer: %w", err)
	}

	svc.router.HideBanner = true
	svc.router.HidePort = true
	svc.router.Logger.SetLevel(log.WARN)
	svc.router.Renderer = renderer
	svc.router.JSONSerializer = sonicSerializer{}
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.Use(middleware.Recover())
	svc.router.Use(middleware.RequestID())
	svc.router.Use(requestLogger())
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}))

	svc.narrativeService = narrative.NewNarrativeService(store)
	cntrl := controller.NewController(store, svc.narrativeService, svc.sessionService)

	svc.router.GET("/healthz", cntrl.Health)

	svc.router.GET("/", cntrl.Index, svc.SessionMiddleware)

	ui := svc.router.Group("/ui", svc.SessionMiddleware)
	ui.POST("/files", cntrl.UIUploadFiles)
	ui.POST("/files/:index/delete", cntrl.UIRemoveFile)
	ui.POST("/hospital", cntrl.UISelectHospital)
	ui.POST("/narrative", cntrl.UICreateNarrative)
	ui.POST("/back", cntrl.UIBack)

	api := svc.router.Group("/api/v1")

	hospitals := api.Group("/hospitals")
	hospitals.GET("", cntrl.ListHospitals)
	hospitals.GET("/:id", cntrl.GetHospital)
	hospitals.GET("/:id/dashboard", cntrl.GetDashboard)

	sess := api.Group("/session", svc.SessionMiddleware)
	sess.GET("", cntrl.GetSession)
	sess.POST("/files", cntrl.UploadFiles)
	sess.DELETE("/files/:index", cntrl.RemoveFile)
	sess.PUT("/hospital", cntrl.SelectHospital)
	sess.POST("/narrative", cntrl.CreateNarrative)
	sess.POST("/back", cntrl.Back)

	return svc, nil
}
