package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "agency_quotes/docs" // generated by swag init
	"agency_quotes/internal/adapter/http/handlers"
	"agency_quotes/internal/adapter/http/middleware"
	"agency_quotes/internal/config"
	"agency_quotes/internal/infrastructure/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	PathArtifacts   = "/artifacts"
	shutdownTimeout = 15 * time.Second
)

// Run wires the dependencies and serves the API until the server stops.
func Run(ctx context.Context, cfg *config.Config) error {
	deps, err := buildDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	router := NewRouter(RouterOptions{
		JWTSecret:      []byte(cfg.Auth.JWTSecret),
		QuoteHandler:   handlers.NewQuoteHandler(deps.Quotes),
		ArtifactsDir:   deps.ArtifactsDir,
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
	})

	srv := &http.Server{Addr: cfg.Addr(), Handler: router, ReadHeaderTimeout: 10 * time.Second}
	serverErrCh := make(chan error, 1)
	go func() {
		logger.Get().WithField("addr", cfg.Addr()).Info("http server listening")
		serverErrCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to startup the application: %w", err)
		}
		return nil
	}
}

type RouterOptions struct {
	JWTSecret      []byte
	QuoteHandler   *handlers.QuoteHandler
	AllowedOrigins []string
	// ArtifactsDir is served under /artifacts when documents are stored locally.
	ArtifactsDir string
}

func NewRouter(opts RouterOptions) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)
	router.Use(middleware.CORS(opts.AllowedOrigins))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if opts.ArtifactsDir != "" {
		router.StaticFS(PathArtifacts, http.Dir(opts.ArtifactsDir))
	}

	// public routes
	v1 := router.Group("/v1")
	addPingRoutes(v1)

	authed := v1.Group("", middleware.Authenticate(opts.JWTSecret))
	addQuoteRoutes(authed, opts.QuoteHandler)
	return router
}

func setMiddlewares(router *gin.Engine) {
	log := logger.Get().WithField("module", "http")
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithField("path", c.Request.URL.Path).Errorf("recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
