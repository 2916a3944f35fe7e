package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/Domenick1991/tripsearch/api"
	"github.com/Domenick1991/tripsearch/config"
	"github.com/Domenick1991/tripsearch/internal/metrics"
	"github.com/Domenick1991/tripsearch/internal/service/booking"
	"github.com/Domenick1991/tripsearch/internal/service/catalog"
	"github.com/Domenick1991/tripsearch/internal/service/search"
)

const shutdownTimeout = 5 * time.Second

type Services struct {
	Search   search.SearchUseCase
	Bookings booking.BookingUseCase
	Catalog  catalog.CatalogUseCase
}

// Check is a named readiness probe, such as a database ping.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

type Servers struct {
	grpcServer *grpc.Server
	health     *health.Server
	httpServer *http.Server
}

// Run starts the HTTP API and the gRPC health server and blocks until ctx is
// canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger, svcs Services, checks ...Check) error {
	s := newServers(cfg, log, svcs, checks)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}

	errCh := make(chan error, 2)
	go func() { errCh <- s.grpcServer.Serve(lis) }()
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Info("servers started", "http", cfg.HTTP.Address, "grpc", cfg.GRPC.Address)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(cfg *config.Config, log *slog.Logger, svcs Services, checks []Check) *Servers {
	grpcSrv := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	return &Servers{
		grpcServer: grpcSrv,
		health:     healthSrv,
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           NewRouter(cfg, log, svcs, checks...),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// NewRouter wires the API routes, docs, metrics and probes onto a gin engine.
func NewRouter(cfg *config.Config, log *slog.Logger, svcs Services, checks ...Check) *gin.Engine {
	metrics.Register()

	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(log), metrics.GinMiddleware())
	if len(cfg.HTTP.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.HTTP.CORSOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
			ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
			MaxAge:        12 * time.Hour,
		}))
	}

	apiGroup := router.Group("/api")
	api.NewCatalogHandler(svcs.Catalog).Register(apiGroup)
	api.NewTripHandler(svcs.Search, svcs.Bookings).Register(apiGroup.Group("/trips"))

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/healthz", healthz(checks))

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/trips.swagger.json"))))
	}

	return router
}

func healthz(checks []Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		result := gin.H{}
		for _, check := range checks {
			if err := check.Probe(ctx); err != nil {
				status = http.StatusServiceUnavailable
				result[check.Name] = err.Error()
				continue
			}
			result[check.Name] = "ok"
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "checks": result})
	}
}
