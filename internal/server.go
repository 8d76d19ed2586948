package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/bedgemon/internal/app"
	"github.com/2beens/bedgemon/internal/config"
	"github.com/2beens/bedgemon/internal/draft"
	"github.com/2beens/bedgemon/internal/middleware"
	"github.com/2beens/bedgemon/internal/misc"
	"github.com/2beens/bedgemon/internal/telemetry/tracing"
	"github.com/2beens/bedgemon/internal/tracker"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	appSecretHash     string // bcrypt hash of the secret the UI shell and the CLI send
	versionInfo       string

	config       *config.Config
	app          *app.App
	otelShutdown func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	AppSecretHash           string
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "bedgemon-service")
	if err != nil {
		return nil, err
	}

	a, err := app.New(ctx, app.Params{
		Config:           params.Config,
		RedisPassword:    params.RedisPassword,
		PostgresPassword: params.PostgresPassword,
		TracingEnabled:   params.HoneycombTracingEnabled,
		MetricsNamespace: "bedgemon",
		MetricsSubsystem: "service",
	})
	if err != nil {
		otelShutdown()
		return nil, fmt.Errorf("new app: %w", err)
	}
	a.MetricsManager.GaugeLifeSignal.Set(0)

	session, err := a.Resolver.RestoreSession(ctx)
	if err != nil {
		log.Errorf("restore session: %s", err)
	} else if session.SignedIn() {
		log.Infof("session restored, signed in as [%s]", session.Profile)
	} else {
		log.Infoln("no session to restore, waiting for sign in")
	}

	return &Server{
		appSecretHash: params.AppSecretHash,
		versionInfo:   params.VersionInfo,
		config:        params.Config,
		app:           a,
		otelShutdown:  otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("bedgemon-router"))

	miscHandler := misc.NewHandler(s.versionInfo, s.app.Resolver)
	miscHandler.SetupRoutes(r, s.app.RateLimiter, s.app.MetricsManager)

	trackerHandler := tracker.NewHandler(s.app.Syncer)
	trackerHandler.SetupRoutes(r)

	draftHandler := draft.NewHandler(s.app.Drafts)
	draftHandler.SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.appSecretHash, s.app.Resolver)

	r.Use(middleware.PanicRecovery(s.app.MetricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.app.MetricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest(middleware.MaxRequestBodyBytes))

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.app.PromRegistry,
		promhttp.HandlerFor(s.app.PromRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(host, strconv.Itoa(s.config.MetricsPort))
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.app.MetricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.app.MetricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.app.Close()

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.app.MetricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.app.MetricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
