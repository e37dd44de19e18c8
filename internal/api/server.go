package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etitcombe/logifymw"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/limbo/gratudiary/internal/service"
	"github.com/limbo/gratudiary/internal/session"
)

type Server struct {
	mx             *chi.Mux
	handler        http.Handler
	userService    service.UserServiceI
	journalService service.JournalServiceI
	sessions       *session.Manager
	jwtService     JWTServiceI
	limiter        *LimiterStore
	allowedOrigins []string
}

type ServicesList struct {
	UserService    service.UserServiceI
	JournalService service.JournalServiceI
	Sessions       *session.Manager
	JwtService     JWTServiceI
	// Guards register and login. Defaults to LimiterOptions{} defaults
	Limiter        *LimiterStore
	AllowedOrigins []string
}

func New(servicesOptions *ServicesList) *Server {
	limiter := servicesOptions.Limiter
	if limiter == nil {
		limiter = NewLimiterStore(LimiterOptions{})
	}
	origins := servicesOptions.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s := &Server{
		mx:             chi.NewMux(),
		userService:    servicesOptions.UserService,
		journalService: servicesOptions.JournalService,
		sessions:       servicesOptions.Sessions,
		jwtService:     servicesOptions.JwtService,
		limiter:        limiter,
		allowedOrigins: origins,
	}
	s.mountRoutes()
	return s
}

func (s *Server) mountRoutes() {
	s.mx.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)

	s.mx.Get("/health", s.Health)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.Health)
		r.Group(func(r chi.Router) {
			r.Use(s.RateLimitMiddleware)
			r.Post("/auth/register", s.Register)
			r.Post("/auth/login", s.Login)
		})
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Post("/auth/logout", s.Logout)
			r.Get("/auth/me", s.Me)

			r.Get("/entries", s.ListEntries)
			r.Post("/entries", s.CreateEntry)
			r.Get("/entries/today", s.TodayEntry)
			r.Get("/entries/{id}", s.GetEntry)
			r.Put("/entries/{id}", s.UpdateEntry)

			r.Get("/stats", s.Stats)
			r.Get("/dashboard", s.Dashboard)
			r.Get("/insights", s.Insights)

			r.Get("/backup", s.ExportBackup)
			r.Post("/backup", s.ImportBackup)
			r.Get("/backup/status", s.BackupStatus)
		})
	})

	accessLog := slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo)
	s.handler = s.RecoverMiddleware(logifymw.LogIt2(accessLog, s.mx))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Run serves on address until SIGINT or SIGTERM, then drains connections.
func (s *Server) Run(address string) error {
	srv := &http.Server{
		Addr:         address,
		Handler:      s,
		ErrorLog:     slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}
	defer s.limiter.Stop()

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		sig := <-sigint

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		slog.Info("shutting down", slog.String("signal", sig.String()))
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("http server shutdown error", slog.String("error", err.Error()))
		}
		close(idleConnsClosed)
	}()

	slog.Info("api listening", slog.String("address", address))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-idleConnsClosed
	return nil
}
