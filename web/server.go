package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"github.com/tunnelsnakes/sandlot/controller"
	"github.com/tunnelsnakes/sandlot/model"
	"github.com/unrolled/render"
)

//go:embed templates
var templates embed.FS

type Config struct {
	Port          int
	JWTSecret     string
	AdminPassword string
	// Requests per minute per client on the API.
	RateLimit      int
	AllowedOrigins []string
	// Use X-Forwarded-For and X-Real-IP as the client address.
	TrustProxy bool
	Clock      clock.Clock
}

type Server struct {
	server *http.Server
}

func NewServer(cfg Config, ctrl controller.C) (*Server, error) {
	if cfg.JWTSecret == "" || cfg.AdminPassword == "" {
		return nil, errors.New("jwt secret and admin password are required")
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	render := newRender()
	limiter := NewRateLimiter(cfg.Clock, cfg.RateLimit, time.Minute)
	router := getRouter(ctrl, render, routerConfig{
		auth:          newTokenAuth([]byte(cfg.JWTSecret), cfg.Clock),
		limiter:       limiter,
		adminPassword: cfg.AdminPassword,
		trustProxy:    cfg.TrustProxy,
	})

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	s := &Server{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Port),
			Handler: c.Handler(router),
		},
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			log.Fatal().Err(err).Msg("fatal error shutting down server")
		}
	}()

	log.Info().Str("addr", s.server.Addr).Msg("web server is listening")
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("fatal error with server")
	}
}

func newRender() *render.Render {
	return render.New(render.Options{
		Directory: "templates",
		Layout:    "layout",
		FileSystem: &render.EmbedFileSystem{
			FS: templates,
		},
		Funcs: []template.FuncMap{
			{
				"date":      dateFormatter,
				"ordinal":   model.Ordinal,
				"costText":  costFormatter,
				"positions": model.FormatPositionList,
			},
		},
	})
}

func dateFormatter(t time.Time) string {
	if t.IsZero() {
		return "Never"
	}
	return t.Format("2006-01-02")
}

// costFormatter shows the keeper cost of a roster player, or a dash when it
// hasn't been computed.
func costFormatter(r model.RosterPlayer) string {
	if r.KeeperCostRound == 0 {
		return "-"
	}
	if r.KeeperCostLabel == "" {
		return fmt.Sprintf("Rd %d", r.KeeperCostRound)
	}
	return fmt.Sprintf("Rd %d (%s)", r.KeeperCostRound, r.KeeperCostLabel)
}
