package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/choropleth-cli/internal/classify"
	"github.com/sells-group/choropleth-cli/internal/config"
	"github.com/sells-group/choropleth-cli/internal/palette"
	"github.com/sells-group/choropleth-cli/internal/theme"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve classification and palette endpoints over HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           newRouter(cfg.Server),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			zap.L().Info("server listening", zap.Int("port", cfg.Server.Port))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return eris.Wrap(err, "serve: listen")
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return eris.Wrap(err, "serve: shutdown")
		}
		zap.L().Info("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// classifyRequest is the POST /v1/classify body: raw values plus the style
// fields a saved style document carries.
type classifyRequest struct {
	Values []float64 `json:"values"`
	theme.Style
}

type paletteRequest struct {
	Scheme   string `json:"scheme"`
	Classes  int    `json:"classes"`
	Reverse  bool   `json:"reverse"`
	MinColor string `json:"min_color,omitempty"`
	MaxColor string `json:"max_color,omitempty"`
}

func newRouter(serverCfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/schemes", handleSchemes)
		r.Post("/palette", handlePalette)

		// Jenks is quadratic in sample count; keep request volume bounded.
		limiter := rate.NewLimiter(rate.Limit(serverCfg.RateLimit), serverCfg.RateBurst)
		r.With(rateLimit(limiter)).Post("/classify", handleClassify)
	})

	return r
}

// rateLimit rejects requests above the configured rate with 429.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func handleSchemes(w http.ResponseWriter, _ *http.Request) {
	methods := classify.Available()
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = string(m)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"schemes": palette.SchemeNames(),
		"methods": names,
	})
}

func handlePalette(w http.ResponseWriter, r *http.Request) {
	var req paletteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Classes < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "classes must be >= 1"})
		return
	}

	minColor := palette.RGB(173, 216, 230)
	maxColor := palette.RGB(8, 81, 156)
	if req.MinColor != "" {
		c, err := palette.ParseHex(req.MinColor)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid min_color"})
			return
		}
		minColor = c
	}
	if req.MaxColor != "" {
		c, err := palette.ParseHex(req.MaxColor)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid max_color"})
			return
		}
		maxColor = c
	}

	colors := palette.ForScheme(req.Scheme, req.Classes, req.Reverse, minColor, maxColor)
	hexes := make([]string, len(colors))
	for i, c := range colors {
		hexes[i] = c.Hex()
	}
	writeJSON(w, http.StatusOK, map[string]any{"colors": hexes})
}

func handleClassify(w http.ResponseWriter, r *http.Request) {
	req := classifyRequest{Style: theme.DefaultStyle()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	// Screen exactly like the file sources do: drop NaN and ±Inf.
	values := make([]float64, 0, len(req.Values))
	invalid := 0
	for _, v := range req.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			invalid++
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no valid numeric values"})
		return
	}

	cls, err := theme.Build(r.Context(), values, req.Style)
	if err != nil {
		zap.L().Warn("classify request failed", zap.Error(err))
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	cls.InvalidCount = invalid

	writeJSON(w, http.StatusOK, map[string]any{
		"classification": cls,
		"symbology":      req.Style.Symbology(cls),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("write response failed", zap.Error(err))
	}
}
