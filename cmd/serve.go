package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
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

	"github.com/sells-group/edu-choropleth/internal/export"
	"github.com/sells-group/edu-choropleth/internal/page"
)

var servePort int

// renderedMap holds the bytes served for every request. It is built once
// before the server starts listening and only read afterwards.
type renderedMap struct {
	html      []byte
	geojson   []byte
	counties  int
	unmatched int
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Render once and serve the map over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		log := runLogger("serve")
		ds, res, err := loadAndRender(ctx, cfg, newFetcher(cfg), log)
		if err != nil {
			return err
		}

		p, err := page.FromResult(res, cfg.Output.Title, cfg.Output.Description)
		if err != nil {
			return err
		}
		var htmlBuf, geoBuf bytes.Buffer
		if err := page.Render(&htmlBuf, p); err != nil {
			return err
		}
		if err := export.WriteGeoJSON(&geoBuf, export.Counties(ds, res)); err != nil {
			return err
		}

		m := &renderedMap{
			html:      htmlBuf.Bytes(),
			geojson:   geoBuf.Bytes(),
			counties:  len(res.Shapes),
			unmatched: res.Unmatched,
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           newRouter(m, cfg.Server.AllowedOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			log.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn("server shutdown", zap.Error(err))
			}
		}()

		log.Info("starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func newRouter(m *renderedMap, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(m.html)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"counties":  m.counties,
			"unmatched": m.unmatched,
		})
	})

	r.Get("/counties.geojson", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write(m.geojson)
	})

	return r
}
