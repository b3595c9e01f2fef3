package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aeo-snapshot/aeo-cli/internal/campaign"
	"github.com/aeo-snapshot/aeo-cli/internal/model"
	"github.com/aeo-snapshot/aeo-cli/internal/store"
)

var servePort int

// analysisRunner is the slice of campaign.Service the HTTP handlers
// need; the tests swap in a fake.
type analysisRunner interface {
	Execute(ctx context.Context, params campaign.Params) (*model.Analysis, error)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for analysis requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		svc, err := initService()
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(svc, st),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(context.Background()) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newRouter(runner analysisRunner, st store.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/analyze", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Brand     string   `json:"brand"`
			Domain    string   `json:"domain"`
			Sector    string   `json:"sector"`
			Keywords  string   `json:"keywords"`
			Questions []string `json:"questions"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		name := body.Brand
		if name == "" {
			name = body.Domain
		}
		if name == "" || body.Sector == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "brand and sector are required"})
			return
		}

		analysis, err := runner.Execute(req.Context(), campaign.Params{
			Brand: model.Brand{
				Name:     name,
				Sector:   body.Sector,
				Keywords: body.Keywords,
			},
			Questions: body.Questions,
		})
		if err != nil {
			zap.L().Error("analysis request failed",
				zap.String("brand", name),
				zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		if err := st.SaveAnalysis(req.Context(), analysis); err != nil {
			zap.L().Error("save analysis failed",
				zap.String("id", analysis.ID),
				zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to persist analysis"})
			return
		}

		writeJSON(w, http.StatusOK, analysis)
	})

	r.Get("/api/analyses", func(w http.ResponseWriter, req *http.Request) {
		limit := 0
		if raw := req.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
				return
			}
			limit = n
		}

		analyses, err := st.ListAnalyses(req.Context(), store.AnalysisFilter{
			Brand: req.URL.Query().Get("brand"),
			Limit: limit,
		})
		if err != nil {
			zap.L().Error("list analyses failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list analyses"})
			return
		}
		if analyses == nil {
			analyses = []model.Analysis{}
		}
		writeJSON(w, http.StatusOK, analyses)
	})

	r.Get("/api/analyses/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")
		analysis, err := st.GetAnalysis(req.Context(), id)
		if err != nil {
			zap.L().Error("get analysis failed", zap.String("id", id), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load analysis"})
			return
		}
		if analysis == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "analysis not found"})
			return
		}
		writeJSON(w, http.StatusOK, analysis)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
