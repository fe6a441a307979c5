package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/compliance-cli/internal/assessment"
	"github.com/sells-group/compliance-cli/internal/determination"
	"github.com/sells-group/compliance-cli/internal/model"
	"github.com/sells-group/compliance-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the assessment HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		engine := assessment.New(newLoader())
		limiter := rate.NewLimiter(rate.Limit(cfg.Server.RequestsPerSec), cfg.Server.Burst)
		handler := newRouter(engine, st, limiter, cfg.Assess.Jurisdiction)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: handler,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
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

// newRouter builds the API routes.
func newRouter(engine *assessment.Engine, st store.Store, limiter *rate.Limiter, defaultJurisdiction string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(rateLimit(limiter))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/assessments", func(w http.ResponseWriter, r *http.Request) {
		var in assessmentInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := in.validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := engine.Run(in.Category, in.Answers)
		if err != nil {
			zap.L().Error("assessment failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "assessment failed")
			return
		}

		rec, err := st.SaveAssessment(r.Context(), result)
		if err != nil {
			zap.L().Error("save assessment failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "save failed")
			return
		}

		writeJSON(w, http.StatusCreated, rec)
	})

	r.Get("/assessments", func(w http.ResponseWriter, r *http.Request) {
		filter := store.Filter{
			Category: model.ClientCategory(r.URL.Query().Get("category")),
			Tier:     model.RiskTier(r.URL.Query().Get("tier")),
		}
		records, err := st.ListAssessments(r.Context(), filter)
		if err != nil {
			zap.L().Error("list assessments failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "list failed")
			return
		}
		if records == nil {
			records = []store.Record{}
		}
		writeJSON(w, http.StatusOK, records)
	})

	r.Get("/assessments/{id}", func(w http.ResponseWriter, r *http.Request) {
		rec, err := st.GetAssessment(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusNotFound, "assessment not found")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	})

	r.Get("/assessments/{id}/determination", func(w http.ResponseWriter, r *http.Request) {
		rec, err := st.GetAssessment(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusNotFound, "assessment not found")
			return
		}

		jurisdiction := r.URL.Query().Get("jurisdiction")
		if jurisdiction == "" {
			jurisdiction = defaultJurisdiction
		}
		doc := determination.Render(rec.Snapshot, determination.Options{Jurisdiction: jurisdiction})

		if r.URL.Query().Get("format") == "json" {
			writeJSON(w, http.StatusOK, doc)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(doc.Text))
	})

	return r
}

// rateLimit rejects requests over the configured global rate with 429.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
