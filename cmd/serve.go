package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leadintel/leadscan/internal/export"
	"github.com/leadintel/leadscan/internal/leadgen"
	"github.com/leadintel/leadscan/internal/model"
	"github.com/leadintel/leadscan/internal/outreach"
	"github.com/leadintel/leadscan/internal/session"
	"github.com/leadintel/leadscan/internal/view"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for the web frontend",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		api := &apiServer{
			store:       session.NewStore(),
			synthesizer: buildSynthesizer(cfg),
			drafter:     buildDrafter(cfg),
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: api.routes(cfg.Server.AllowedOrigins),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(),
				time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
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

// apiServer holds the handler dependencies.
type apiServer struct {
	store       *session.Store
	synthesizer *leadgen.Synthesizer
	drafter     *outreach.Drafter
}

func (a *apiServer) routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/scan", a.handleScan)
		r.Get("/leads", a.handleListLeads)
		r.Get("/leads/{id}", a.handleGetLead)
		r.Put("/leads/{id}/save", a.handleSave)
		r.Delete("/leads/{id}/save", a.handleUnsave)
		r.Post("/leads/{id}/draft", a.handleDraft)
		r.Get("/export.csv", a.handleExportCSV)
		r.Get("/export.xlsx", a.handleExportXLSX)
	})

	return r
}

// handleScan runs a scan synchronously and returns the new snapshot. A
// newer scan arriving while this one runs wins; the stale result is
// discarded and reported as a conflict.
func (a *apiServer) handleScan(w http.ResponseWriter, r *http.Request) {
	var params model.SearchParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := params.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token := a.store.BeginScan(params)
	leads, err := a.synthesizer.Synthesize(r.Context(), params)
	if err != nil {
		a.store.FailScan(token)
		zap.L().Error("scan failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "scan failed")
		return
	}

	if !a.store.CompleteScan(token, leads) {
		writeError(w, http.StatusConflict, "superseded by a newer scan")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"leads": leads})
}

// handleListLeads applies query-string filters and sorting to the
// current snapshot.
func (a *apiServer) handleListLeads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	minScore, _ := strconv.Atoi(q.Get("min_score"))
	filters := view.Filters{
		Text:      q.Get("q"),
		MinScore:  minScore,
		Industry:  q.Get("industry"),
		Location:  q.Get("location"),
		SavedOnly: q.Get("saved") == "true",
	}

	leads := view.Apply(a.store.Leads(), filters, view.ParseSortKey(q.Get("sort")), a.store.SavedIDs())
	writeJSON(w, http.StatusOK, map[string]any{
		"leads":    leads,
		"saved":    a.store.SavedIDs(),
		"scanning": a.store.Scanning(),
	})
}

func (a *apiServer) handleGetLead(w http.ResponseWriter, r *http.Request) {
	lead, err := a.store.Lead(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}

	resp := map[string]any{"lead": lead}
	if draft, ok := a.store.Draft(lead.ID); ok {
		resp["draft"] = draft
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *apiServer) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Save(chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (a *apiServer) handleUnsave(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Unsave(chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "unsaved"})
}

// handleDraft generates (or regenerates) the outreach draft for a lead
// and stores it in the session.
func (a *apiServer) handleDraft(w http.ResponseWriter, r *http.Request) {
	lead, err := a.store.Lead(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}

	draft := a.drafter.Draft(r.Context(), lead, a.store.Params().Service)
	if err := a.store.SetDraft(lead.ID, draft); err != nil {
		// The snapshot changed between lookup and store.
		writeError(w, http.StatusConflict, "lead no longer in snapshot")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"draft": draft})
}

func (a *apiServer) handleExportCSV(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="leads.csv"`)
	if err := export.WriteCSV(w, a.store.Leads()); err != nil {
		zap.L().Error("csv export failed", zap.Error(err))
	}
}

func (a *apiServer) handleExportXLSX(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="leads.xlsx"`)
	if err := export.WriteXLSX(w, a.store.Leads()); err != nil {
		zap.L().Error("xlsx export failed", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
