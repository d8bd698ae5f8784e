package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/selovida/labelops/internal/importer"
	"github.com/selovida/labelops/internal/logger"
	"github.com/selovida/labelops/internal/rules"
	"github.com/selovida/labelops/internal/store"
)

type application struct {
	config   config
	store    *store.Storage
	engine   *rules.Engine
	pipeline *importer.Pipeline
	logger   *logger.Logger
}

type config struct {
	addr           string
	db             dbConfig
	migrationsPath string
	autoMigrate    bool
	anthropicKey   string
	anthropicModel string
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", app.handleListTransactions)
			r.Post("/", app.handleCreateTransaction)
			r.Put("/{id}", app.handleUpdateTransaction)
			r.Delete("/{id}", app.handleDeleteTransaction)
			r.Post("/bulk-delete", app.handleBulkDeleteTransactions)
			r.Post("/series", app.handleCreateTransactionSeries)
			r.Post("/import/ofx", app.handleImportOFX)
			r.Get("/export/ofx", app.handleExportOFX)
			r.Get("/export/csv", app.handleExportCSV)
		})

		r.Route("/rules", func(r chi.Router) {
			r.Get("/", app.handleListRules)
			r.Post("/", app.handleCreateRule)
			r.Delete("/{id}", app.handleDeleteRule)
			r.Post("/{id}/restore", app.handleRestoreRule)
			r.Get("/match", app.handleMatchRule)
		})

		r.Route("/artists", func(r chi.Router) {
			r.Get("/", app.handleListArtists)
			r.Post("/", app.handleCreateArtist)
			r.Post("/import/csv", app.handleImportArtistsCSV)
		})

		r.Route("/releases", func(r chi.Router) {
			r.Get("/", app.handleListReleases)
			r.Post("/", app.handleCreateRelease)
			r.Get("/{id}/participants", app.handleGetReleaseParticipants)
			r.Put("/{id}/participants", app.handleReplaceReleaseParticipants)
			r.Patch("/{id}/share-status", app.handleSetReleaseShareStatus)
		})

		r.Route("/pending-shares", func(r chi.Router) {
			r.Get("/", app.handleListPendingShares)
			r.Post("/", app.handleCreatePendingShare)
			r.Put("/{id}", app.handleUpdatePendingShare)
			r.Patch("/{id}/status", app.handleUpdatePendingShareStatus)
			r.Delete("/{id}", app.handleDeletePendingShare)
		})

		r.Route("/imports", func(r chi.Router) {
			r.Get("/history", app.handleGetImportHistory)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/summary", app.handleGetDashboardSummary)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	log.Printf("Server started on %s", app.config.addr)
	return srv.ListenAndServe()
}
