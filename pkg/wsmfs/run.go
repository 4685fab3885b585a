package wsmfs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"
)

// Run starts the HTTP server and blocks until the context is cancelled or
// the listener fails. Routes, leaf-first:
//
//	GET  /api/health                            - service health and mode
//
//	POST   /api/folders                         - create folder
//	PUT    /api/folders/{id}/rename             - rename folder
//	PUT    /api/folders/{id}/move               - move folder (cycle-checked)
//	DELETE /api/folders/{id}                    - cascade delete
//	GET    /api/folders/{id}/count              - pre-delete contents count
//	GET    /api/folders/{id}/parent-info        - cross-record link of a folder
//	GET    /api/folders/search?q=               - name substring search
//	GET    /api/anchors/{anchorId}/contents     - list roots, or ?folderId= children
//	GET    /api/anchors/{anchorId}/parent-info  - cross-record link of an anchor
//
//	POST   /api/files                           - register file record
//	PUT    /api/files/{id}/move                 - move file
//	DELETE /api/files/{id}                      - delete file record
//
//	POST   /api/template-sets                   - create template set
//	GET    /api/template-sets                   - list template sets
//	PUT    /api/template-sets/{id}/rename       - rename template set
//	DELETE /api/template-sets/{id}              - cascade delete template set
//	GET    /api/template-sets/{id}/folders      - root template folders
//	POST   /api/template-sets/{id}/apply        - clone into real folders
//	POST   /api/template-folders                - create template folder
//	PUT    /api/template-folders/{id}/rename    - rename template folder
//	PUT    /api/template-folders/{id}/move      - move template folder
//	DELETE /api/template-folders/{id}           - cascade delete template folder
//	GET    /api/template-folders/{id}/count     - pre-delete descendant count
//	GET    /api/template-folders/{id}/move-targets - legal move destinations
//
//	GET  /api/events                            - websocket change feed
//	GET  /api/admin/mode                        - read read-only state
//	POST /api/admin/mode                        - toggle read-only state
//
// Graceful shutdown gives in-flight requests up to 5 seconds.
func (a *App) Run(ctx context.Context, cmd *RunCommand) error {
	router := mux.NewRouter()
	router.Use(hlog.NewHandler(a.log), requestLogger())

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", a.handleHealth).Methods("GET")

	// Folder routes
	api.HandleFunc("/folders", a.handleCreateFolder).Methods("POST")
	api.HandleFunc("/folders/search", a.handleSearchFolders).Methods("GET")
	api.HandleFunc("/folders/{id}/rename", a.handleRenameFolder).Methods("PUT")
	api.HandleFunc("/folders/{id}/move", a.handleMoveFolder).Methods("PUT")
	api.HandleFunc("/folders/{id}/count", a.handleFolderContentsCount).Methods("GET")
	api.HandleFunc("/folders/{id}/parent-info", a.handleFolderParentInfo).Methods("GET")
	api.HandleFunc("/folders/{id}", a.handleDeleteFolder).Methods("DELETE")
	api.HandleFunc("/anchors/{anchorId}/contents", a.handleListContents).Methods("GET")
	api.HandleFunc("/anchors/{anchorId}/parent-info", a.handleAnchorParentInfo).Methods("GET")

	// File routes
	api.HandleFunc("/files", a.handleCreateFile).Methods("POST")
	api.HandleFunc("/files/{id}/move", a.handleMoveFile).Methods("PUT")
	api.HandleFunc("/files/{id}", a.handleDeleteFile).Methods("DELETE")

	// Template routes
	api.HandleFunc("/template-sets", a.handleCreateTemplateSet).Methods("POST")
	api.HandleFunc("/template-sets", a.handleListTemplateSets).Methods("GET")
	api.HandleFunc("/template-sets/{id}/rename", a.handleRenameTemplateSet).Methods("PUT")
	api.HandleFunc("/template-sets/{id}/folders", a.handleListTemplateTree).Methods("GET")
	api.HandleFunc("/template-sets/{id}/apply", a.handleApplyTemplate).Methods("POST")
	api.HandleFunc("/template-sets/{id}", a.handleDeleteTemplateSet).Methods("DELETE")
	api.HandleFunc("/template-folders", a.handleCreateTemplateFolder).Methods("POST")
	api.HandleFunc("/template-folders/{id}/rename", a.handleRenameTemplateFolder).Methods("PUT")
	api.HandleFunc("/template-folders/{id}/move", a.handleMoveTemplateFolder).Methods("PUT")
	api.HandleFunc("/template-folders/{id}/count", a.handleTemplateChildCount).Methods("GET")
	api.HandleFunc("/template-folders/{id}/move-targets", a.handleTemplateMoveTargets).Methods("GET")
	api.HandleFunc("/template-folders/{id}", a.handleDeleteTemplateFolder).Methods("DELETE")

	// Change feed and administration
	api.Handle("/events", a.events).Methods("GET")
	api.HandleFunc("/admin/mode", a.handleGetMode).Methods("GET")
	api.HandleFunc("/admin/mode", a.handleSetMode).Methods("POST")

	// Health check route (outside of /api prefix)
	router.HandleFunc("/health", a.handleHealth).Methods("GET")

	addr := fmt.Sprintf(":%s", a.config.ServerPort)
	a.log.Info().Str("addr", addr).Bool("readOnly", a.IsReadOnly()).Msg("starting server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}

func requestLogger() func(http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration", duration).
			Msg("request")
	})
}

// Migrate creates or updates the database schema.
func (a *App) Migrate(ctx context.Context, cmd *MigrateCommand) error {
	a.log.Info().Msg("running migrations")
	if err := a.store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	a.log.Info().Msg("migrations complete")
	return nil
}

type modeRequest struct {
	ReadOnly bool `json:"readOnly"`
}

func (a *App) handleGetMode(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]bool{"readOnly": a.IsReadOnly()})
}

func (a *App) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	a.SetReadOnly(req.ReadOnly)
	respondData(w, http.StatusOK, map[string]bool{"readOnly": a.IsReadOnly()})
}
