package wsmfs

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jcd386/WSM-File-System/pkg/models"
)

// Every operation responds with an Outcome envelope: success plus a payload,
// or success=false plus an error message the presentation layer shows
// verbatim. Raw store errors never escape; they are folded into the message.
type Outcome struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Data         any    `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_, _ = w.Write(response)
	}
}

func respondData(w http.ResponseWriter, status int, data any) {
	respondJSON(w, status, Outcome{Success: true, Data: data})
}

// respondErr maps the error kind onto an HTTP status: validation 400, not
// found 404, cycle 409, everything structural or unexpected 500.
func respondErr(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch KindOf(err) {
	case ErrorValidation:
		status = http.StatusBadRequest
	case ErrorNotFound:
		status = http.StatusNotFound
	case ErrorCycle:
		status = http.StatusConflict
	}
	respondJSON(w, status, Outcome{Success: false, ErrorMessage: err.Error()})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Outcome{Success: false, ErrorMessage: message})
}

// Folder handlers

type createFolderRequest struct {
	Name           string  `json:"name"`
	AnchorID       string  `json:"anchorId"`
	ParentFolderID *string `json:"parentFolderId,omitempty"`
	CreatedBy      string  `json:"createdBy"`
}

func (a *App) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var req createFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	parentID, ok := optionalFolderID(w, req.ParentFolderID)
	if !ok {
		return
	}

	folder, err := a.service.CreateFolder(r.Context(), req.Name, models.AnchorID(req.AnchorID), parentID, req.CreatedBy)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusCreated, folderNode(folder))
}

func (a *App) handleListContents(w http.ResponseWriter, r *http.Request) {
	anchor := models.AnchorID(mux.Vars(r)["anchorId"])
	var folderID *models.FolderID
	if raw := r.URL.Query().Get("folderId"); raw != "" {
		id, err := models.ParseFolderID(raw)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "Invalid folder ID")
			return
		}
		folderID = &id
	}

	nodes, err := a.service.ListContents(r.Context(), anchor, folderID)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusOK, nodes)
}

type renameRequest struct {
	Name string `json:"name"`
}

func (a *App) handleRenameFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathFolderID(w, r)
	if !ok {
		return
	}
	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	folder, err := a.service.RenameFolder(r.Context(), id, req.Name)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusOK, folderNode(folder))
}

type moveRequest struct {
	DestinationFolderID *string `json:"destinationFolderId,omitempty"`
}

func (a *App) handleMoveFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathFolderID(w, r)
	if !ok {
		return
	}
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	destID, ok := optionalFolderID(w, req.DestinationFolderID)
	if !ok {
		return
	}

	if err := a.service.MoveFolder(r.Context(), id, destID); err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusOK, nil)
}

func (a *App) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathFolderID(w, r)
	if !ok {
		return
	}
	removed, err := a.service.DeleteFolder(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]int{"removed": removed})
}

func (a *App) handleFolderContentsCount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathFolderID(w, r)
	if !ok {
		return
	}
	count, err := a.service.GetFolderContentsCount(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]int{"count": count})
}

func (a *App) handleSearchFolders(w http.ResponseWriter, r *http.Request) {
	matches, err := a.service.SearchFolders(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusOK, matches)
}

func (a *App) handleAnchorParentInfo(w http.ResponseWriter, r *http.Request) {
	anchor := models.AnchorID(mux.Vars(r)["anchorId"])
	link, err := a.service.GetParentFolderInfo(r.Context(), anchor)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusOK, link)
}

func (a *App) handleFolderParentInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathFolderID(w, r)
	if !ok {
		return
	}
	link, err := a.service.GetFolderParentInfo(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusOK, link)
}

// File handlers

type createFileRequest struct {
	Name       string `json:"name"`
	FolderID   string `json:"folderId"`
	ContentRef string `json:"contentRef"`
	CreatedBy  string `json:"createdBy"`
}

func (a *App) handleCreateFile(w http.ResponseWriter, r *http.Request) {
	var req createFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	folderID, err := models.ParseFolderID(req.FolderID)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid folder ID")
		return
	}

	file, err := a.service.CreateFileRecord(r.Context(), req.Name, folderID, req.ContentRef, req.CreatedBy)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusCreated, fileNode(file))
}

func (a *App) handleMoveFile(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseFileID(mux.Vars(r)["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid file ID")
		return
	}
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.DestinationFolderID == nil {
		respondMessage(w, http.StatusBadRequest, "Destination folder ID is required")
		return
	}
	destID, err := models.ParseFolderID(*req.DestinationFolderID)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid destination folder ID")
		return
	}

	if err := a.service.MoveFile(r.Context(), id, destID); err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusOK, nil)
}

func (a *App) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseFileID(mux.Vars(r)["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid file ID")
		return
	}
	if err := a.service.DeleteFile(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusOK, nil)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"readOnly": a.IsReadOnly(),
	})
}

// path/body ID helpers; a false return means the error response was already
// written.

func pathFolderID(w http.ResponseWriter, r *http.Request) (models.FolderID, bool) {
	id, err := models.ParseFolderID(mux.Vars(r)["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid folder ID")
		return models.FolderID{}, false
	}
	return id, true
}

func optionalFolderID(w http.ResponseWriter, raw *string) (*models.FolderID, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	id, err := models.ParseFolderID(*raw)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid folder ID")
		return nil, false
	}
	return &id, true
}
