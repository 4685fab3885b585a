package wsmfs

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jcd386/WSM-File-System/pkg/models"
)

// Template set handlers

func (a *App) handleCreateTemplateSet(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	set, err := a.service.CreateTemplateSet(r.Context(), req.Name)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusCreated, set)
}

func (a *App) handleListTemplateSets(w http.ResponseWriter, r *http.Request) {
	sets, err := a.service.ListTemplateSets(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusOK, sets)
}

func (a *App) handleRenameTemplateSet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathTemplateSetID(w, r)
	if !ok {
		return
	}
	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	set, err := a.service.RenameTemplateSet(r.Context(), id, req.Name)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusOK, set)
}

func (a *App) handleDeleteTemplateSet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathTemplateSetID(w, r)
	if !ok {
		return
	}
	removed, err := a.service.DeleteTemplateSet(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]int{"removed": removed})
}

func (a *App) handleListTemplateTree(w http.ResponseWriter, r *http.Request) {
	id, ok := pathTemplateSetID(w, r)
	if !ok {
		return
	}
	roots, err := a.service.ListTemplateTree(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusOK, roots)
}

// Template folder handlers

type createTemplateFolderRequest struct {
	TemplateSetID string  `json:"templateSetId"`
	Name          string  `json:"name"`
	ParentID      *string `json:"parentId,omitempty"`
}

func (a *App) handleCreateTemplateFolder(w http.ResponseWriter, r *http.Request) {
	var req createTemplateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	setID, err := models.ParseTemplateSetID(req.TemplateSetID)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid template set ID")
		return
	}
	parentID, ok := optionalTemplateFolderID(w, req.ParentID)
	if !ok {
		return
	}

	tf, err := a.service.CreateTemplateFolder(r.Context(), setID, req.Name, parentID)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusCreated, tf)
}

func (a *App) handleRenameTemplateFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathTemplateFolderID(w, r)
	if !ok {
		return
	}
	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	tf, err := a.service.RenameTemplateFolder(r.Context(), id, req.Name)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusOK, tf)
}

type moveTemplateFolderRequest struct {
	DestinationID *string `json:"destinationId,omitempty"`
}

func (a *App) handleMoveTemplateFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathTemplateFolderID(w, r)
	if !ok {
		return
	}
	var req moveTemplateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	destID, ok := optionalTemplateFolderID(w, req.DestinationID)
	if !ok {
		return
	}

	if err := a.service.MoveTemplateFolder(r.Context(), id, destID); err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusOK, nil)
}

func (a *App) handleDeleteTemplateFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathTemplateFolderID(w, r)
	if !ok {
		return
	}
	removed, err := a.service.DeleteTemplateFolder(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]int{"removed": removed})
}

func (a *App) handleTemplateChildCount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathTemplateFolderID(w, r)
	if !ok {
		return
	}
	count, err := a.service.GetTemplateChildCount(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]int{"count": count})
}

func (a *App) handleTemplateMoveTargets(w http.ResponseWriter, r *http.Request) {
	id, ok := pathTemplateFolderID(w, r)
	if !ok {
		return
	}
	targets, err := a.service.GetMoveTargets(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondData(w, http.StatusOK, targets)
}

type applyTemplateRequest struct {
	TargetAnchorID string  `json:"targetAnchorId"`
	ParentAnchorID *string `json:"parentAnchorId,omitempty"`
	RootFolderName string  `json:"rootFolderName"`
	CreatedBy      string  `json:"createdBy"`
}

// handleApplyTemplate is the automation entry point: four inputs in, a clone
// out. On a mid-walk failure the partial result (with the synthetic root's
// id) is included so the caller can cascade-delete the partial subtree.
func (a *App) handleApplyTemplate(w http.ResponseWriter, r *http.Request) {
	setID, ok := pathTemplateSetID(w, r)
	if !ok {
		return
	}
	var req applyTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	var parentAnchor *models.AnchorID
	if req.ParentAnchorID != nil && *req.ParentAnchorID != "" {
		pa := models.AnchorID(*req.ParentAnchorID)
		parentAnchor = &pa
	}

	result, err := a.service.ApplyTemplate(r.Context(), setID, models.AnchorID(req.TargetAnchorID), parentAnchor, req.RootFolderName, req.CreatedBy)
	if err != nil {
		status := http.StatusInternalServerError
		switch KindOf(err) {
		case ErrorValidation:
			status = http.StatusBadRequest
		case ErrorNotFound:
			status = http.StatusNotFound
		}
		respondJSON(w, status, Outcome{Success: false, ErrorMessage: err.Error(), Data: result})
		return
	}
	respondData(w, http.StatusCreated, result)
}

func pathTemplateSetID(w http.ResponseWriter, r *http.Request) (models.TemplateSetID, bool) {
	id, err := models.ParseTemplateSetID(mux.Vars(r)["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid template set ID")
		return models.TemplateSetID{}, false
	}
	return id, true
}

func pathTemplateFolderID(w http.ResponseWriter, r *http.Request) (models.TemplateFolderID, bool) {
	id, err := models.ParseTemplateFolderID(mux.Vars(r)["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid template folder ID")
		return models.TemplateFolderID{}, false
	}
	return id, true
}

func optionalTemplateFolderID(w http.ResponseWriter, raw *string) (*models.TemplateFolderID, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	id, err := models.ParseTemplateFolderID(*raw)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid template folder ID")
		return nil, false
	}
	return &id, true
}
