package httpapi

import (
	"net/http"
)

type postitRequest struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FolderID int64   `json:"folderId"`
}

func (s *Server) handlePostitCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req postitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	postit, err := s.postits.Create(r.Context(), userID, req.Text, req.X, req.Y, req.FolderID)
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, postit)
}

func (s *Server) handlePostitListByFolder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	folderID, ok := pathID(r, "folderId")
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid folder id")
		return
	}

	list, err := s.postits.ListByFolder(r.Context(), userID, folderID)
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handlePostitUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid postit id")
		return
	}
	var req postitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.postits.Update(r.Context(), id, userID, req.Text, req.X, req.Y); err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "postit updated"})
}

func (s *Server) handlePostitDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid postit id")
		return
	}

	if err := s.postits.Delete(r.Context(), id, userID); err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "postit deleted"})
}
