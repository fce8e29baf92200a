package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id, err == nil && id > 0
}

// requireUser is shared by all ownership-scoped handlers.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "authorization required")
	}
	return userID, ok
}

type folderRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleFolderCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req folderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	folder, err := s.folders.Create(r.Context(), userID, req.Name)
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, folder)
}

func (s *Server) handleFolderList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	list, err := s.folders.List(r.Context(), userID)
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleFolderRename(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid folder id")
		return
	}
	var req folderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.folders.Rename(r.Context(), id, userID, req.Name); err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "folder renamed"})
}

func (s *Server) handleFolderDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid folder id")
		return
	}

	if err := s.folders.Delete(r.Context(), id, userID); err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "folder deleted"})
}
