package httpapi

import (
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/toolly/toolly/internal/server/models"
	"github.com/toolly/toolly/internal/server/services"
)

const maxAttachmentSize = 10 << 20 // 10 MiB

type todoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
	Link        string `json:"link,omitempty"`
	FolderID    int64  `json:"folderId"`
}

func parseDeadline(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// todoInputFromRequest accepts either a JSON body or a multipart form with an
// optional file part. The multipart path is what the web client uses when an
// attachment is present.
func todoInputFromRequest(w http.ResponseWriter, r *http.Request) (*services.TodoInput, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req todoRequest
		if !decodeJSON(w, r, &req) {
			return nil, false
		}
		deadline, ok := parseDeadline(req.Deadline)
		if !ok {
			writeErrorMessage(w, http.StatusBadRequest, "invalid deadline")
			return nil, false
		}
		return &services.TodoInput{
			Title:       req.Title,
			Description: req.Description,
			Deadline:    deadline,
			Link:        req.Link,
			FolderID:    req.FolderID,
		}, true
	}

	if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid multipart form")
		return nil, false
	}

	deadline, ok := parseDeadline(r.FormValue("deadline"))
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid deadline")
		return nil, false
	}
	folderID, _ := strconv.ParseInt(r.FormValue("folderId"), 10, 64)

	in := &services.TodoInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Deadline:    deadline,
		Link:        r.FormValue("link"),
		FolderID:    folderID,
	}

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxAttachmentSize+1))
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "could not read file")
			return nil, false
		}
		if len(data) > maxAttachmentSize {
			writeErrorMessage(w, http.StatusBadRequest, "file too large")
			return nil, false
		}
		in.File = &models.Attachment{Name: header.Filename, Data: data}
	}
	return in, true
}

func (s *Server) handleTodoCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	in, ok := todoInputFromRequest(w, r)
	if !ok {
		return
	}

	todo, err := s.todos.Create(r.Context(), userID, in)
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

func (s *Server) handleTodoList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	list, err := s.todos.List(r.Context(), userID)
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleTodoListByFolder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	folderID, ok := pathID(r, "folderId")
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid folder id")
		return
	}

	list, err := s.todos.ListByFolder(r.Context(), userID, folderID)
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleTodoFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	att, err := s.todos.GetAttachment(r.Context(), id, userID)
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+att.Name+`"`)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(att.Data)
}

func (s *Server) handleTodoUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid todo id")
		return
	}
	in, ok := todoInputFromRequest(w, r)
	if !ok {
		return
	}

	todo, err := s.todos.Update(r.Context(), id, userID, in)
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

type todoDoneRequest struct {
	Done bool `json:"done"`
}

func (s *Server) handleTodoSetDone(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid todo id")
		return
	}
	var req todoDoneRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.todos.SetDone(r.Context(), id, userID, req.Done); err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "todo updated"})
}

func (s *Server) handleTodoDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	if err := s.todos.Delete(r.Context(), id, userID); err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "todo deleted"})
}
