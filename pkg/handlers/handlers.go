package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"docs-editor/pkg/db"
	"docs-editor/pkg/doctree"
	"docs-editor/pkg/editor"
	"docs-editor/pkg/preview"
	"docs-editor/pkg/room"
	"docs-editor/pkg/textfmt"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
)

// Handlers contains all HTTP and WebSocket handlers
type Handlers struct {
	roomManager *room.RoomManager
	renderer    *preview.Renderer
}

// NewHandlers creates a new handlers instance
func NewHandlers(roomManager *room.RoomManager, renderer *preview.Renderer) *Handlers {
	return &Handlers{
		roomManager: roomManager,
		renderer:    renderer,
	}
}

// CreateProject creates a new project, empty or from the demo seed
func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID string           `json:"project_id"`
		Seed      bool             `json:"seed"`
		Tree      *doctree.Project `json:"tree"`
	}

	// an empty body creates an empty project
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	tree := req.Tree
	switch {
	case tree != nil:
	case req.Seed:
		tree = doctree.DemoProject()
	default:
		tree = &doctree.Project{Sections: []*doctree.Section{}}
	}
	if req.ProjectID != "" {
		tree.ProjectID = req.ProjectID
	}

	project, err := h.roomManager.Store.CreateProject(tree)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

// ListProjects returns all stored projects
func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.roomManager.Store.ListProjects()
	if err != nil {
		glog.Warningf("list projects: %v", err)
		http.Error(w, "Failed to list projects", http.StatusInternalServerError)
		return
	}
	if projects == nil {
		projects = []*db.Project{}
	}

	writeJSON(w, http.StatusOK, projects)
}

// GetProject returns the stored project by ID
func (h *Handlers) GetProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	project, err := h.roomManager.Store.GetProject(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// DeleteProject deletes a project and closes its room
func (h *Handlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.roomManager.Store.DeleteProject(id); err != nil {
		writeError(w, err)
		return
	}
	h.roomManager.CloseRoom(id)

	w.WriteHeader(http.StatusNoContent)
}

// GetState returns the live editing state of a project
func (h *Handlers) GetState(w http.ResponseWriter, r *http.Request) {
	rm, err := h.roomManager.GetOrCreateRoom(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rm.State())
}

// ApplyIntent applies one intent and returns the resulting state
func (h *Handlers) ApplyIntent(w http.ResponseWriter, r *http.Request) {
	var intent editor.Intent
	if err := json.NewDecoder(r.Body).Decode(&intent); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	rm, err := h.roomManager.GetOrCreateRoom(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	state, err := rm.Apply(intent)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// Preview renders a document as HTML. Without a path query the active
// document is rendered.
func (h *Handlers) Preview(w http.ResponseWriter, r *http.Request) {
	rm, err := h.roomManager.GetOrCreateRoom(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	var doc *doctree.Document
	if rawPath := r.URL.Query().Get("path"); rawPath != "" {
		section := 0
		if rawSection := r.URL.Query().Get("section"); rawSection != "" {
			if section, err = strconv.Atoi(rawSection); err != nil {
				http.Error(w, "Invalid section", http.StatusBadRequest)
				return
			}
		}
		path, err := doctree.ParsePath(rawPath)
		if err != nil {
			writeError(w, err)
			return
		}
		if doc, err = rm.State().Project.Document(section, path); err != nil {
			writeError(w, err)
			return
		}
	} else {
		var ok bool
		if doc, ok = rm.ActiveDocument(); !ok {
			http.Error(w, "No document selected", http.StatusNotFound)
			return
		}
	}

	out, err := h.renderer.RenderDocument(doc)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(out))
}

// Format applies a toolbar formatting helper to raw block text
func (h *Handlers) Format(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text           string `json:"text"`
		SelectionStart int    `json:"selection_start"`
		SelectionEnd   int    `json:"selection_end"`
		Before         string `json:"before"`
		After          string `json:"after"`
		LinePrefix     string `json:"line_prefix"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	var res textfmt.Result
	switch {
	case req.LinePrefix != "":
		res = textfmt.PrefixLine(req.Text, req.SelectionStart, req.LinePrefix)
	case req.Before != "":
		after := req.After
		if after == "" {
			after = req.Before
		}
		res = textfmt.Wrap(req.Text, req.SelectionStart, req.SelectionEnd, req.Before, after)
	default:
		http.Error(w, "Either before or line_prefix is required", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// GetRoomUsers returns the list of users in a project room
func (h *Handlers) GetRoomUsers(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["id"]

	rm, err := h.roomManager.GetOrCreateRoom(projectID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"project_id": projectID,
		"users":      rm.GetUsers(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Warningf("encode response: %v", err)
	}
}

// writeError maps absorbed editing errors to client errors
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, db.ErrProjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, editor.ErrUnknownIntent), errors.Is(err, editor.ErrMissingProject):
		status = http.StatusBadRequest
	case errors.Is(err, doctree.ErrEmptyPath),
		errors.Is(err, doctree.ErrPathNotFound),
		errors.Is(err, doctree.ErrSectionNotFound),
		errors.Is(err, doctree.ErrBlockNotFound),
		errors.Is(err, doctree.ErrBlockKind),
		errors.Is(err, doctree.ErrMalformedTree):
		status = http.StatusUnprocessableEntity
	default:
		glog.Errorf("request failed: %v", err)
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
