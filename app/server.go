package app

import (
	"fmt"
	"net/http"

	"docs-editor/pkg/config"
	"docs-editor/pkg/db"
	"docs-editor/pkg/doctree"
	"docs-editor/pkg/handlers"
	"docs-editor/pkg/preview"
	"docs-editor/pkg/room"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
)

// Server represents the application server
type Server struct {
	router      *mux.Router
	roomManager *room.RoomManager
	handlers    *handlers.Handlers
	store       db.IProjectStore
	config      *config.Config
}

// OpenStore opens the project store selected by cfg.Store
func OpenStore(cfg *config.Config) (db.IProjectStore, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return db.NewMemoryProjectStore(), nil
	case config.StorePostgres, "":
		return db.NewPostgresProjectStore(cfg.GetDatabaseConnectionString())
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	store, err := OpenStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	ids, err := doctree.NewIDGenerator(cfg.IDScheme)
	if err != nil {
		store.Close()
		return nil, err
	}

	roomManager := room.NewRoomManager(store, ids, cfg.HistoryLimit)
	h := handlers.NewHandlers(roomManager, preview.NewRenderer())

	return &Server{
		router:      NewRouter(h),
		roomManager: roomManager,
		handlers:    h,
		store:       store,
		config:      cfg,
	}, nil
}

// NewRouter wires every endpoint to h
func NewRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	// WebSocket endpoint for live state of a project
	r.HandleFunc("/ws/{projectId}", h.HandleWebSocket)

	r.HandleFunc("/api/projects", h.CreateProject).Methods("POST")
	r.HandleFunc("/api/projects", h.ListProjects).Methods("GET")
	r.HandleFunc("/api/projects/{id}", h.GetProject).Methods("GET")
	r.HandleFunc("/api/projects/{id}", h.DeleteProject).Methods("DELETE")
	r.HandleFunc("/api/projects/{id}/state", h.GetState).Methods("GET")
	r.HandleFunc("/api/projects/{id}/intents", h.ApplyIntent).Methods("POST")
	r.HandleFunc("/api/projects/{id}/preview", h.Preview).Methods("GET")
	r.HandleFunc("/api/projects/{id}/users", h.GetRoomUsers).Methods("GET")
	r.HandleFunc("/api/format", h.Format).Methods("POST")

	return r
}

// Handler returns the router wrapped in the CORS middleware
func (s *Server) Handler() http.Handler {
	return corsMiddleware(s.config.CORSOrigins, s.router)
}

// Start starts the server
func (s *Server) Start(addr string) error {
	if addr == "" {
		addr = s.config.GetServerAddr()
	}
	glog.Infof("Starting documentation editor server on %s (store=%s)", addr, s.config.Store)
	// preflight requests must be answered before mux matches methods
	return http.ListenAndServe(addr, s.Handler())
}

// corsMiddleware answers preflight requests and sets CORS headers for
// origins in allowed. An empty allow list accepts every origin.
func corsMiddleware(allowed []string, next http.Handler) http.Handler {
	accepts := func(origin string) bool {
		if len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == origin || o == "*" {
				return true
			}
		}
		return false
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		h := w.Header()
		h.Add("Vary", "Origin")

		switch {
		case origin == "":
			h.Set("Access-Control-Allow-Origin", "*")
		case accepts(origin):
			h.Set("Access-Control-Allow-Origin", origin)
		default:
			glog.V(1).Infof("CORS origin %s rejected for %s", origin, r.URL.Path)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if r.Method != http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		headers := r.Header.Get("Access-Control-Request-Headers")
		if headers == "" {
			headers = "Content-Type, Authorization"
		}
		h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", headers)
		h.Set("Access-Control-Max-Age", "600")
		w.WriteHeader(http.StatusNoContent)
	})
}

// Close closes the store
func (s *Server) Close() error {
	return s.store.Close()
}
