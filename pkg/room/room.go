package room

import (
	"encoding/json"
	"runtime/debug"
	"sync"
	"time"

	"docs-editor/pkg/db"
	"docs-editor/pkg/doctree"
	"docs-editor/pkg/editor"

	"github.com/golang/glog"
	"github.com/gorilla/websocket"
)

// State is what viewers of a project see after every intent
type State struct {
	Type      string           `json:"type"`
	Project   *doctree.Project `json:"project"`
	Selection editor.Selection `json:"selection"`
	CanUndo   bool             `json:"can_undo"`
	CanRedo   bool             `json:"can_redo"`
	Version   uint64           `json:"version"`
	Timestamp int64            `json:"timestamp"`
}

// Client represents a connected client in a room
type Client struct {
	ID       string          `json:"-"`
	Username string          `json:"username"`
	Conn     *websocket.Conn `json:"-"`
	Room     *Room           `json:"-"`
	Send     chan []byte     `json:"-"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Room is the editing session of one project. All intents for the project go
// through Apply, which runs them one at a time.
type Room struct {
	ID         string
	Clients    map[string]*Client
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex

	editMu  sync.Mutex
	editor  *editor.Editor
	version uint64
	store   db.IProjectStore
	done    chan struct{}
}

// RoomManager manages all rooms
type RoomManager struct {
	rooms map[string]*Room
	mutex sync.RWMutex
	Store db.IProjectStore

	ids          doctree.IDGenerator
	historyLimit int
}

// NewRoomManager creates a new room manager
func NewRoomManager(store db.IProjectStore, ids doctree.IDGenerator, historyLimit int) *RoomManager {
	return &RoomManager{
		rooms:        make(map[string]*Room),
		Store:        store,
		ids:          ids,
		historyLimit: historyLimit,
	}
}

// GetOrCreateRoom gets an existing room or opens one for a stored project
func (rm *RoomManager) GetOrCreateRoom(projectID string) (*Room, error) {
	rm.mutex.Lock()
	defer rm.mutex.Unlock()

	room, ok := rm.rooms[projectID]
	if ok {
		return room, nil
	}

	project, err := rm.Store.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	room = &Room{
		ID:         projectID,
		Clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan []byte, 256),
		editor: editor.New(project.Tree,
			editor.WithIDGenerator(rm.ids),
			editor.WithHistoryLimit(rm.historyLimit)),
		store: rm.Store,
		done:  make(chan struct{}),
	}

	rm.rooms[projectID] = room

	go room.run()

	return room, nil
}

// CloseRoom stops the room of projectID, if open, and disconnects its clients.
func (rm *RoomManager) CloseRoom(projectID string) {
	rm.mutex.Lock()
	room, ok := rm.rooms[projectID]
	delete(rm.rooms, projectID)
	rm.mutex.Unlock()

	if ok {
		close(room.done)
	}
}

// run handles client registration and fan-out
func (r *Room) run() {
	defer func() {
		if rec := recover(); rec != nil {
			glog.Errorf("panic in room.run for %s: %v\n%s", r.ID, rec, debug.Stack())
		}
	}()
	glog.V(1).Infof("room %s started", r.ID)
	for {
		select {
		case client := <-r.Register:
			r.mutex.Lock()
			r.Clients[client.ID] = client
			r.mutex.Unlock()
			r.sendState(client)
			r.broadcastUser("user_joined", client)
			glog.Infof("client %s joined room %s", client.ID, r.ID)

		case client := <-r.Unregister:
			r.mutex.Lock()
			_, ok := r.Clients[client.ID]
			if ok {
				delete(r.Clients, client.ID)
				close(client.Send)
			}
			r.mutex.Unlock()

			if ok {
				r.broadcastUser("user_left", client)
				glog.Infof("client %s left room %s", client.ID, r.ID)
			}

		case message := <-r.Broadcast:
			r.fanOut(message, "")

		case <-r.done:
			r.mutex.Lock()
			for id, client := range r.Clients {
				close(client.Send)
				delete(r.Clients, id)
			}
			r.mutex.Unlock()
			glog.V(1).Infof("room %s closed", r.ID)
			return
		}
	}
}

// fanOut queues message for every client except excludeClientID, dropping
// clients whose send buffer is full.
func (r *Room) fanOut(message []byte, excludeClientID string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for id, client := range r.Clients {
		if id == excludeClientID {
			continue
		}
		select {
		case client.Send <- message:
		default:
			glog.Warningf("dropping slow client %s from room %s", id, r.ID)
			close(client.Send)
			delete(r.Clients, id)
		}
	}
}

func (r *Room) broadcastUser(kind string, client *Client) {
	message := map[string]interface{}{
		"type":     kind,
		"id":       client.ID,
		"username": client.Username,
	}

	data, _ := json.Marshal(message)
	r.fanOut(data, client.ID)
}

func (r *Room) sendState(c *Client) {
	data, err := json.Marshal(r.State())
	if err != nil {
		glog.Errorf("encode state for room %s: %v", r.ID, err)
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

// State returns the current editing state of the room.
func (r *Room) State() State {
	r.editMu.Lock()
	defer r.editMu.Unlock()
	return r.stateLocked()
}

func (r *Room) stateLocked() State {
	return State{
		Type:      "state",
		Project:   r.editor.Project(),
		Selection: r.editor.Selection(),
		CanUndo:   r.editor.CanUndo(),
		CanRedo:   r.editor.CanRedo(),
		Version:   r.version,
		Timestamp: time.Now().UnixNano(),
	}
}

// ActiveDocument returns the selected document, if it resolves.
func (r *Room) ActiveDocument() (*doctree.Document, bool) {
	r.editMu.Lock()
	defer r.editMu.Unlock()
	return r.editor.ActiveDocument()
}

// Apply dispatches one intent. Rejected intents leave the room untouched and
// return the error. When the tree changes it is saved to the store; a failed
// save is logged and does not undo the edit. Every successful intent is
// broadcast to all clients.
func (r *Room) Apply(in editor.Intent) (State, error) {
	if in.Type == editor.IntentSetProject && in.Project != nil {
		in.Project = in.Project.Clone()
		in.Project.ProjectID = r.ID
	}

	state, changed, err := r.dispatch(in)
	if err != nil {
		glog.V(1).Infof("room %s rejected %s: %v", r.ID, in.Type, err)
		return State{}, err
	}
	glog.V(2).Infof("room %s applied %s (changed=%t)", r.ID, in.Type, changed)

	if data, err := json.Marshal(state); err == nil {
		select {
		case r.Broadcast <- data:
		default:
			glog.Warningf("room %s broadcast queue full", r.ID)
		}
	}
	return state, nil
}

// dispatch runs the intent and persists the result under editMu, so the
// store never sees versions out of order.
func (r *Room) dispatch(in editor.Intent) (State, bool, error) {
	r.editMu.Lock()
	defer r.editMu.Unlock()

	changed, err := r.editor.Dispatch(in)
	if err != nil {
		return State{}, false, err
	}
	if changed {
		r.version++
	}
	state := r.stateLocked()
	if changed {
		if _, err := r.store.SaveProject(state.Project); err != nil {
			glog.Warningf("room %s: failed to save project: %v", r.ID, err)
		}
	}
	return state, changed, nil
}

// Send queues data for c alone. It reports false when c is no longer a
// member of the room or its buffer is full.
func (r *Room) Send(c *Client, data []byte) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.Clients[c.ID] != c {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// Join registers c unless the room has been closed.
func (r *Room) Join(c *Client) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.Register <- c:
		return true
	case <-r.done:
		return false
	}
}

// Leave unregisters c. Leaving twice is harmless.
func (r *Room) Leave(c *Client) {
	select {
	case r.Unregister <- c:
	case <-r.done:
	}
}

// GetUsers returns a list of users currently in the room
func (r *Room) GetUsers() []User {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	users := make([]User, 0, len(r.Clients))
	for _, client := range r.Clients {
		users = append(users, User{
			ID:       client.ID,
			Username: client.Username,
		})
	}

	return users
}
