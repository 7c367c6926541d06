package handlers

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
	"time"

	"docs-editor/pkg/editor"
	"docs-editor/pkg/room"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 1 << 20
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// clientMessage is a message sent by a websocket client
type clientMessage struct {
	Type   string         `json:"type"`
	Intent *editor.Intent `json:"intent,omitempty"`
}

// HandleWebSocket streams the editing state of a project and accepts intents
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	roomInstance, err := h.roomManager.GetOrCreateRoom(projectID)
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		glog.Warningf("websocket upgrade error: %v", err)
		return
	}

	username := r.URL.Query().Get("username")
	if username == "" {
		username = "Anonymous"
	}

	client := &room.Client{
		ID:       uuid.New().String(),
		Username: username,
		Conn:     conn,
		Room:     roomInstance,
		Send:     make(chan []byte, 256),
	}

	if !roomInstance.Join(client) {
		conn.Close()
		return
	}

	go h.writePump(client)
	go h.readPump(client)
}

// readPump handles reading messages from the WebSocket
func (h *Handlers) readPump(c *room.Client) {
	defer func() {
		if r := recover(); r != nil {
			glog.Errorf("panic in readPump for %s: %v\n%s", c.ID, r, debug.Stack())
		}
		c.Room.Leave(c)
		c.Conn.Close()
		glog.V(1).Infof("readPump exiting for %s", c.ID)
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				glog.Warningf("websocket unexpected close for %s: %v", c.ID, err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			glog.Warningf("error parsing message from %s: %v", c.ID, err)
			h.sendError(c, "invalid message")
			continue
		}

		switch msg.Type {
		case "intent":
			h.handleIntent(c, msg.Intent)
		case "ping":
			h.send(c, []byte(`{"type":"pong"}`))
		default:
			glog.V(1).Infof("unknown message type from %s: %q", c.ID, msg.Type)
			h.sendError(c, "unknown message type")
		}
	}
}

// writePump handles writing messages to the WebSocket
func (h *Handlers) writePump(c *room.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Room.Leave(c)
		c.Conn.Close()
		glog.V(1).Infof("writePump exiting for %s", c.ID)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// channel closed: send close and return
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				glog.Warningf("websocket write error for %s: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				glog.Warningf("ping error for %s: %v", c.ID, err)
				return
			}
		}
	}
}

// handleIntent applies an intent; the resulting state reaches every client,
// the sender included, through the room broadcast.
func (h *Handlers) handleIntent(c *room.Client, intent *editor.Intent) {
	if intent == nil {
		h.sendError(c, "missing intent")
		return
	}
	if _, err := c.Room.Apply(*intent); err != nil {
		h.sendError(c, err.Error())
	}
}

func (h *Handlers) sendError(c *room.Client, message string) {
	data, _ := json.Marshal(map[string]string{"type": "error", "error": message})
	h.send(c, data)
}

// send queues data for c only; messages to a client that already left the
// room are dropped.
func (h *Handlers) send(c *room.Client, data []byte) {
	if !c.Room.Send(c, data) {
		glog.V(2).Infof("dropped reply to %s", c.ID)
	}
}
