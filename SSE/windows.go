package SSE

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"DocTools/Models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type window struct {
	id       string
	url      string
	ch       chan string
	lastSeen time.Time
}

// WindowHub tracks the live set of open browser windows for this origin and
// carries display/focus/open commands to them over SSE. Windows attach in
// order and Snapshot preserves that order, so "first matching window" is
// deterministic. The set is queried fresh every time; nothing is cached.
type WindowHub struct {
	windows []*window
	index   map[string]*window
	mu      sync.Mutex
}

// NewWindowHub creates a new WindowHub.
func NewWindowHub() *WindowHub {
	return &WindowHub{
		index: make(map[string]*window),
	}
}

// Attach adds a window to the hub and returns its command channel. Attaching
// an id that is already present replaces the old connection.
func (h *WindowHub) Attach(id, url string) chan string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.index[id]; ok {
		h.removeLocked(old)
	}

	w := &window{
		id:       id,
		url:      url,
		ch:       make(chan string, 8),
		lastSeen: time.Now(),
	}
	h.windows = append(h.windows, w)
	h.index[id] = w
	return w.ch
}

// Detach removes a window and closes its channel. The channel identifies
// the connection, so a stale handler cannot detach a newer attachment that
// reused the same id.
func (h *WindowHub) Detach(id string, ch chan string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if w, ok := h.index[id]; ok && w.ch == ch {
		h.removeLocked(w)
	}
}

func (h *WindowHub) removeLocked(target *window) {
	delete(h.index, target.id)
	for i, w := range h.windows {
		if w == target {
			h.windows = append(h.windows[:i], h.windows[i+1:]...)
			break
		}
	}
	close(target.ch)
}

// UpdateURL records a window navigation so later snapshots see the current
// location.
func (h *WindowHub) UpdateURL(id, url string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.index[id]
	if !ok {
		return false
	}
	w.url = url
	w.lastSeen = time.Now()
	return true
}

// Snapshot returns the window set as it is right now, in attach order.
func (h *WindowHub) Snapshot() []Models.WindowClient {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := make([]Models.WindowClient, 0, len(h.windows))
	for _, w := range h.windows {
		clients = append(clients, Models.WindowClient{ID: w.id, URL: w.url})
	}
	return clients
}

// SendTo delivers a command to one window. Returns false if the window is
// gone or not accepting.
func (h *WindowHub) SendTo(id string, event string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.index[id]
	if !ok {
		return false
	}
	select {
	case w.ch <- event:
		return true
	case <-time.After(1 * time.Second):
		// If the window is not responding, drop it.
		h.removeLocked(w)
		return false
	}
}

// Broadcast sends a command to all attached windows.
func (h *WindowHub) Broadcast(event string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, w := range append([]*window(nil), h.windows...) {
		select {
		case w.ch <- event:
		case <-time.After(1 * time.Second):
			// If the window is not responding, drop it.
			h.removeLocked(w)
		}
	}
}

// ReapStale drops windows that have not been seen within maxAge and returns
// how many were removed.
func (h *WindowHub) ReapStale(maxAge time.Duration) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	cutoff := time.Now().Add(-maxAge)
	reaped := 0
	for _, w := range append([]*window(nil), h.windows...) {
		if w.lastSeen.Before(cutoff) {
			h.removeLocked(w)
			reaped++
		}
	}
	return reaped
}

var Hub = NewWindowHub()

// RequestSSE attaches a browser window to the hub and streams its commands.
// The window reports its id and current URL as query parameters; a missing id
// gets a fresh one back in the first event.
func RequestSSE(c *gin.Context) {
	// Set headers for SSE
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Access-Control-Allow-Origin", "*")

	windowID := c.Query("window_id")
	if windowID == "" {
		windowID = uuid.New().String()
	}
	url := c.Query("url")

	clientChan := Hub.Attach(windowID, url)
	defer Hub.Detach(windowID, clientChan)

	fmt.Fprintf(c.Writer, "data: %s\n\n", Models.WindowCommand{Type: "attached", WindowID: windowID}.Encode())
	c.Writer.Flush()

	for {
		select {
		case message, ok := <-clientChan:
			if !ok {
				return
			}
			fmt.Fprintf(c.Writer, "data: %s\n\n", message)
			c.Writer.Flush()
		case <-c.Writer.CloseNotify():
			// Window closed or navigated away
			return
		}
	}
}

// UpdateWindowURL records a navigation reported by an attached window.
func UpdateWindowURL(c *gin.Context) {
	var input struct {
		WindowID string `json:"window_id" binding:"required"`
		URL      string `json:"url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !Hub.UpdateURL(input.WindowID, input.URL) {
		c.JSON(http.StatusNotFound, gin.H{"error": "window not attached"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success"})
}
