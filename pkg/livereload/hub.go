package livereload

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// DefaultPath is where the hub is mounted by default.
const DefaultPath = "/__livereload"

// Message is sent to every connected browser.
type Message struct {
	Type  string   `json:"type"`
	Paths []string `json:"paths,omitempty"`
}

// Hub tracks connected browsers and broadcasts reload messages.
type Hub struct {
	logger       *slog.Logger
	origins      []string
	writeTimeout time.Duration

	mu      sync.Mutex
	clients map[chan []byte]struct{}
	closed  bool
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithOriginPatterns allows cross-origin connections from the given host patterns.
func WithOriginPatterns(patterns ...string) Option {
	return func(h *Hub) { h.origins = append(h.origins, patterns...) }
}

// WithWriteTimeout bounds a single message write. Default: 5 seconds.
func WithWriteTimeout(d time.Duration) Option {
	return func(h *Hub) {
		if d > 0 {
			h.writeTimeout = d
		}
	}
}

// New creates a Hub.
func New(opts ...Option) *Hub {
	h := &Hub{
		logger:       slog.Default(),
		writeTimeout: 5 * time.Second,
		clients:      make(map[chan []byte]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP upgrades the request and keeps the connection until the browser
// goes away or the hub is closed.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	send, err := h.register()
	if err != nil {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	defer h.unregister(send)

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns:  h.origins,
		CompressionMode: websocket.CompressionDisabled,
	})
	if err != nil {
		h.logger.WarnContext(r.Context(), "livereload upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.CloseNow()

	// Browsers never send anything; CloseRead handles control frames.
	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case msg, ok := <-send:
			if !ok {
				_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}
			if err := h.write(ctx, conn, msg); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) write(ctx context.Context, conn *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, h.writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, msg)
}

// Reload tells every browser to reload. paths are informational.
func (h *Hub) Reload(paths ...string) {
	h.Broadcast(Message{Type: "reload", Paths: paths})
}

// Broadcast sends msg to every connected browser. Slow clients drop messages.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("livereload marshal failed", slog.String("error", err.Error()))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for send := range h.clients {
		select {
		case send <- data:
		default:
		}
	}
	h.logger.Debug("livereload broadcast", slog.String("type", msg.Type), slog.Int("clients", len(h.clients)))
}

// Clients returns the number of connected browsers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects all browsers and rejects new ones.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	for send := range h.clients {
		close(send)
		delete(h.clients, send)
	}
	return nil
}

func (h *Hub) register() (chan []byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrClosed
	}
	send := make(chan []byte, 8)
	h.clients[send] = struct{}{}
	return send, nil
}

func (h *Hub) unregister(send chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[send]; ok {
		delete(h.clients, send)
		close(send)
	}
}

// Script returns the client snippet that connects to a hub mounted at path.
func Script(path string) string {
	return fmt.Sprintf(`<script>(function(){
  var url=(location.protocol==='https:'?'wss://':'ws://')+location.host+%q;
  function connect(retry){
    var ws=new WebSocket(url);
    ws.onopen=function(){ if(retry){ location.reload(); } };
    ws.onmessage=function(e){ var m=JSON.parse(e.data); if(m.type==='reload'){ location.reload(); } };
    ws.onclose=function(){ setTimeout(function(){ connect(true); }, 1000); };
  }
  connect(false);
})();</script>`, path)
}
