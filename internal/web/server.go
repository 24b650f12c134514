// Package web serves the overlay to browsers. The page is a thin client:
// it forwards pointer events over a websocket and paints the commands it
// gets back. Every connection gets its own overlay.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"DoodleBoard/internal/config"
	"DoodleBoard/internal/export"
	"DoodleBoard/internal/overlay"
	"DoodleBoard/internal/raster"
	"DoodleBoard/internal/state"
)

//go:embed static/index.html
var indexHTML []byte

type Server struct {
	cfg      config.Config
	router   *mux.Router
	upgrader websocket.Upgrader
	http     *http.Server

	sessions map[string]*Session
	mu       sync.RWMutex
}

func NewServer(cfg config.Config) *Server {
	s := &Server{
		cfg:      cfg,
		router:   mux.NewRouter(),
		sessions: make(map[string]*Session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.handleWS)
	s.router.HandleFunc("/sessions", s.handleSessions).Methods(http.MethodGet)
	s.router.HandleFunc("/sessions/{id}/drawings", s.handleDrawings).Methods(http.MethodGet)
	s.router.HandleFunc("/sessions/{id}/snapshot.png", s.handleSnapshot).Methods(http.MethodGet)
	s.router.HandleFunc("/sessions/{id}/export.pdf", s.handleExport).Methods(http.MethodGet)
	s.http = &http.Server{Handler: s.router}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve accepts connections on l until it fails or Shutdown is called.
func (s *Server) Serve(l net.Listener) error {
	if err := s.http.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server stopped: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and closes every open session,
// then waits for in-flight requests until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	for _, sess := range s.sessions {
		sess.close()
	}
	s.mu.RUnlock()
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("web server shutdown: %w", err)
	}
	log.Println("[WEB] Server stopped")
	return nil
}

// Sessions returns the ids of the connected sessions, sorted.
func (s *Server) Sessions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Server) session(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Server) add(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	log.Printf("[WEB] Session %s opened (%d active)", sess.ID, len(s.sessions))
}

func (s *Server) remove(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sess.ID)
	log.Printf("[WEB] Session %s closed (%d active)", sess.ID, len(s.sessions))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WEB] Upgrade failed: %v", err)
		return
	}

	width, height := s.cfg.ClampViewport(queryInt(r, "w", s.cfg.Width), queryInt(r, "h", s.cfg.Height))
	sess := newSession(uuid.NewString(), conn, width, height, s.cfg.MaxViewport)
	sess.Overlay = overlay.New(sess, overlay.Options{
		Live:        s.cfg.LiveStyle(),
		Replay:      s.cfg.ReplayStyle(),
		ReplayOvals: s.cfg.ReplayOvals,
	})

	go sess.writePump()
	s.add(sess)
	defer s.remove(sess)
	defer sess.close()

	sess.enqueue(Command{Op: OpHello, Session: sess.ID})
	if err := sess.Overlay.Initialize(); err != nil {
		log.Printf("[WEB] Session %s: %v", sess.ID, err)
		return
	}
	sess.readPump()
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sessions())
}

func (s *Server) handleDrawings(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, struct {
		Points []state.Point `json:"points"`
		Ovals  []state.Oval  `json:"ovals"`
	}{sess.Overlay.Drawings(), sess.Overlay.Ovals()})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	width, height := sess.Viewport()
	w.Header().Set("Content-Type", "image/png")
	if err := raster.Snapshot(w, width, height, s.cfg.ReplayStyle(), sess.Overlay.Drawings(), s.replayOvals(sess)); err != nil {
		log.Printf("[WEB] Session %s: snapshot failed: %v", sess.ID, err)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="doodle.pdf"`)
	if err := export.WritePDF(w, s.cfg.ReplayStyle(), sess.Overlay.Drawings(), s.replayOvals(sess)); err != nil {
		log.Printf("[WEB] Session %s: export failed: %v", sess.ID, err)
	}
}

func (s *Server) replayOvals(sess *Session) []state.Oval {
	if !s.cfg.ReplayOvals {
		return nil
	}
	return sess.Overlay.Ovals()
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id := mux.Vars(r)["id"]
	sess, ok := s.session(id)
	if !ok {
		http.Error(w, fmt.Sprintf("session %s not found", id), http.StatusNotFound)
	}
	return sess, ok
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[WEB] Could not encode response: %v", err)
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
