package web

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"DoodleBoard/internal/overlay"
	"DoodleBoard/internal/render"
	"DoodleBoard/internal/state"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 256
)

// Session is one browser tab. It hosts a private overlay: pointer events
// come in over the websocket and drawing commands go back out.
type Session struct {
	ID      string
	Overlay *overlay.Overlay

	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	seq       state.Sequence

	mu          sync.Mutex
	width       int
	height      int
	maxViewport int
	controls    map[overlay.ControlID]func()
}

var _ overlay.Host = (*Session)(nil)

// newSession starts a session with a width x height viewport. Page resizes
// are capped at maxViewport per side.
func newSession(id string, conn *websocket.Conn, width, height, maxViewport int) *Session {
	return &Session{
		ID:          id,
		conn:        conn,
		send:        make(chan []byte, sendBuffer),
		done:        make(chan struct{}),
		width:       min(width, maxViewport),
		height:      min(height, maxViewport),
		maxViewport: maxViewport,
		controls:    make(map[overlay.ControlID]func()),
	}
}

func (s *Session) Viewport() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *Session) CreateSurface() (render.Surface, error) {
	return &remoteSurface{session: s}, nil
}

func (s *Session) DestroySurface(render.Surface) {
	s.enqueue(Command{Op: OpDestroy})
}

func (s *Session) MountControl(id overlay.ControlID, label string, onActivate func()) {
	s.mu.Lock()
	s.controls[id] = onActivate
	s.mu.Unlock()
	s.enqueue(Command{Op: OpMount, ID: string(id), Label: label})
}

func (s *Session) UnmountControl(id overlay.ControlID) {
	s.mu.Lock()
	delete(s.controls, id)
	s.mu.Unlock()
	s.enqueue(Command{Op: OpUnmount, ID: string(id)})
}

// enqueue stamps the command and hands it to the write pump. It blocks
// while the buffer is full and drops the command once the session closed.
func (s *Session) enqueue(cmd Command) {
	cmd.Seq = s.seq.Next()
	data, err := json.Marshal(cmd)
	if err != nil {
		log.Printf("[WEB] Session %s: could not encode %s: %v", s.ID, cmd.Op, err)
		return
	}
	select {
	case s.send <- data:
	case <-s.done:
	}
}

// handle applies one event from the page.
func (s *Session) handle(ev Event) {
	switch ev.Type {
	case EventMove:
		s.Overlay.Move(ev.X, ev.Y)
	case EventDown:
		s.Overlay.Press(ev.X, ev.Y)
	case EventEnter:
		s.Overlay.Enter(ev.X, ev.Y)
	case EventContext:
		s.Overlay.ContextMenu()
	case EventResize:
		if ev.Width <= 0 || ev.Height <= 0 {
			return
		}
		s.Overlay.Resize(min(ev.Width, s.maxViewport), min(ev.Height, s.maxViewport))
	case EventControl:
		s.mu.Lock()
		fn := s.controls[overlay.ControlID(ev.ID)]
		s.mu.Unlock()
		if fn == nil {
			log.Printf("[WEB] Session %s: control %q is not mounted", s.ID, ev.ID)
			return
		}
		fn()
	case EventInit:
		if err := s.Overlay.Initialize(); err != nil {
			log.Printf("[WEB] Session %s: %v", s.ID, err)
		}
	default:
		log.Printf("[WEB] Session %s: unknown event %q", s.ID, ev.Type)
	}
}

func (s *Session) readPump() {
	for {
		var ev Event
		if err := s.conn.ReadJSON(&ev); err != nil {
			log.Printf("[WEB] Session %s disconnected: %v", s.ID, err)
			return
		}
		s.handle(ev)
	}
}

func (s *Session) writePump() {
	defer s.conn.Close()
	for {
		select {
		case data := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("[WEB] Session %s: write failed: %v", s.ID, err)
				s.close()
				return
			}
		case <-s.done:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			s.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

func (s *Session) close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// remoteSurface forwards drawing calls to the page.
type remoteSurface struct {
	session *Session
}

func (r *remoteSurface) SetSize(width, height int) {
	s := r.session
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
	s.enqueue(Command{Op: OpResize, Width: width, Height: height})
}

func (r *remoteSurface) Clear() {
	r.session.enqueue(Command{Op: OpClear})
}

func (r *remoteSurface) StrokePath(p render.Path, st render.Style) {
	r.session.enqueue(Command{Op: OpStroke, Path: wirePath(p), Style: wireStyle(st)})
}
