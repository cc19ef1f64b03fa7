// Package debugserver exposes the on-demand debug surface over a websocket:
// regenerate, clear, advance and layout dumps.
package debugserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"darkdepths/pkg/game/devtools"
	"darkdepths/pkg/game/floors"
)

// Command is a single debug request sent by a client.
type Command struct {
	// Action is one of "regenerate", "advance", "clear", "dump".
	Action string `json:"action"`
	// Seed overrides the generation seed; omitted means derive from the
	// clock.
	Seed *int64 `json:"seed,omitempty"`
}

// Response is the reply to one command.
type Response struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Floor int    `json:"floor"`
	Rooms int    `json:"rooms"`
	Dump  string `json:"dump,omitempty"`
}

// Server serves debug commands against one floor manager. Commands run on
// the connection's read loop, one at a time per client; the manager itself
// is not safe for concurrent clients, so this server is a development tool,
// not a production surface.
type Server struct {
	manager  *floors.Manager
	log      *zap.Logger
	upgrader websocket.Upgrader
}

// New creates a debug server around a floor manager.
func New(manager *floors.Manager, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		manager: manager,
		log:     log,
		upgrader: websocket.Upgrader{
			// Local debug tool, any origin is fine.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Run listens on addr and serves debug connections at /debug until the
// listener fails.
func (s *Server) Run(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug", s.handleConnection)
	s.log.Info("debug server listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	s.log.Info("debug client connected", zap.String("remote", conn.RemoteAddr().String()))

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("debug client read failed", zap.Error(err))
			}
			return
		}

		resp := s.Execute(cmd)
		if err := conn.WriteJSON(resp); err != nil {
			s.log.Warn("debug client write failed", zap.Error(err))
			return
		}
	}
}

// Execute runs one debug command against the manager.
func (s *Server) Execute(cmd Command) Response {
	switch cmd.Action {
	case "regenerate":
		if _, err := s.manager.Generate(s.seedFor(cmd)); err != nil {
			return s.fail(err.Error())
		}
		return s.ok("")
	case "advance":
		if _, err := s.manager.Advance(s.seedFor(cmd)); err != nil {
			return s.fail(err.Error())
		}
		return s.ok("")
	case "clear":
		s.manager.Clear()
		return s.ok("")
	case "dump":
		current := s.manager.Current()
		if current == nil {
			return s.fail("no layout generated yet")
		}
		var buf strings.Builder
		if err := devtools.WriteLayoutDump(&buf, current); err != nil {
			return s.fail(err.Error())
		}
		return s.ok(buf.String())
	default:
		return s.fail("unknown action: " + cmd.Action)
	}
}

func (s *Server) seedFor(cmd Command) int64 {
	if cmd.Seed != nil {
		return *cmd.Seed
	}
	return time.Now().UnixNano()
}

func (s *Server) ok(dump string) Response {
	resp := Response{OK: true, Floor: s.manager.Floor(), Dump: dump}
	if current := s.manager.Current(); current != nil {
		resp.Rooms = len(current.AllRooms())
	}
	return resp
}

func (s *Server) fail(msg string) Response {
	return Response{OK: false, Error: msg, Floor: s.manager.Floor()}
}
