// Package server exposes tables over websockets. Each table admits one
// human connection; bots live inside the session and never touch the wire.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/truman301/xcasino-sub000/internal/game"
	"github.com/truman301/xcasino-sub000/internal/session"
)

const writeTimeout = 10 * time.Second

// Table couples a session with its human seat and the single websocket
// connection allowed to drive that seat.
type Table struct {
	Name      string
	HumanSeat int

	mu      sync.Mutex
	session *session.Session
	conn    *websocket.Conn
	logger  *log.Logger
}

// NewTable creates an unbound table handle. Bind must be called before the
// table is added to a server.
func NewTable(name string, humanSeat int, logger *log.Logger) *Table {
	return &Table{
		Name:      name,
		HumanSeat: humanSeat,
		logger:    logger.WithPrefix("server").With("table", name),
	}
}

// Bind attaches the session driving this table. The session's sink should be
// the table's Push method, which is why binding happens after construction.
func (t *Table) Bind(sess *session.Session) {
	t.session = sess
}

// Push forwards a state change to the connected client, if any. It is used
// as the session sink.
func (t *Table) Push(snapshot game.Snapshot, _ []game.Event) {
	t.send(MessageTypeSnapshot, SnapshotDataFromGame(snapshot))
}

func (t *Table) attach(conn *websocket.Conn) {
	t.mu.Lock()
	previous := t.conn
	t.conn = conn
	t.mu.Unlock()
	if previous != nil {
		previous.Close()
	}
}

func (t *Table) detach(conn *websocket.Conn) {
	t.mu.Lock()
	if t.conn == conn {
		t.conn = nil
	}
	t.mu.Unlock()
}

func (t *Table) send(msgType MessageType, data any) {
	msg, err := NewMessage(msgType, data)
	if err != nil {
		t.logger.Error("failed to encode message", "type", msgType, "error", err)
		return
	}
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return
	}
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(msg); err != nil {
		t.logger.Debug("failed to write message", "type", msgType, "error", err)
	}
}

func (t *Table) sendError(reason string) {
	t.send(MessageTypeError, ErrorData{Reason: reason})
}

// Server routes websocket clients to tables.
type Server struct {
	cfg      *Config
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu     sync.Mutex
	tables map[string]*Table
}

// New creates a server for the configured tables. Tables are registered
// separately with AddTable once their sessions exist.
func New(cfg *Config, logger *log.Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger.WithPrefix("server"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		tables: make(map[string]*Table),
	}
}

// AddTable registers a bound table.
func (s *Server) AddTable(table *Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table.Name] = table
}

func (s *Server) table(name string) (*Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	table, ok := s.tables[name]
	return table, ok
}

// Run serves websocket clients until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	httpServer := &http.Server{
		Addr:    s.cfg.ListenAddress(),
		Handler: mux,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	table, err := s.handshake(conn)
	if err != nil {
		s.logger.Info("rejected connection", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	defer table.detach(conn)

	s.logger.Info("client joined", "table", table.Name, "seat", table.HumanSeat,
		"remote", conn.RemoteAddr())
	table.send(MessageTypeSnapshot, SnapshotDataFromGame(table.session.Snapshot(table.HumanSeat)))

	s.readLoop(conn, table)
	s.logger.Info("client left", "table", table.Name, "remote", conn.RemoteAddr())
}

// handshake reads the join message and attaches the connection to its table.
func (s *Server) handshake(conn *websocket.Conn) (*Table, error) {
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		return nil, fmt.Errorf("reading join message: %w", err)
	}
	if msg.Type != MessageTypeJoin {
		return nil, fmt.Errorf("expected %s message, got %s", MessageTypeJoin, msg.Type)
	}
	var join JoinData
	if err := jsonUnmarshal(msg.Data, &join); err != nil {
		return nil, fmt.Errorf("decoding join message: %w", err)
	}

	table, ok := s.table(join.Table)
	if !ok {
		writeError(conn, fmt.Sprintf("no such table: %s", join.Table))
		return nil, fmt.Errorf("no such table: %s", join.Table)
	}

	table.attach(conn)
	table.send(MessageTypeJoined, JoinedData{Table: table.Name, Seat: table.HumanSeat})
	return table, nil
}

func (s *Server) readLoop(conn *websocket.Conn, table *Table) {
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("read error", "table", table.Name, "error", err)
			}
			return
		}

		switch msg.Type {
		case MessageTypeDeal:
			if err := table.session.StartHand(); err != nil {
				table.sendError(err.Error())
			}
		case MessageTypeAction:
			var data ActionData
			if err := jsonUnmarshal(msg.Data, &data); err != nil {
				table.sendError("malformed action message")
				continue
			}
			action, ok := game.ParseAction(data.Action)
			if !ok {
				table.sendError(fmt.Sprintf("unknown action: %s", data.Action))
				continue
			}
			if err := table.session.HumanAction(table.HumanSeat, action, data.Amount); err != nil {
				table.sendError(err.Error())
			}
		default:
			table.sendError(fmt.Sprintf("unexpected message type: %s", msg.Type))
		}
	}
}

func writeError(conn *websocket.Conn, reason string) {
	msg, err := NewMessage(MessageTypeError, ErrorData{Reason: reason})
	if err != nil {
		return
	}
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	conn.WriteJSON(msg)
}
