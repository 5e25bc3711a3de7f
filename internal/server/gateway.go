package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/msto63/argot/foundation/argot"
	"github.com/msto63/argot/foundation/argot/output"
	argoterrors "github.com/msto63/argot/foundation/core/errors"
	argotlog "github.com/msto63/argot/foundation/core/log"
	"github.com/msto63/argot/internal/history"
)

// Client message types
const (
	TypeCommand = "command"
	TypeReply   = "reply"
	TypePing    = "ping"
)

// Server message types
const (
	TypeResult = "result"
	TypePrompt = "prompt"
	TypeError  = "error"
	TypePong   = "pong"
)

const writeTimeout = 10 * time.Second

// WSMessage is a message from the client
type WSMessage struct {
	Type string `json:"type"` // "command", "reply", "ping"
	Text string `json:"text,omitempty"`
}

// WSResponse is a message to the client
type WSResponse struct {
	Type        string         `json:"type"` // "result", "prompt", "error", "pong"
	ID          string         `json:"id,omitempty"`
	Command     string         `json:"command,omitempty"`
	Text        string         `json:"text,omitempty"`
	Code        string         `json:"code,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
	Output      *output.Output `json:"output,omitempty"`
}

// GatewayOptions configures a Gateway
type GatewayOptions struct {
	Engine *argot.Engine

	// History records every command line when set
	History history.Store

	// Metrics defaults to a fresh set
	Metrics *Metrics

	Logger *argotlog.Logger

	// RatePerSecond limits messages per connection; 0 disables the limit
	RatePerSecond float64
	Burst         int

	// ReadTimeout closes connections that stay silent this long
	// (default: 120s). Pings and pongs count as activity.
	ReadTimeout time.Duration

	// MaxMessageSize bounds a single websocket message (default: 64 KiB)
	MaxMessageSize int64
}

// Gateway serves command lines over websocket connections. Each
// connection runs at most one command at a time; a command that asks a
// question waits for the client's "reply" message.
type Gateway struct {
	engine   *argot.Engine
	store    history.Store
	metrics  *Metrics
	logger   *argotlog.Logger
	options  GatewayOptions
	upgrader websocket.Upgrader

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions map[*session]struct{}
}

// NewGateway creates a gateway for the given engine
func NewGateway(opts GatewayOptions) *Gateway {
	if opts.Logger == nil {
		opts.Logger = argotlog.GetDefault()
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 120 * time.Second
	}
	if opts.MaxMessageSize <= 0 {
		opts.MaxMessageSize = 64 << 10
	}
	if opts.Burst < 1 {
		opts.Burst = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Gateway{
		engine:  opts.Engine,
		store:   opts.History,
		metrics: opts.Metrics,
		logger:  opts.Logger.WithField("component", "argot-gateway"),
		options: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for local development
			},
		},
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[*session]struct{}),
	}
}

// ServeHTTP handles WebSocket upgrade and connections
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.WarnWithErr("WebSocket upgrade failed", err)
		return
	}
	g.handleConnection(conn)
}

// Close ends every open connection. Running commands see their context
// canceled.
func (g *Gateway) Close() {
	g.cancel()

	g.mu.Lock()
	defer g.mu.Unlock()
	for s := range g.sessions {
		s.conn.Close()
	}
}

func (g *Gateway) track(s *session, open bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if open {
		g.sessions[s] = struct{}{}
		g.metrics.connections.Inc()
	} else {
		delete(g.sessions, s)
		g.metrics.connections.Dec()
	}
}

func (g *Gateway) limiter() *rate.Limiter {
	if g.options.RatePerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(g.options.RatePerSecond), g.options.Burst)
}

// handleConnection handles a single WebSocket connection
func (g *Gateway) handleConnection(conn *websocket.Conn) {
	defer conn.Close()

	id := uuid.NewString()
	s := &session{
		id:      id,
		conn:    conn,
		gateway: g,
		logger:  g.logger.WithSessionID(id),
		limiter: g.limiter(),
		replies: make(chan string, 1),
	}
	g.track(s, true)
	defer g.track(s, false)

	ctx, cancel := context.WithCancel(g.ctx)
	defer func() {
		cancel()
		s.wg.Wait()
	}()

	s.logger.Info("WebSocket connection established", argotlog.Fields{"remote": conn.RemoteAddr().String()})

	conn.SetReadLimit(g.options.MaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(g.options.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(g.options.ReadTimeout))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.WarnWithErr("WebSocket read error", err)
			} else {
				s.logger.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(g.options.ReadTimeout))

		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			g.metrics.messages.WithLabelValues("invalid").Inc()
			s.sendError(argoterrors.CodeInvalidInput, "Invalid message: "+err.Error())
			continue
		}
		g.metrics.messages.WithLabelValues(messageLabel(msg.Type)).Inc()

		if msg.Type != TypePing && !s.limiter.Allow() {
			g.metrics.rateLimited.Inc()
			s.sendError(argoterrors.CodeRateLimited, "Too many messages, slow down")
			continue
		}

		switch msg.Type {
		case TypePing:
			s.send(WSResponse{Type: TypePong})

		case TypeCommand:
			s.start(ctx, msg.Text)

		case TypeReply:
			s.deliver(msg.Text)

		default:
			s.sendError(argoterrors.CodeInvalidInput, "Unknown message type: "+msg.Type)
		}
	}
}

func messageLabel(t string) string {
	switch t {
	case TypeCommand, TypeReply, TypePing:
		return t
	default:
		return "unknown"
	}
}

// session is the state of one connection
type session struct {
	id      string
	conn    *websocket.Conn
	gateway *Gateway
	logger  *argotlog.Logger
	limiter *rate.Limiter

	writeMu sync.Mutex
	replies chan string
	waiting atomic.Bool
	busy    atomic.Bool
	wg      sync.WaitGroup
}

// start runs input in the background unless a command is already running
func (s *session) start(ctx context.Context, input string) {
	if !s.busy.CompareAndSwap(false, true) {
		s.sendError(argoterrors.CodeInvalidInput, "A command is already running")
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.busy.Store(false)
		s.execute(ctx, input)
	}()
}

func (s *session) execute(ctx context.Context, input string) {
	g := s.gateway
	start := time.Now()

	res, err := g.engine.Execute(ctx, input, s)
	g.record(ctx, s.id, input, res, err)

	if err != nil {
		code := argoterrors.CodeOf(err)
		g.metrics.observeCommand("", code.String(), time.Since(start))

		resp := WSResponse{Type: TypeError, Code: code.String(), Text: err.Error()}
		var coded *argoterrors.Error
		if errors.As(err, &coded) {
			if v, ok := coded.Detail("suggestions"); ok {
				resp.Suggestions, _ = v.([]string)
			}
		}
		if !code.IsUserError() {
			s.logger.WarnWithErr("Command failed", err, argotlog.Fields{"input": input})
		}
		s.send(resp)
		return
	}

	g.metrics.observeCommand(res.Command, "OK", time.Since(start))
	out := res.Output
	s.send(WSResponse{
		Type:    TypeResult,
		ID:      res.InvocationID,
		Command: res.Command,
		Text:    res.Message,
		Output:  &out,
	})
}

// Prompt implements argot.Prompter: it sends the question and waits for
// the client's reply
func (s *session) Prompt(ctx context.Context, question string) (string, error) {
	// drop a reply that arrived after the previous question was answered
	select {
	case <-s.replies:
	default:
	}

	s.waiting.Store(true)
	defer s.waiting.Store(false)

	s.gateway.metrics.prompts.Inc()
	if err := s.send(WSResponse{Type: TypePrompt, Text: question}); err != nil {
		return "", err
	}

	select {
	case answer := <-s.replies:
		return answer, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *session) deliver(answer string) {
	if !s.waiting.Load() {
		s.sendError(argoterrors.CodeInvalidInput, "No question is pending")
		return
	}
	select {
	case s.replies <- answer:
	default:
		s.sendError(argoterrors.CodeInvalidInput, "A reply is already pending")
	}
}

// send sends a response message via WebSocket
func (s *session) send(resp WSResponse) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteJSON(resp); err != nil {
		s.logger.WarnWithErr("WebSocket send error", err)
		return err
	}
	return nil
}

// sendError sends an error response via WebSocket
func (s *session) sendError(code argoterrors.Code, message string) {
	s.send(WSResponse{
		Type: TypeError,
		Code: code.String(),
		Text: message,
	})
}

func (g *Gateway) record(ctx context.Context, sessionID, input string, res *argot.Result, err error) {
	if g.store == nil {
		return
	}
	entry := history.NewEntry(history.SourceWebSocket, sessionID, input, res, err)
	if recErr := g.store.Record(context.WithoutCancel(ctx), entry); recErr != nil {
		g.logger.WarnWithErr("Failed to record history", recErr)
	}
}
