package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"trivia-party/internal/app"
	"trivia-party/internal/domain"
	"trivia-party/internal/game"
)

// WSHandler gives every connection a private game engine. Commands arrive as
// JSON messages; the current snapshot is pushed after each command and
// whenever the countdown moves.
type WSHandler struct {
	service      *app.GameService
	logger       *zap.Logger
	pollInterval time.Duration
	upgrader     websocket.Upgrader
}

type WSOption func(*WSHandler)

// WithPollInterval sets how often the snapshot is checked for countdown changes.
func WithPollInterval(d time.Duration) WSOption {
	return func(h *WSHandler) {
		if d > 0 {
			h.pollInterval = d
		}
	}
}

func NewWSHandler(service *app.GameService, logger *zap.Logger, opts ...WSOption) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &WSHandler{
		service:      service,
		logger:       logger,
		pollInterval: 250 * time.Millisecond,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	SubjectID string `json:"subjectId"`
	Mode      string `json:"mode"`
}

type answerPayload struct {
	Answer string `json:"answer"`
}

type reportPayload struct {
	Correct bool `json:"correct"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets. subjectId and mode query
// parameters, when present, start a game right away.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	subjectID := r.URL.Query().Get("subjectId")
	mode := domain.ModeSolo
	if raw := r.URL.Query().Get("mode"); raw != "" {
		parsed, err := domain.ParseMode(raw)
		if err != nil {
			http.Error(w, "unknown mode", http.StatusBadRequest)
			return
		}
		mode = parsed
	}

	engine, err := h.service.NewEngine()
	if err != nil {
		h.logger.Error("create engine", zap.Error(err))
		http.Error(w, "cannot create game", http.StatusInternalServerError)
		return
	}
	defer engine.Close()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage, 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	pollerDone := make(chan struct{})

	// Only the writer touches the connection for writes.
	go func() {
		defer close(writerDone)
		var last snapshotKey
		sent := false
		for msg := range send {
			if snap, ok := msg.Payload.(domain.Snapshot); ok {
				key := keyOf(snap)
				// The poller may enqueue a snapshot taken just before a command.
				if sent && (key == last || key.version < last.version) {
					continue
				}
				last, sent = key, true
			}
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Debug("ws write error", zap.Error(err))
				return
			}
		}
	}()

	go func() {
		defer close(pollerDone)
		ticker := time.NewTicker(h.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				select {
				case send <- outboundMessage{Type: "snapshot", Payload: engine.Snapshot()}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	if subjectID != "" {
		snap, err := h.service.StartGame(r.Context(), engine, subjectID, mode)
		if err != nil {
			send <- errorMessage(err)
		}
		send <- outboundMessage{Type: "snapshot", Payload: snap}
	} else {
		send <- outboundMessage{Type: "snapshot", Payload: engine.Snapshot()}
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		for _, msg := range h.dispatch(r, engine, inbound) {
			send <- msg
		}
	}

	close(closeSignals)
	<-pollerDone
	close(send)
	<-writerDone
}

func (h *WSHandler) dispatch(r *http.Request, engine *game.Engine, inbound inboundMessage) []outboundMessage {
	var (
		snap domain.Snapshot
		err  error
	)
	switch inbound.Type {
	case "start":
		var p startPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			return []outboundMessage{invalidPayload(inbound.Type)}
		}
		mode, err := domain.ParseMode(p.Mode)
		if err != nil {
			return []outboundMessage{errorMessage(err)}
		}
		snap, err = h.service.StartGame(r.Context(), engine, p.SubjectID, mode)
		if err != nil {
			return []outboundMessage{errorMessage(err)}
		}
	case "answer":
		var p answerPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			return []outboundMessage{invalidPayload(inbound.Type)}
		}
		snap, err = engine.AnswerQuestion(p.Answer)
	case "report":
		var p reportPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			return []outboundMessage{invalidPayload(inbound.Type)}
		}
		snap, err = engine.ReportAnswer(p.Correct)
	case "timeUp":
		snap, err = engine.TimeUp()
	case "next":
		snap, err = engine.NextQuestion()
	case "pause":
		snap, err = engine.PauseTimer()
	case "resume":
		snap, err = engine.ResumeTimer()
	case "playAgain":
		snap, err = engine.PlayAgain()
	case "reset":
		snap = engine.ResetGame()
	case "results":
		results, err := engine.Results()
		if err != nil {
			return []outboundMessage{errorMessage(err)}
		}
		return []outboundMessage{{Type: "results", Payload: results}}
	default:
		return []outboundMessage{{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}}
	}
	if err != nil {
		return []outboundMessage{errorMessage(err)}
	}

	out := []outboundMessage{{Type: "snapshot", Payload: snap}}
	if snap.State == domain.StateFinished {
		if results, err := engine.Results(); err == nil {
			out = append(out, outboundMessage{Type: "results", Payload: results})
		}
	}
	return out
}

// snapshotKey is what must change for a snapshot to be worth sending again.
type snapshotKey struct {
	version   uint64
	remaining int
	active    bool
	paused    bool
}

func keyOf(s domain.Snapshot) snapshotKey {
	return snapshotKey{
		version:   s.Version,
		remaining: s.Timer.Remaining,
		active:    s.Timer.Active,
		paused:    s.Timer.Paused,
	}
}

func errorMessage(err error) outboundMessage {
	return outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}}
}

func invalidPayload(kind string) outboundMessage {
	return outboundMessage{Type: "error", Payload: errorPayload{Message: "invalid " + kind + " payload"}}
}
