package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/wricardo/rover-mission/mission/control"
	"github.com/wricardo/rover-mission/mission/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to wait for the next request from the peer.
	readWait = 5 * time.Minute

	// Maximum request size allowed from peer.
	maxMessageSize = 1 << 20
)

// Event names sent to the client
const (
	EventStep   = "step"
	EventReport = "report"
	EventError  = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		return true
	},
}

// Request is a mission submitted by the client
type Request struct {
	Input  string `json:"input"`
	Policy string `json:"policy,omitempty"`
}

// Message is a single server-to-client frame
type Message struct {
	Event  string                    `json:"event"`
	Step   *control.StepEvent        `json:"step,omitempty"`
	Result *service.SimulationResult `json:"result,omitempty"`
	Error  string                    `json:"error,omitempty"`
}

// Handler upgrades HTTP requests and streams mission runs
type Handler struct {
	service service.MissionService
	logger  zerolog.Logger
}

// NewHandler creates a streaming handler over the mission service
func NewHandler(missionService service.MissionService, logger zerolog.Logger) *Handler {
	return &Handler{
		service: missionService,
		logger:  logger,
	}
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	h.logger.Debug().Str("remote", r.RemoteAddr).Msg("websocket client connected")

	for {
		conn.SetReadDeadline(time.Now().Add(readWait))

		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}

		if err := h.stream(r, conn, req); err != nil {
			h.logger.Warn().Err(err).Msg("websocket write failed")
			return
		}
	}
}

// stream runs one mission, forwarding every step. It returns only write errors;
// mission failures are reported to the client as error events.
func (h *Handler) stream(r *http.Request, conn *websocket.Conn, req Request) error {
	policy, err := control.ParsePolicy(req.Policy)
	if err != nil {
		return send(conn, Message{Event: EventError, Error: err.Error()})
	}

	var writeErr error
	observer := func(event control.StepEvent) {
		if writeErr != nil {
			return
		}
		writeErr = send(conn, Message{Event: EventStep, Step: &event})
	}

	result, err := h.service.Simulate(r.Context(), req.Input, service.RunOptions{
		Policy:   policy,
		Observer: observer,
	})
	if writeErr != nil {
		return writeErr
	}
	if err != nil {
		return send(conn, Message{Event: EventError, Error: err.Error()})
	}
	return send(conn, Message{Event: EventReport, Result: result})
}

func send(conn *websocket.Conn, msg Message) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
