package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/lk16/cubello/internal/repository"
	"github.com/lk16/cubello/internal/services"
)

const (
	saveTimeout = 2 * time.Second
)

type Handler struct {
	services *services.Services
	ws       *websocket.Conn
}

// NewHandler creates a new Handler.
func NewHandler(ws *websocket.Conn, services *services.Services) *Handler {
	return &Handler{services: services, ws: ws}
}

// readMessage reads the next message. Errors end the connection.
func (h *Handler) readMessage() (int, []byte, error) {
	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return 0, nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", msg)

	return msgType, msg, nil
}

// decodeMessage parses a message. Errors are reported to the client.
func decodeMessage(msgType int, msg []byte) (*Incoming, error) {
	var req Incoming

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err := json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

func (h *Handler) handleMessage(req *Incoming) (*Outgoing, error) {
	if req.Event == "" {
		return nil, errors.New("event field is either empty or missing")
	}

	switch req.Event {
	case EventMoveRequest:
		return h.handleMoveRequest(req)
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}
}

func errorEvent(id int, err error) *Outgoing {
	return &Outgoing{
		Event: EventError,
		ID:    id,
		Data:  ErrorResponse{Error: err.Error()},
	}
}

// respond handles one message. Request errors are sent to the client as error events.
func (h *Handler) respond(msgType int, msg []byte) *Outgoing {
	req, err := decodeMessage(msgType, msg)
	if err != nil {
		slog.Debug("ws message rejected", "error", err)
		return errorEvent(0, err)
	}

	outgoing, err := h.handleMessage(req)
	if err != nil {
		slog.Debug("ws request failed", "id", req.ID, "error", err)
		return errorEvent(req.ID, err)
	}

	return outgoing
}

// Handle handles the websocket connection until the client disconnects.
// Only read and write errors end the connection.
func (h *Handler) Handle() error {
	for {
		msgType, msg, err := h.readMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		if err = h.writeMessage(h.respond(msgType, msg)); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}

func (h *Handler) handleMoveRequest(req *Incoming) (*Outgoing, error) {
	var reqData MoveRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("ws move request unmarshal error: %w", err)
	}

	board, player, err := reqData.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid move request: %w", err)
	}

	decision := h.services.Engine.DecideMove(board, player)
	record := repository.NewDecisionRecord(board, player, decision)

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	repo := repository.NewDecisionRepositoryFromServices(h.services)
	if err = repo.SaveDecision(ctx, record); err != nil {
		slog.Error("Failed to save decision", "id", record.ID, "error", err)
	}

	outgoing := &Outgoing{
		Event: EventMoveResponse,
		ID:    req.ID,
		Data:  record.Response(),
	}

	return outgoing, nil
}
