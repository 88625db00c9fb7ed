package ws

import (
	"encoding/json"

	"github.com/lk16/cubello/internal/models"
)

const (
	EventMoveRequest  = "move_request"
	EventMoveResponse = "move_response"
	EventError        = "error"
)

type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

type Outgoing struct {
	Event string `json:"event"`
	ID    int    `json:"id"`
	Data  any    `json:"data"`
}

// MoveRequest is the data of a move_request event.
type MoveRequest = models.MoveRequest

// MoveResponse is the data of a move_response event.
type MoveResponse = models.MoveResponse

type ErrorResponse struct {
	Error string `json:"error"`
}
