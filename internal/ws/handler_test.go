package ws

import (
	"encoding/json"
	"testing"

	"github.com/gofiber/contrib/websocket"
	"github.com/lk16/cubello/internal/engine"
	"github.com/lk16/cubello/internal/models"
	"github.com/lk16/cubello/internal/services"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *Handler {
	return NewHandler(nil, &services.Services{Engine: engine.New()})
}

// send passes req through the handler as a text message.
func send(t *testing.T, h *Handler, req *Incoming) *Outgoing {
	t.Helper()

	msg, err := json.Marshal(req)
	require.NoError(t, err)
	return h.respond(websocket.TextMessage, msg)
}

func moveRequestData(t *testing.T, cells [][][]int, player any) json.RawMessage {
	t.Helper()

	data, err := json.Marshal(map[string]any{"board": cells, "player": player})
	require.NoError(t, err)
	return data
}

func TestHandleMoveRequest(t *testing.T) {
	h := newTestHandler()
	board := models.NewBoardStart()

	outgoing := send(t, h, &Incoming{
		Event: EventMoveRequest,
		ID:    7,
		Data:  moveRequestData(t, board.Cells(), "black"),
	})

	require.Equal(t, EventMoveResponse, outgoing.Event)
	require.Equal(t, 7, outgoing.ID)

	resp, ok := outgoing.Data.(MoveResponse)
	require.True(t, ok)
	require.Equal(t, engine.AlgorithmAlphaBeta, resp.Algorithm)
	require.Equal(t, 56, resp.EmptyCells)
	require.NotEmpty(t, resp.ID)
	require.NotNil(t, resp.Move)
	require.True(t, board.IsLegalMove(*resp.Move, models.PlayerBlack))
}

func TestHandleMoveRequestNumericPlayer(t *testing.T) {
	h := newTestHandler()

	outgoing := send(t, h, &Incoming{
		Event: EventMoveRequest,
		ID:    1,
		Data:  moveRequestData(t, models.NewBoardEmpty().Cells(), -1),
	})

	require.Equal(t, EventMoveResponse, outgoing.Event)

	resp, ok := outgoing.Data.(MoveResponse)
	require.True(t, ok)
	require.Nil(t, resp.Move)
}

func TestHandleMessageErrors(t *testing.T) {
	start := models.NewBoardStart().Cells()

	tests := []struct {
		name string
		req  Incoming
	}{
		{name: "missing event", req: Incoming{ID: 1}},
		{name: "unknown event", req: Incoming{Event: "evaluation_request", ID: 2}},
		{name: "invalid data", req: Incoming{Event: EventMoveRequest, ID: 3, Data: json.RawMessage(`[]`)}},
		{name: "unknown player", req: Incoming{Event: EventMoveRequest, ID: 4, Data: moveRequestData(t, start, "green")}},
		{name: "missing player", req: Incoming{Event: EventMoveRequest, ID: 5, Data: json.RawMessage(`{"board": []}`)}},
		{name: "bad board", req: Incoming{Event: EventMoveRequest, ID: 6, Data: moveRequestData(t, start[:2], "white")}},
	}

	h := newTestHandler()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.handleMessage(&tt.req)
			require.Error(t, err)

			outgoing := send(t, h, &tt.req)
			require.Equal(t, EventError, outgoing.Event)
			require.Equal(t, tt.req.ID, outgoing.ID)

			resp, ok := outgoing.Data.(ErrorResponse)
			require.True(t, ok)
			require.NotEmpty(t, resp.Error)
		})
	}
}

func TestRespondMalformedMessage(t *testing.T) {
	tests := []struct {
		name    string
		msgType int
		msg     []byte
	}{
		{name: "truncated json", msgType: websocket.TextMessage, msg: []byte(`{"event": "move_request", "data":`)},
		{name: "not an object", msgType: websocket.TextMessage, msg: []byte(`"hello"`)},
		{name: "binary message", msgType: websocket.BinaryMessage, msg: []byte{0x01, 0x02}},
	}

	h := newTestHandler()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outgoing := h.respond(tt.msgType, tt.msg)

			require.Equal(t, EventError, outgoing.Event)
			require.Equal(t, 0, outgoing.ID)

			resp, ok := outgoing.Data.(ErrorResponse)
			require.True(t, ok)
			require.NotEmpty(t, resp.Error)
		})
	}
}
