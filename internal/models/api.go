package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnknownPlayer = errors.New("unknown player")

// PlayerToken is the player field of a request. Clients send either
// "black"/"white" or the numeric cell value 1/-1.
type PlayerToken struct {
	Player Player
}

// UnmarshalJSON implements json.Unmarshaler for PlayerToken.
func (t *PlayerToken) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		player, err := ParsePlayer(name)
		if err != nil {
			return err
		}
		t.Player = player
		return nil
	}

	var number int
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, string(data))
	}

	switch number {
	case int(PlayerBlack):
		t.Player = PlayerBlack
	case int(PlayerWhite):
		t.Player = PlayerWhite
	default:
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, number)
	}

	return nil
}

// MarshalJSON implements json.Marshaler for PlayerToken.
func (t PlayerToken) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Player.String())
}

// ParsePlayer converts a player name into a Player.
func ParsePlayer(name string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "black", "1", "+1":
		return PlayerBlack, nil
	case "white", "-1":
		return PlayerWhite, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPlayer, name)
	}
}

// MoveRequest is the payload of a move request.
type MoveRequest struct {
	Board  [][][]int    `json:"board"`
	Player *PlayerToken `json:"player"`
}

// Validate checks the request and returns the parsed board and player.
func (r *MoveRequest) Validate() (Board, Player, error) {
	if r.Board == nil {
		return Board{}, 0, fmt.Errorf("%w: board is missing", ErrInvalidBoardShape)
	}

	if r.Player == nil {
		return Board{}, 0, fmt.Errorf("%w: player is missing", ErrUnknownPlayer)
	}

	board, err := NewBoardFromCells(r.Board)
	if err != nil {
		return Board{}, 0, err
	}

	return board, r.Player.Player, nil
}

// MoveResponse is the response to a move request. Move is nil if no move was found.
type MoveResponse struct {
	ID         string `json:"id"`
	Move       *Move  `json:"move"`
	Algorithm  string `json:"algorithm"`
	EmptyCells int    `json:"empty_cells"`
	DurationMS int64  `json:"duration_ms"`
	Cached     bool   `json:"cached"`
}

// DecisionRecord is a decision as stored in the decision log.
type DecisionRecord struct {
	ID         string    `json:"id"          db:"id"`
	Board      string    `json:"board"       db:"board"`
	Player     int       `json:"player"      db:"player"`
	Move       *Move     `json:"move"        db:"-"`
	Algorithm  string    `json:"algorithm"   db:"algorithm"`
	EmptyCells int       `json:"empty_cells" db:"empty_cells"`
	DurationMS int64     `json:"duration_ms" db:"duration_ms"`
	Cached     bool      `json:"cached"      db:"cached"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
}

// AlgorithmStats is the number of decisions made by one algorithm.
type AlgorithmStats struct {
	Algorithm string `json:"algorithm"`
	Count     int    `json:"count"`
}

type VersionResponse struct {
	Commit string `json:"commit"`
}

// Response converts the record into the response sent to the client.
func (r DecisionRecord) Response() MoveResponse {
	return MoveResponse{
		ID:         r.ID,
		Move:       r.Move,
		Algorithm:  r.Algorithm,
		EmptyCells: r.EmptyCells,
		DurationMS: r.DurationMS,
		Cached:     r.Cached,
	}
}
