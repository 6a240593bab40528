// Package types contains common types used across the application
package types

import (
	"time"

	"github.com/okian/scoutdesk/internal/domain/board"
	"github.com/okian/scoutdesk/internal/domain/performance"
)

// BoardView is the board as served to clients.
type BoardView struct {
	board.Board
	Counts      map[board.Bucket]int `json:"counts"`
	Version     uint64               `json:"version"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// NewBoardView wraps b with its counts and the data version it reflects.
func NewBoardView(b board.Board, version uint64, at time.Time) BoardView {
	return BoardView{Board: b, Counts: b.Counts(), Version: version, GeneratedAt: at}
}

// PerformanceView lists scout performance entries.
type PerformanceView struct {
	Scouts      []performance.ScoutPerformance `json:"scouts"`
	Version     uint64                         `json:"version"`
	GeneratedAt time.Time                      `json:"generated_at"`
}
