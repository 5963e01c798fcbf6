package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveStatsWinRate(t *testing.T) {
	t.Run("zero visits reports zero instead of dividing by zero", func(t *testing.T) {
		m := MoveStats{}
		assert.Equal(t, 0.0, m.WinRate())
	})

	t.Run("wins over visits", func(t *testing.T) {
		m := MoveStats{TotalVisits: 4, TotalWins: 3}
		assert.InDelta(t, 0.75, m.WinRate(), 1e-9)
	})
}
