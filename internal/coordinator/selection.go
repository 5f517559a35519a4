package coordinator

import (
	"github.com/clearbid/driver-backend/internal/model"
)

// selectWinner picks the winning solution: highest score, ties broken by
// earliest arrival, then by the lexicographically smallest solver name.
// Invalid solutions never win. Re-running selection on the same input always
// yields the same winner. Returns nil when no solution qualifies.
func selectWinner(solutions []model.Solution) *model.Solution {
	var winner *model.Solution
	for i := range solutions {
		candidate := &solutions[i]
		if !candidate.Valid() {
			continue
		}
		if winner == nil || beats(candidate, winner) {
			winner = candidate
		}
	}
	return winner
}

func beats(a, b *model.Solution) bool {
	if cmp := a.Score.Cmp(b.Score); cmp != 0 {
		return cmp > 0
	}
	if !a.ArrivedAt.Equal(b.ArrivedAt) {
		return a.ArrivedAt.Before(b.ArrivedAt)
	}
	return a.Solver < b.Solver
}
