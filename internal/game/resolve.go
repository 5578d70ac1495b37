package game

import "math"

// Result describes one resolved round. It is derived state: recomputed every
// round, never stored. Numbers are in roster order so clients can render
// per-player values by index.
type Result struct {
	Numbers         []int    `json:"numbers"`
	Sum             int      `json:"sum"`
	Average         float64  `json:"average"`
	Target          float64  `json:"target"`
	MinDiff         float64  `json:"minDiff"`
	WinnerIndices   []int    `json:"winnerIndices"`
	EliminatedIndex int      `json:"eliminatedIndex"`
	WinnerIDs       []string `json:"winnerPlayerIds"`
	EliminatedID    string   `json:"eliminatedPlayerId"`
}

// Resolve computes the round outcome for the given players:
//
//	target = average(numbers) * factor
//
// Winners are every player at the minimum absolute distance from target
// (exact float equality on the computed difference, so ties behave the same
// as integer ties). The player farthest from target is eliminated, first
// index winning ties, and is filtered out of the final winner set even if it
// tied for closest. Returns nil unless every player has a number.
func Resolve(players []*Player, factor float64) *Result {
	if len(players) == 0 {
		return nil
	}
	numbers := make([]int, len(players))
	for i, p := range players {
		if p.Number == nil {
			return nil
		}
		numbers[i] = *p.Number
	}

	sum := 0
	for _, n := range numbers {
		sum += n
	}
	average := float64(sum) / float64(len(numbers))
	target := average * factor

	minDiff := math.Abs(float64(numbers[0]) - target)
	winners := []int{0}
	for i := 1; i < len(numbers); i++ {
		diff := math.Abs(float64(numbers[i]) - target)
		if diff < minDiff {
			minDiff = diff
			winners = []int{i}
		} else if diff == minDiff {
			winners = append(winners, i)
		}
	}

	maxDiff := math.Abs(float64(numbers[0]) - target)
	eliminated := 0
	for i := 1; i < len(numbers); i++ {
		if diff := math.Abs(float64(numbers[i]) - target); diff > maxDiff {
			maxDiff = diff
			eliminated = i
		}
	}

	final := make([]int, 0, len(winners))
	for _, i := range winners {
		if i != eliminated {
			final = append(final, i)
		}
	}

	winnerIDs := make([]string, len(final))
	for i, idx := range final {
		winnerIDs[i] = players[idx].ID
	}

	return &Result{
		Numbers:         numbers,
		Sum:             sum,
		Average:         average,
		Target:          target,
		MinDiff:         minDiff,
		WinnerIndices:   final,
		EliminatedIndex: eliminated,
		WinnerIDs:       winnerIDs,
		EliminatedID:    players[eliminated].ID,
	}
}
