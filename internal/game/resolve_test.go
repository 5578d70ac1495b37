package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundPlayers(numbers ...int) []*Player {
	ids := []string{"p1", "p2", "p3", "p4", "p5"}
	players := make([]*Player, len(numbers))
	for i, n := range numbers {
		v := n
		players[i] = &Player{ID: ids[i], Name: ids[i], Number: &v}
	}
	return players
}

func TestResolveThreePlayers(t *testing.T) {
	res := Resolve(roundPlayers(10, 50, 90), 0.8)
	require.NotNil(t, res)

	require.Equal(t, []int{10, 50, 90}, res.Numbers)
	require.Equal(t, 150, res.Sum)
	require.Equal(t, 50.0, res.Average)
	require.Equal(t, 40.0, res.Target)
	require.Equal(t, 10.0, res.MinDiff)
	require.Equal(t, []int{1}, res.WinnerIndices)
	require.Equal(t, []string{"p2"}, res.WinnerIDs)
	require.Equal(t, 2, res.EliminatedIndex)
	require.Equal(t, "p3", res.EliminatedID)
}

func TestResolveTieProducesMultipleWinners(t *testing.T) {
	// 30 and 50 sit at exactly 10 from target 40.
	res := Resolve(roundPlayers(30, 50, 70), 0.8)
	require.NotNil(t, res)

	require.Equal(t, 40.0, res.Target)
	require.Equal(t, []int{0, 1}, res.WinnerIndices)
	require.Equal(t, []string{"p1", "p2"}, res.WinnerIDs)
	require.Equal(t, 2, res.EliminatedIndex)
}

func TestResolveEliminationTieTakesFirstIndex(t *testing.T) {
	// Both players are equidistant; the first index is eliminated and is
	// filtered out of the winner set even though it tied for closest.
	res := Resolve(roundPlayers(50, 50), 0.8)
	require.NotNil(t, res)

	require.Equal(t, 0, res.EliminatedIndex)
	require.Equal(t, "p1", res.EliminatedID)
	require.Equal(t, []int{1}, res.WinnerIndices)
	require.Equal(t, []string{"p2"}, res.WinnerIDs)
}

func TestResolveSinglePlayerEliminatesSelf(t *testing.T) {
	res := Resolve(roundPlayers(42), 0.8)
	require.NotNil(t, res)

	require.InDelta(t, 33.6, res.Target, 1e-9)
	require.Equal(t, 0, res.EliminatedIndex)
	require.Empty(t, res.WinnerIndices)
	require.Empty(t, res.WinnerIDs)
}

func TestResolveRequiresAllNumbers(t *testing.T) {
	players := roundPlayers(10, 50)
	players[1].Number = nil
	require.Nil(t, Resolve(players, 0.8))
	require.Nil(t, Resolve(nil, 0.8))
}

func TestResolveWinnerMinimality(t *testing.T) {
	cases := [][]int{
		{0, 100},
		{1, 2, 3, 4, 5},
		{17, 83, 42, 99, 0},
		{100, 100, 100},
		{7},
	}
	for _, numbers := range cases {
		res := Resolve(roundPlayers(numbers...), 0.8)
		require.NotNil(t, res)

		winner := make(map[int]bool)
		for _, i := range res.WinnerIndices {
			winner[i] = true
		}
		for i, n := range numbers {
			diff := math.Abs(float64(n) - res.Target)
			if winner[i] {
				require.Equal(t, res.MinDiff, diff, "numbers=%v index=%d", numbers, i)
			} else if i != res.EliminatedIndex {
				require.Greater(t, diff, res.MinDiff, "numbers=%v index=%d", numbers, i)
			}
			require.GreaterOrEqual(t, math.Abs(float64(numbers[res.EliminatedIndex])-res.Target), diff)
		}
		require.False(t, winner[res.EliminatedIndex])
	}
}
