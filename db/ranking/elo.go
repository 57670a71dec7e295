package ranking

import "math"

const (
	// InitialRating is the rating of a player with no finished games.
	InitialRating = 1000
	// kFactor bounds how far one game can move a rating.
	kFactor = 32
)

// newRatings computes each player's rating after a finished game.
// Every player is scored against the average rating of their opponents,
// winners with an actual result of 1 and losers with 0.
func newRatings(ratings map[int64]int, won map[int64]bool) map[int64]int {
	if len(ratings) < 2 {
		return ratings
	}
	total := 0
	for _, r := range ratings {
		total += r
	}
	updated := make(map[int64]int, len(ratings))
	for id, r := range ratings {
		opponentAvg := float64(total-r) / float64(len(ratings)-1)
		expected := 1 / (1 + math.Pow(10, (opponentAvg-float64(r))/400))
		actual := 0.0
		if won[id] {
			actual = 1
		}
		updated[id] = r + int(math.Round(kFactor*(actual-expected)))
	}
	return updated
}
