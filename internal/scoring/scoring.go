// Package scoring implements the dice scoring rules for the bank game.
//
// Each complete triple of a face scores: three 1s are worth 1000, three of
// any other face f are worth f*100. A face rolled six times counts as two
// triples. After triples are consumed, each remaining 1 scores 100 and each
// remaining 5 scores 50. A roll worth zero total is a bust.
package scoring

// Point values for the scoring rules
const (
	TripleOnesValue    = 1000
	TripleFaceMultiple = 100
	SingleOneValue     = 100
	SingleFiveValue    = 50
)

// Score computes the point value of a dice roll. It is pure and
// deterministic; faces outside 1..6 are ignored.
func Score(dice []int) int {
	var counts [7]int
	for _, d := range dice {
		if d >= 1 && d <= 6 {
			counts[d]++
		}
	}

	total := 0
	for face := 1; face <= 6; face++ {
		triples := counts[face] / 3
		if triples > 0 {
			if face == 1 {
				total += triples * TripleOnesValue
			} else {
				total += triples * face * TripleFaceMultiple
			}
			counts[face] -= triples * 3
		}
	}

	total += counts[1] * SingleOneValue
	total += counts[5] * SingleFiveValue
	return total
}

// IsBust reports whether a roll scores zero points
func IsBust(dice []int) bool {
	return Score(dice) == 0
}
