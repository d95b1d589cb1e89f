package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		dice []int
		want int
	}{
		{"triple ones", []int{1, 1, 1, 2, 3, 4}, 1000},
		{"triple fives", []int{5, 5, 5, 2, 3, 4}, 500},
		{"two triples of twos", []int{2, 2, 2, 2, 2, 2}, 400},
		{"nothing scores", []int{2, 3, 4, 6, 6, 2}, 0},
		{"single one and five", []int{1, 5}, 150},
		{"six ones is two triples", []int{1, 1, 1, 1, 1, 1}, 2000},
		{"triple ones plus triple fives", []int{1, 1, 1, 5, 5, 5}, 1500},
		{"triple plus leftovers", []int{3, 3, 3, 1, 5, 2}, 450},
		{"four of a kind is triple plus leftover", []int{5, 5, 5, 5, 2, 3}, 550},
		{"four ones", []int{1, 1, 1, 1, 2, 3}, 1100},
		{"triple sixes", []int{6, 6, 6, 2, 3, 4}, 600},
		{"empty roll", nil, 0},
		{"lone two", []int{2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.dice))
		})
	}
}

func TestScoreIgnoresOutOfRangeFaces(t *testing.T) {
	assert.Equal(t, 100, Score([]int{1, 0, 7, -3}))
}

func TestIsBust(t *testing.T) {
	assert.True(t, IsBust([]int{2, 3, 4, 6, 6, 2}))
	assert.False(t, IsBust([]int{1, 2, 3, 4, 6, 6}))
}
