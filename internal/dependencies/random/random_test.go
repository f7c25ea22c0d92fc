package random_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/battleship-go/internal/dependencies/mocks"
	"github.com/mcoot/battleship-go/internal/dependencies/random"
)

func TestSeededRandomIsDeterministic(t *testing.T) {
	a := random.NewSeeded(42)
	b := random.NewSeeded(42)

	for range 100 {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestIntnStaysInRange(t *testing.T) {
	for _, rnd := range []random.Random{random.New(), random.NewSeeded(7)} {
		for range 200 {
			v := rnd.Intn(10)
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, 10)
		}
		assert.Equal(t, 0, rnd.Intn(0))
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	random.Shuffle(random.NewSeeded(3), items)

	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, items)
}

func TestShuffleDrawsFromRemainingSuffix(t *testing.T) {
	mockRandom := mocks.NewMockRandom()
	// Swap 0<->2, then 1<->1
	mockRandom.QueueIntn(2, 0)

	items := []string{"a", "b", "c"}
	random.Shuffle(mockRandom, items)

	assert.Equal(t, []string{"c", "b", "a"}, items)
	assert.Equal(t, []int{3, 2}, mockRandom.Calls)
}
