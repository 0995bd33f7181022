package piece

import (
	"math/rand"

	"github.com/vovakirdan/sandfall/internal/games/sandfall/field"
)

// Queue deals pieces: shapes come from a shuffled 7-bag, colours repeat the
// previous colour with probability bias and are otherwise uniform over the
// remaining five.
type Queue struct {
	rng       *rand.Rand
	bias      float64
	bag       []Shape
	upcoming  []Entry
	lastColor field.Color
	hasLast   bool
}

// NewQueue creates a queue showing length upcoming entries (1..3). All draws
// come from rng.
func NewQueue(rng *rand.Rand, length int, bias float64) *Queue {
	q := &Queue{
		rng:  rng,
		bias: bias,
	}
	length = max(length, 1)
	for len(q.upcoming) < length {
		q.upcoming = append(q.upcoming, q.draw())
	}
	return q
}

// Next removes and returns the head entry, refilling from the tail.
func (q *Queue) Next() Entry {
	e := q.upcoming[0]
	copy(q.upcoming, q.upcoming[1:])
	q.upcoming[len(q.upcoming)-1] = q.draw()
	return e
}

// Peek returns a copy of the upcoming entries, head first.
func (q *Queue) Peek() []Entry {
	return append([]Entry(nil), q.upcoming...)
}

// Len returns the number of visible entries.
func (q *Queue) Len() int {
	return len(q.upcoming)
}

func (q *Queue) draw() Entry {
	return Entry{Shape: q.nextShape(), Color: q.nextColor()}
}

func (q *Queue) nextShape() Shape {
	if len(q.bag) == 0 {
		q.bag = append(q.bag[:0], Shapes[:]...)
		q.rng.Shuffle(len(q.bag), func(i, j int) {
			q.bag[i], q.bag[j] = q.bag[j], q.bag[i]
		})
	}
	s := q.bag[0]
	q.bag = q.bag[1:]
	return s
}

func (q *Queue) nextColor() field.Color {
	var c field.Color
	switch {
	case !q.hasLast:
		c = field.Colors[q.rng.Intn(field.ColorCount)]
	case q.rng.Float64() < q.bias:
		c = q.lastColor
	default:
		// uniform over the five colours other than the last one
		i := q.rng.Intn(field.ColorCount - 1)
		if i >= int(q.lastColor) {
			i++
		}
		c = field.Colors[i]
	}
	q.lastColor = c
	q.hasLast = true
	return c
}
