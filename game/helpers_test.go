package game

import "fmt"

// Draw values for scripted sources.
const (
	drawFair    = 0.1 // opponent draw at or below 0.5
	drawCheater = 0.9 // opponent draw above 0.5
	drawHeads   = 0.1 // below both fair and default cheat bias
	drawTails   = 0.9 // above both fair and default cheat bias
)

// scripted replays a fixed list of draws and panics when it runs dry, so a
// test fails loudly if the game consumes more entropy than expected.
type scripted struct {
	values []float64
	next   int
}

func script(values ...float64) *scripted {
	return &scripted{values: values}
}

func (s *scripted) Float64() float64 {
	if s.next >= len(s.values) {
		panic(fmt.Sprintf("scripted source exhausted after %d draws", len(s.values)))
	}
	v := s.values[s.next]
	s.next++
	return v
}

func (s *scripted) remaining() int {
	return len(s.values) - s.next
}
