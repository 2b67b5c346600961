package board

// Size is the fixed edge length of the TwixT board.
const Size = 24

type Player int

const (
	None Player = iota
	Red
	Black
)

func (p Player) String() string {
	switch p {
	case Red:
		return "red"
	case Black:
		return "black"
	}
	return "none"
}

// PlayerFromString maps the wire color names to a Player.
// Anything unknown is None.
func PlayerFromString(s string) Player {
	switch s {
	case "red":
		return Red
	case "black":
		return Black
	}
	return None
}

// Peg is a board coordinate, both components in [1,Size].
type Peg struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Less orders pegs by X first, then Y.
func (p Peg) Less(other Peg) bool {
	if p.X != other.X {
		return p.X < other.X
	}
	return p.Y < other.Y
}

func (p Peg) inRange() bool {
	return p.X >= 1 && p.X <= Size && p.Y >= 1 && p.Y <= Size
}

func distSquared(a, b Peg) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Barrier is a diagonal link between two same-color pegs. Endpoints are
// kept in lexical order so equality does not depend on how the caller
// passed them.
type Barrier struct {
	A Peg `json:"a" bson:"a"`
	B Peg `json:"b" bson:"b"`
}

// NewBarrier builds a barrier with the endpoints in canonical order.
func NewBarrier(a, b Peg) Barrier {
	if b.Less(a) {
		a, b = b, a
	}
	return Barrier{A: a, B: b}
}

// Touches reports whether p is one of the barrier's endpoints.
func (b Barrier) Touches(p Peg) bool {
	return b.A == p || b.B == p
}

// Other returns the endpoint opposite to p. The zero Peg is returned
// when p is not an endpoint of b.
func (b Barrier) Other(p Peg) Peg {
	switch p {
	case b.A:
		return b.B
	case b.B:
		return b.A
	}
	return Peg{}
}
