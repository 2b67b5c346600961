package board

// Board owns the full state of one TwixT game: peg occupancy for the
// whole grid and one barrier list per player. All mutators check first
// and mutate only on success, reporting the outcome as a bool; a false
// result means the board is untouched. A Board is not safe for
// concurrent use, the session owning it serializes access.
type Board struct {
	cells    [Size][Size]Player
	barriers map[Player][]Barrier
}

// New returns an empty board: every cell None, no barriers.
func New() *Board {
	return &Board{
		barriers: map[Player][]Barrier{
			Red:   nil,
			Black: nil,
		},
	}
}

// At returns the occupant of peg. Out-of-range coordinates read as None.
func (b *Board) At(p Peg) Player {
	if !p.inRange() {
		return None
	}
	return b.cells[p.X-1][p.Y-1]
}

// Barriers returns a copy of color's barrier list, for rendering.
func (b *Board) Barriers(color Player) []Barrier {
	list := b.barriers[color]
	out := make([]Barrier, len(list))
	copy(out, list)
	return out
}

// PlacePeg puts a peg of color on p. Columns 1 and Size belong to
// Black's connection targets, so Red may not use them; rows 1 and Size
// are Red's, forbidden for Black.
func (b *Board) PlacePeg(p Peg, color Player) bool {
	if color != Red && color != Black {
		return false
	}
	if !p.inRange() {
		return false
	}
	if color == Red && (p.X == 1 || p.X == Size) {
		return false
	}
	if color == Black && (p.Y == 1 || p.Y == Size) {
		return false
	}
	if b.cells[p.X-1][p.Y-1] != None {
		return false
	}
	b.cells[p.X-1][p.Y-1] = color
	return true
}

// PlaceBarrier links two pegs of color. The endpoints must be a
// knight's move apart (squared distance 5), both owned by color, and
// the new segment may not cross or duplicate any existing barrier of
// either player.
func (b *Board) PlaceBarrier(a, c Peg, color Player) bool {
	if color != Red && color != Black {
		return false
	}
	if !a.inRange() || !c.inRange() {
		return false
	}
	if distSquared(a, c) != 5 {
		return false
	}
	if b.At(a) != color || b.At(c) != color {
		return false
	}

	nb := NewBarrier(a, c)
	for _, list := range b.barriers {
		for _, existing := range list {
			if blocked(nb, existing) {
				return false
			}
		}
	}

	b.barriers[color] = append(b.barriers[color], nb)
	return true
}

// RemovePeg takes color's peg off p and drops every barrier of color
// attached to it, so no barrier ever dangles on an empty cell.
func (b *Board) RemovePeg(p Peg, color Player) bool {
	if color != Red && color != Black {
		return false
	}
	if b.At(p) != color {
		return false
	}

	kept := b.barriers[color][:0]
	for _, bar := range b.barriers[color] {
		if !bar.Touches(p) {
			kept = append(kept, bar)
		}
	}
	b.barriers[color] = kept

	b.cells[p.X-1][p.Y-1] = None
	return true
}

// RemoveBarrier deletes color's barrier between a and c, in either
// endpoint order. Pegs are left alone.
func (b *Board) RemoveBarrier(a, c Peg, color Player) bool {
	target := NewBarrier(a, c)
	list := b.barriers[color]
	for i, bar := range list {
		if bar == target {
			b.barriers[color] = append(list[:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// AdjacentPegs returns the pegs linked to p by barriers of p's owner.
// An empty cell has no neighbors.
func (b *Board) AdjacentPegs(p Peg) []Peg {
	owner := b.At(p)
	if owner == None {
		return nil
	}
	var out []Peg
	for _, bar := range b.barriers[owner] {
		if bar.Touches(p) {
			out = append(out, bar.Other(p))
		}
	}
	return out
}

// GameWon reports whether color has a barrier-connected path between
// its two home lines: rows 1 and Size for Red, columns 1 and Size for
// Black. Depth-first search over AdjacentPegs; the reachable set does
// not depend on visit order.
func (b *Board) GameWon(color Player) bool {
	if color != Red && color != Black {
		return false
	}

	var stack []Peg
	for i := 1; i <= Size; i++ {
		var seed Peg
		if color == Red {
			seed = Peg{X: i, Y: 1}
		} else {
			seed = Peg{X: 1, Y: i}
		}
		if b.At(seed) == color {
			stack = append(stack, seed)
		}
	}

	visited := make(map[Peg]bool, len(stack))
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[p] {
			continue
		}
		visited[p] = true

		if color == Red && p.Y == Size {
			return true
		}
		if color == Black && p.X == Size {
			return true
		}

		for _, next := range b.AdjacentPegs(p) {
			if !visited[next] {
				stack = append(stack, next)
			}
		}
	}
	return false
}
