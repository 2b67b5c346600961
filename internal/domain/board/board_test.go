package board_test

import (
	"testing"

	. "twixt_backend/internal/domain/board"
)

func TestNewBoardIsEmpty(t *testing.T) {
	b := New()
	for x := 1; x <= Size; x++ {
		for y := 1; y <= Size; y++ {
			if got := b.At(Peg{X: x, Y: y}); got != None {
				t.Fatalf("fresh board at (%d,%d): got %v, want None", x, y, got)
			}
		}
	}
	if got := len(b.Barriers(Red)); got != 0 {
		t.Errorf("fresh board red barriers: got %d, want 0", got)
	}
	if got := len(b.Barriers(Black)); got != 0 {
		t.Errorf("fresh board black barriers: got %d, want 0", got)
	}
}

var placePegTests = []struct {
	name  string
	peg   Peg
	color Player
	want  bool
}{
	{
		name:  "red in the open field",
		peg:   Peg{X: 5, Y: 5},
		color: Red,
		want:  true,
	},
	{
		name:  "red on its own home row",
		peg:   Peg{X: 5, Y: 1},
		color: Red,
		want:  true,
	},
	{
		name:  "red in black home column 1",
		peg:   Peg{X: 1, Y: 5},
		color: Red,
		want:  false,
	},
	{
		name:  "red in black home column 24",
		peg:   Peg{X: Size, Y: 5},
		color: Red,
		want:  false,
	},
	{
		name:  "black in its own home column",
		peg:   Peg{X: 1, Y: 6},
		color: Black,
		want:  true,
	},
	{
		name:  "black in red home row 1",
		peg:   Peg{X: 6, Y: 1},
		color: Black,
		want:  false,
	},
	{
		name:  "black in red home row 24",
		peg:   Peg{X: 6, Y: Size},
		color: Black,
		want:  false,
	},
	{
		name:  "none is not a placeable color",
		peg:   Peg{X: 7, Y: 7},
		color: None,
		want:  false,
	},
	{
		name:  "x out of range low",
		peg:   Peg{X: 0, Y: 7},
		color: Black,
		want:  false,
	},
	{
		name:  "y out of range high",
		peg:   Peg{X: 7, Y: Size + 1},
		color: Red,
		want:  false,
	},
}

func TestPlacePeg(t *testing.T) {
	for _, test := range placePegTests {
		t.Run(test.name, func(t *testing.T) {
			b := New()
			if got := b.PlacePeg(test.peg, test.color); got != test.want {
				t.Fatalf("PlacePeg(%v, %v): got %v, want %v", test.peg, test.color, got, test.want)
			}
			wantCell := None
			if test.want {
				wantCell = test.color
			}
			if got := b.At(test.peg); got != wantCell {
				t.Errorf("At(%v) after place: got %v, want %v", test.peg, got, wantCell)
			}
		})
	}
}

func TestPlacePegOccupied(t *testing.T) {
	b := New()
	p := Peg{X: 10, Y: 10}
	if !b.PlacePeg(p, Red) {
		t.Fatal("first placement failed")
	}
	if b.PlacePeg(p, Red) {
		t.Error("second red placement on occupied cell succeeded")
	}
	if b.PlacePeg(p, Black) {
		t.Error("black placement on red-occupied cell succeeded")
	}
	if got := b.At(p); got != Red {
		t.Errorf("cell after rejected placements: got %v, want Red", got)
	}
}

// placePegs is a test helper which fails the test on an illegal setup move.
func placePegs(t *testing.T, b *Board, color Player, pegs ...Peg) {
	t.Helper()
	for _, p := range pegs {
		if !b.PlacePeg(p, color) {
			t.Fatalf("setup: PlacePeg(%v, %v) failed", p, color)
		}
	}
}

func TestPlaceBarrier(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, b *Board)
		a, c  Peg
		color Player
		want  bool
	}{
		{
			name: "knight move with both endpoints owned",
			setup: func(t *testing.T, b *Board) {
				placePegs(t, b, Red, Peg{X: 2, Y: 2}, Peg{X: 3, Y: 4})
			},
			a:     Peg{X: 2, Y: 2},
			c:     Peg{X: 3, Y: 4},
			color: Red,
			want:  true,
		},
		{
			name: "wrong distance",
			setup: func(t *testing.T, b *Board) {
				placePegs(t, b, Red, Peg{X: 2, Y: 2}, Peg{X: 4, Y: 4})
			},
			a:     Peg{X: 2, Y: 2},
			c:     Peg{X: 4, Y: 4},
			color: Red,
			want:  false,
		},
		{
			name: "endpoint not owned by mover",
			setup: func(t *testing.T, b *Board) {
				placePegs(t, b, Red, Peg{X: 2, Y: 2})
				placePegs(t, b, Black, Peg{X: 3, Y: 4})
			},
			a:     Peg{X: 2, Y: 2},
			c:     Peg{X: 3, Y: 4},
			color: Red,
			want:  false,
		},
		{
			name: "endpoint empty",
			setup: func(t *testing.T, b *Board) {
				placePegs(t, b, Red, Peg{X: 2, Y: 2})
			},
			a:     Peg{X: 2, Y: 2},
			c:     Peg{X: 3, Y: 4},
			color: Red,
			want:  false,
		},
		{
			name: "crossing an own barrier",
			setup: func(t *testing.T, b *Board) {
				placePegs(t, b, Red,
					Peg{X: 2, Y: 2}, Peg{X: 3, Y: 4},
					Peg{X: 2, Y: 4}, Peg{X: 4, Y: 3})
				if !b.PlaceBarrier(Peg{X: 2, Y: 2}, Peg{X: 3, Y: 4}, Red) {
					t.Fatal("setup: first barrier failed")
				}
			},
			a:     Peg{X: 2, Y: 4},
			c:     Peg{X: 4, Y: 3},
			color: Red,
			want:  false,
		},
		{
			name: "crossing an opponent barrier",
			setup: func(t *testing.T, b *Board) {
				placePegs(t, b, Red, Peg{X: 2, Y: 2}, Peg{X: 3, Y: 4})
				placePegs(t, b, Black, Peg{X: 2, Y: 4}, Peg{X: 4, Y: 3})
				if !b.PlaceBarrier(Peg{X: 2, Y: 2}, Peg{X: 3, Y: 4}, Red) {
					t.Fatal("setup: red barrier failed")
				}
			},
			a:     Peg{X: 2, Y: 4},
			c:     Peg{X: 4, Y: 3},
			color: Black,
			want:  false,
		},
		{
			name: "exact duplicate",
			setup: func(t *testing.T, b *Board) {
				placePegs(t, b, Red, Peg{X: 2, Y: 2}, Peg{X: 3, Y: 4})
				if !b.PlaceBarrier(Peg{X: 2, Y: 2}, Peg{X: 3, Y: 4}, Red) {
					t.Fatal("setup: first barrier failed")
				}
			},
			a:     Peg{X: 2, Y: 2},
			c:     Peg{X: 3, Y: 4},
			color: Red,
			want:  false,
		},
		{
			name: "reverse duplicate",
			setup: func(t *testing.T, b *Board) {
				placePegs(t, b, Red, Peg{X: 2, Y: 2}, Peg{X: 3, Y: 4})
				if !b.PlaceBarrier(Peg{X: 2, Y: 2}, Peg{X: 3, Y: 4}, Red) {
					t.Fatal("setup: first barrier failed")
				}
			},
			a:     Peg{X: 3, Y: 4},
			c:     Peg{X: 2, Y: 2},
			color: Red,
			want:  false,
		},
		{
			name: "collinear but distinct along the same line",
			setup: func(t *testing.T, b *Board) {
				placePegs(t, b, Red,
					Peg{X: 2, Y: 2}, Peg{X: 3, Y: 4},
					Peg{X: 4, Y: 6})
				if !b.PlaceBarrier(Peg{X: 2, Y: 2}, Peg{X: 3, Y: 4}, Red) {
					t.Fatal("setup: first barrier failed")
				}
			},
			a:     Peg{X: 3, Y: 4},
			c:     Peg{X: 4, Y: 6},
			color: Red,
			want:  true,
		},
		{
			name: "touching at a shared peg",
			setup: func(t *testing.T, b *Board) {
				placePegs(t, b, Red,
					Peg{X: 5, Y: 5}, Peg{X: 6, Y: 7}, Peg{X: 7, Y: 4})
				if !b.PlaceBarrier(Peg{X: 5, Y: 5}, Peg{X: 6, Y: 7}, Red) {
					t.Fatal("setup: first barrier failed")
				}
			},
			a:     Peg{X: 5, Y: 5},
			c:     Peg{X: 7, Y: 4},
			color: Red,
			want:  true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := New()
			test.setup(t, b)
			before := len(b.Barriers(test.color))
			if got := b.PlaceBarrier(test.a, test.c, test.color); got != test.want {
				t.Fatalf("PlaceBarrier(%v, %v, %v): got %v, want %v",
					test.a, test.c, test.color, got, test.want)
			}
			after := len(b.Barriers(test.color))
			if test.want && after != before+1 {
				t.Errorf("barrier list grew by %d, want 1", after-before)
			}
			if !test.want && after != before {
				t.Errorf("rejected placement changed barrier list: %d -> %d", before, after)
			}
		})
	}
}

func TestRemovePeg(t *testing.T) {
	b := New()
	center := Peg{X: 5, Y: 5}
	placePegs(t, b, Red, center, Peg{X: 6, Y: 7}, Peg{X: 7, Y: 4}, Peg{X: 3, Y: 4})
	for _, other := range []Peg{{X: 6, Y: 7}, {X: 7, Y: 4}, {X: 3, Y: 4}} {
		if !b.PlaceBarrier(center, other, Red) {
			t.Fatalf("setup: barrier %v-%v failed", center, other)
		}
	}

	if b.RemovePeg(center, Black) {
		t.Error("black removed a red peg")
	}
	if b.RemovePeg(Peg{X: 20, Y: 20}, Red) {
		t.Error("removed a peg from an empty cell")
	}

	if !b.RemovePeg(center, Red) {
		t.Fatal("RemovePeg on own peg failed")
	}
	if got := b.At(center); got != None {
		t.Errorf("cell after removal: got %v, want None", got)
	}
	if got := len(b.Barriers(Red)); got != 0 {
		t.Errorf("barriers after removing their shared peg: got %d, want 0", got)
	}
	if got := b.AdjacentPegs(center); len(got) != 0 {
		t.Errorf("AdjacentPegs on emptied cell: got %v, want none", got)
	}
}

func TestRemoveBarrierRoundTrip(t *testing.T) {
	b := New()
	placePegs(t, b, Black, Peg{X: 2, Y: 2}, Peg{X: 3, Y: 4}, Peg{X: 4, Y: 6})
	if !b.PlaceBarrier(Peg{X: 2, Y: 2}, Peg{X: 3, Y: 4}, Black) {
		t.Fatal("setup: first barrier failed")
	}
	if !b.PlaceBarrier(Peg{X: 3, Y: 4}, Peg{X: 4, Y: 6}, Black) {
		t.Fatal("setup: second barrier failed")
	}

	if b.RemoveBarrier(Peg{X: 2, Y: 2}, Peg{X: 3, Y: 4}, Red) {
		t.Error("removed a black barrier as red")
	}
	if b.RemoveBarrier(Peg{X: 10, Y: 10}, Peg{X: 11, Y: 12}, Black) {
		t.Error("removed a barrier which was never placed")
	}

	// swapped endpoint order must still match
	if !b.RemoveBarrier(Peg{X: 3, Y: 4}, Peg{X: 2, Y: 2}, Black) {
		t.Fatal("RemoveBarrier with swapped endpoints failed")
	}
	left := b.Barriers(Black)
	if len(left) != 1 {
		t.Fatalf("barriers left: got %d, want 1", len(left))
	}
	if want := NewBarrier(Peg{X: 3, Y: 4}, Peg{X: 4, Y: 6}); left[0] != want {
		t.Errorf("remaining barrier: got %v, want %v", left[0], want)
	}

	// placing it back restores the prior state
	if !b.PlaceBarrier(Peg{X: 2, Y: 2}, Peg{X: 3, Y: 4}, Black) {
		t.Fatal("re-placing the removed barrier failed")
	}
	if got := len(b.Barriers(Black)); got != 2 {
		t.Errorf("barriers after round trip: got %d, want 2", got)
	}
}

func TestAdjacentPegs(t *testing.T) {
	b := New()
	center := Peg{X: 10, Y: 10}
	placePegs(t, b, Red, center, Peg{X: 11, Y: 12}, Peg{X: 12, Y: 9})
	placePegs(t, b, Black, Peg{X: 8, Y: 9})

	if !b.PlaceBarrier(center, Peg{X: 11, Y: 12}, Red) {
		t.Fatal("setup: first barrier failed")
	}
	if !b.PlaceBarrier(center, Peg{X: 12, Y: 9}, Red) {
		t.Fatal("setup: second barrier failed")
	}

	got := b.AdjacentPegs(center)
	want := map[Peg]bool{
		{X: 11, Y: 12}: true,
		{X: 12, Y: 9}:  true,
	}
	if len(got) != len(want) {
		t.Fatalf("AdjacentPegs: got %v, want %d pegs", got, len(want))
	}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected neighbor %v", p)
		}
	}

	if got := b.AdjacentPegs(Peg{X: 8, Y: 9}); len(got) != 0 {
		t.Errorf("black peg without barriers: got %v, want none", got)
	}
	if got := b.AdjacentPegs(Peg{X: 20, Y: 20}); len(got) != 0 {
		t.Errorf("empty cell: got %v, want none", got)
	}
}

// buildChain places a peg chain for color and links consecutive pegs.
func buildChain(t *testing.T, b *Board, color Player, pegs []Peg) {
	t.Helper()
	placePegs(t, b, color, pegs...)
	for i := 1; i < len(pegs); i++ {
		if !b.PlaceBarrier(pegs[i-1], pegs[i], color) {
			t.Fatalf("setup: barrier %v-%v failed", pegs[i-1], pegs[i])
		}
	}
}

// redLadder spans the board vertically with knight moves: (1,2) steps
// through rows 1,3,...,23, then one (2,1) step onto row 24.
func redLadder() []Peg {
	pegs := make([]Peg, 0, 13)
	x := 5
	for y := 1; y < Size; y += 2 {
		pegs = append(pegs, Peg{X: x, Y: y})
		if x == 5 {
			x = 6
		} else {
			x = 5
		}
	}
	last := pegs[len(pegs)-1]
	return append(pegs, Peg{X: last.X + 2, Y: Size})
}

func TestGameWonRed(t *testing.T) {
	b := New()
	pegs := redLadder()
	placePegs(t, b, Red, pegs...)

	if b.GameWon(Red) {
		t.Fatal("pegs without barriers reported a win")
	}

	for i := 1; i < len(pegs); i++ {
		if b.GameWon(Red) {
			t.Fatalf("win reported with only %d of %d links", i-1, len(pegs)-1)
		}
		if !b.PlaceBarrier(pegs[i-1], pegs[i], Red) {
			t.Fatalf("setup: barrier %v-%v failed", pegs[i-1], pegs[i])
		}
	}

	if !b.GameWon(Red) {
		t.Fatal("completed ladder from y=1 to y=24 not recognized as a win")
	}
	if b.GameWon(Black) {
		t.Error("red ladder won the game for black")
	}

	// pure query: repeated evaluation is stable
	for i := 0; i < 3; i++ {
		if !b.GameWon(Red) {
			t.Fatal("GameWon changed its answer without a mutation")
		}
	}
}

func TestGameWonBlack(t *testing.T) {
	b := New()
	pegs := make([]Peg, 0, 13)
	y := 5
	for x := 1; x < Size; x += 2 {
		pegs = append(pegs, Peg{X: x, Y: y})
		if y == 5 {
			y = 6
		} else {
			y = 5
		}
	}
	last := pegs[len(pegs)-1]
	pegs = append(pegs, Peg{X: Size, Y: last.Y + 2})

	buildChain(t, b, Black, pegs)

	if !b.GameWon(Black) {
		t.Fatal("completed chain from x=1 to x=24 not recognized as a win")
	}
	if b.GameWon(Red) {
		t.Error("black chain won the game for red")
	}
}

func TestGameWonBrokenChain(t *testing.T) {
	b := New()
	pegs := redLadder()
	buildChain(t, b, Red, pegs)

	mid := pegs[len(pegs)/2]
	if !b.RemovePeg(mid, Red) {
		t.Fatal("setup: removing mid peg failed")
	}
	if b.GameWon(Red) {
		t.Error("win reported across a removed peg")
	}
}
