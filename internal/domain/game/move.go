package game

// Move kinds as they travel over the websocket and into the move log.
const (
	MovePlacePeg      = "place_peg"
	MovePlaceBarrier  = "place_barrier"
	MoveRemovePeg     = "remove_peg"
	MoveRemoveBarrier = "remove_barrier"
)

// @name Move
type Move struct {
	Kind  string `json:"kind" bson:"kind"`
	Color string `json:"color" bson:"color"`
	X     int    `json:"x" bson:"x"`
	Y     int    `json:"y" bson:"y"`
	X2    int    `json:"x2,omitempty" bson:"x2,omitempty"`
	Y2    int    `json:"y2,omitempty" bson:"y2,omitempty"`
}

// @name Moves
type Moves struct {
	Moves []Move `json:"moves"`
}
