package domain

// MaxSeats is the fixed size of the seat arena.
const MaxSeats = 4

// NoSeat marks an unset seat index.
const NoSeat = -1

// SeatStatus is the occupancy state of a slot.
type SeatStatus int

const (
	SeatEmpty SeatStatus = iota
	SeatOccupied
	SeatDisconnected
)

func (s SeatStatus) String() string {
	switch s {
	case SeatOccupied:
		return "occupied"
	case SeatDisconnected:
		return "disconnected"
	default:
		return "empty"
	}
}

// Seat is one fixed slot of the arena.
type Seat struct {
	Identity    string
	DisplayName string
	Status      SeatStatus
	Hand        []Card
	IsTurn      bool
	HasPassed   bool
	Score       int
}

// Connected reports whether the slot holds a connected player.
func (s *Seat) Connected() bool { return s.Status == SeatOccupied }

// HasCards reports whether the seat still holds cards.
func (s *Seat) HasCards() bool { return len(s.Hand) > 0 }

func (s *Seat) resetRound() {
	s.Hand = nil
	s.IsTurn = false
	s.HasPassed = false
}

// Seats is the fixed four-slot arena; the slot index is the stable seat identity.
type Seats [MaxSeats]Seat

// IndexOf returns the slot held by identity or NoSeat.
func (a *Seats) IndexOf(identity string) int {
	if identity == "" {
		return NoSeat
	}
	for i := range a {
		if a[i].Status != SeatEmpty && a[i].Identity == identity {
			return i
		}
	}
	return NoSeat
}

// ConnectedCount returns the number of connected slots.
func (a *Seats) ConnectedCount() int {
	n := 0
	for i := range a {
		if a[i].Connected() {
			n++
		}
	}
	return n
}

// ActiveCount returns the number of connected slots still holding cards.
func (a *Seats) ActiveCount() int {
	n := 0
	for i := range a {
		if a[i].Connected() && a[i].HasCards() {
			n++
		}
	}
	return n
}

// OpenCount returns the number of empty slots.
func (a *Seats) OpenCount() int {
	n := 0
	for i := range a {
		if a[i].Status == SeatEmpty {
			n++
		}
	}
	return n
}

// FirstConnected returns the lowest connected slot index or NoSeat.
func (a *Seats) FirstConnected() int {
	for i := range a {
		if a[i].Connected() {
			return i
		}
	}
	return NoSeat
}

func (a *Seats) firstWithStatus(status SeatStatus) int {
	for i := range a {
		if a[i].Status == status {
			return i
		}
	}
	return NoSeat
}

// seatFor resolves where identity would sit without mutating anything.
// takeover allows claiming a disconnected slot of another identity.
func (a *Seats) seatFor(identity string, takeover bool) (int, error) {
	if i := a.IndexOf(identity); i != NoSeat {
		return i, nil
	}
	if i := a.firstWithStatus(SeatEmpty); i != NoSeat {
		return i, nil
	}
	if takeover {
		if i := a.firstWithStatus(SeatDisconnected); i != NoSeat {
			return i, nil
		}
	}
	return NoSeat, ErrNoSeatAvailable
}

// clearPasses resets per-trick pass flags.
func (a *Seats) clearPasses() {
	for i := range a {
		a[i].HasPassed = false
	}
}

func (a *Seats) setTurn(seat int) {
	for i := range a {
		a[i].IsTurn = i == seat
	}
}
