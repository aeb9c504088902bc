package domain

// SeatView is the public part of a seat as seen by one viewer.
type SeatView struct {
	Index       int
	Identity    string
	DisplayName string
	Status      SeatStatus
	CardCount   int
	Score       int
	IsTurn      bool
	HasPassed   bool
	IsViewer    bool
}

// View is a per-viewer snapshot. Only the viewer's own hand is revealed; other seats show counts.
type View struct {
	Viewer        int // NoSeat for spectators
	Hand          []Card
	Seats         []SeatView
	LastPlayed    *TablePlay
	TrickStarter  int
	CurrentPlayer int
	PassCount     int
	RoundWinner   int
	Status        RoundStatus

	CanAct                 bool
	CanPass                bool
	CanStart               bool
	MustIncludeOpeningCard bool
}

// Summary is the public lobby listing of a room.
type Summary struct {
	ConnectedCount int
	OpenSeats      int
	MaxSeats       int
	Status         RoundStatus
}

// ViewFor builds the snapshot for identity.
func (g *Game) ViewFor(identity string) View {
	viewer := g.Seats.IndexOf(identity)
	v := View{
		Viewer:        viewer,
		Seats:         make([]SeatView, 0, MaxSeats),
		TrickStarter:  g.Table.TrickStarter,
		CurrentPlayer: g.Table.CurrentPlayer,
		PassCount:     g.Table.PassCount,
		RoundWinner:   g.Table.RoundWinner,
		Status:        g.Table.Status,
		CanStart:      g.CanStart(),
	}

	for i := range g.Seats {
		s := &g.Seats[i]
		v.Seats = append(v.Seats, SeatView{
			Index:       i,
			Identity:    s.Identity,
			DisplayName: s.DisplayName,
			Status:      s.Status,
			CardCount:   len(s.Hand),
			Score:       s.Score,
			IsTurn:      s.IsTurn,
			HasPassed:   s.HasPassed,
			IsViewer:    i == viewer,
		})
	}

	if lp := g.Table.LastPlayed; lp != nil {
		hand := lp.Hand
		hand.Cards = append([]Card(nil), lp.Hand.Cards...)
		v.LastPlayed = &TablePlay{Seat: lp.Seat, Hand: hand}
	}

	if viewer != NoSeat {
		v.Hand = append([]Card(nil), g.Seats[viewer].Hand...)
		SortHand(v.Hand)
		v.CanAct = g.InProgress() && g.Table.CurrentPlayer == viewer && g.Seats[viewer].Connected()
		v.CanPass = v.CanAct && g.Table.LastPlayed != nil
		v.MustIncludeOpeningCard = v.CanAct && g.MustIncludeOpening(viewer)
	}
	return v
}

// CanStart reports whether a new round may be started now.
func (g *Game) CanStart() bool {
	return !g.InProgress() && g.Seats.ConnectedCount() >= MinPlayersToStart
}

// Summary returns the public lobby listing.
func (g *Game) Summary() Summary {
	return Summary{
		ConnectedCount: g.Seats.ConnectedCount(),
		OpenSeats:      g.Seats.OpenCount(),
		MaxSeats:       MaxSeats,
		Status:         g.Table.Status,
	}
}
