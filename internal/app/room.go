package app

import (
	"fmt"
	"math/rand/v2"

	"bigtwo/internal/domain"

	"github.com/google/uuid"
)

// Room owns the authoritative game aggregate for one table and exposes the operations the
// transport layer calls. A Room is not safe for concurrent use; the caller serializes operations.
type Room struct {
	ID         uuid.UUID
	Game       *domain.Game
	MinPlayers int
}

// Result is the synchronous outcome of a room operation.
type Result struct {
	Success        bool
	Message        string
	RoundOver      bool
	WinnerIdentity string
	Err            error
}

func failed(err error) Result {
	return Result{Message: err.Error(), Err: err}
}

// NewRoom constructs a Room. A nil rng uses a crypto-seeded shuffle source.
func NewRoom(rng *rand.Rand, minPlayers int) *Room {
	if minPlayers < MinPlayersToStartGame {
		minPlayers = MinPlayersToStartGame
	}
	return &Room{
		ID:         uuid.New(),
		Game:       domain.NewGame(rng),
		MinPlayers: minPlayers,
	}
}

// CanSeat reports whether AddPlayer would succeed for identity.
func (r *Room) CanSeat(identity string) bool {
	return r.Game.CanSeat(identity)
}

// IdentityAt returns the identity holding seat, or "" for an empty or out of range seat.
func (r *Room) IdentityAt(seat int) string {
	if seat < 0 || seat >= domain.MaxSeats || r.Game.Seats[seat].Status == domain.SeatEmpty {
		return ""
	}
	return r.Game.Seats[seat].Identity
}

// AddPlayer seats or reconnects identity.
func (r *Room) AddPlayer(identity, displayName string) (Result, []Event) {
	out, err := r.Game.Join(identity, displayName)
	if err != nil {
		return failed(err), nil
	}
	if out.AlreadySeated {
		return Result{Success: true, Message: fmt.Sprintf("already seated at %d", out.Seat)}, nil
	}

	seat := r.Game.Seats[out.Seat]
	events := []Event{{
		Kind: EventPlayerJoined,
		Payload: PlayerJoinedPayload{
			UserID:      identity,
			DisplayName: seat.DisplayName,
			Seat:        out.Seat,
			Reconnected: out.Reconnected,
		},
	}}
	msg := fmt.Sprintf("joined seat %d", out.Seat)
	if out.Reconnected {
		msg = fmt.Sprintf("reconnected to seat %d", out.Seat)
	}
	return Result{Success: true, Message: msg}, events
}

// RemovePlayer marks identity disconnected. It never fails; during a round it may force a pass
// or abort the round.
func (r *Room) RemovePlayer(identity string) []Event {
	out := r.Game.Leave(identity)
	if out.Seat == domain.NoSeat {
		return nil
	}

	events := []Event{{
		Kind:    EventPlayerLeft,
		Payload: PlayerLeftPayload{UserID: identity, Seat: out.Seat},
	}}
	if out.ForcedPass != nil {
		events = append(events, r.passEvents(*out.ForcedPass)...)
		return events
	}
	if out.Aborted {
		events = append(events, abortEvent("not enough connected players"))
	}
	return events
}

// StartGame deals a new round.
func (r *Room) StartGame() (Result, []Event) {
	if r.Game.InProgress() {
		return failed(domain.ErrRoundInProgress), nil
	}
	if r.Game.Seats.ConnectedCount() < r.MinPlayers {
		return failed(domain.ErrNotEnoughPlayers), nil
	}
	if err := r.Game.Start(); err != nil {
		return failed(err), nil
	}

	events := make([]Event, 0, domain.MaxSeats+1)
	var seats []int
	for i := range r.Game.Seats {
		s := &r.Game.Seats[i]
		if !s.HasCards() {
			continue
		}
		seats = append(seats, i)
		events = append(events, Event{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				UserID: s.Identity,
				Seat:   i,
				Hand:   append([]domain.Card(nil), s.Hand...),
			},
			Recipients: []string{s.Identity},
		})
	}
	events = append(events, Event{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			FirstTurnSeat: r.Game.Table.CurrentPlayer,
			Seats:         seats,
		},
	})
	return Result{Success: true}, events
}

// PlayTurn plays the cards named by cardIDs from identity's hand.
func (r *Room) PlayTurn(identity string, cardIDs []string) (Result, []Event) {
	cards, err := domain.ParseCards(cardIDs)
	if err != nil {
		return failed(err), nil
	}
	out, err := r.Game.Play(identity, cards)
	if err != nil {
		return failed(err), nil
	}

	events := []Event{{
		Kind: EventCardPlayed,
		Payload: CardPlayedPayload{
			Seat:         out.Seat,
			Cards:        append([]domain.Card(nil), out.Hand.Cards...),
			HandType:     out.Hand.Type,
			NextTurnSeat: out.NextSeat,
		},
	}}

	res := Result{Success: true}
	switch {
	case out.RoundOver:
		res.RoundOver = true
		res.WinnerIdentity = identity
		events = append(events, r.roundEndedEvent(out.Winner))
	case out.Aborted:
		res.Message = out.Fault.Error()
		events = append(events, abortEvent(out.Fault.Error()))
	}
	return res, events
}

// PassTurn passes identity's turn.
func (r *Room) PassTurn(identity string) (Result, []Event) {
	out, err := r.Game.Pass(identity)
	if err != nil {
		return failed(err), nil
	}
	res := Result{Success: true}
	if out.Aborted {
		res.Message = out.Fault.Error()
	}
	return res, r.passEvents(out)
}

// GetStateForViewer returns the projection for identity.
func (r *Room) GetStateForViewer(identity string) domain.View {
	return r.Game.ViewFor(identity)
}

// GetPublicSummary returns the lobby listing data.
func (r *Room) GetPublicSummary() domain.Summary {
	return r.Game.Summary()
}

func (r *Room) passEvents(out domain.PassOutcome) []Event {
	events := []Event{{
		Kind: EventTurnPassed,
		Payload: TurnPassedPayload{
			Seat:         out.Seat,
			Forced:       out.Forced,
			NextTurnSeat: out.NextSeat,
		},
	}}
	if out.TrickWon {
		events = append(events, Event{
			Kind:    EventTrickWon,
			Payload: TrickWonPayload{LeaderSeat: out.Leader},
		})
	}
	if out.Aborted {
		events = append(events, abortEvent(out.Fault.Error()))
	}
	return events
}

func (r *Room) roundEndedEvent(winner int) Event {
	var scores [domain.MaxSeats]int
	for i := range r.Game.Seats {
		scores[i] = r.Game.Seats[i].Score
	}
	return Event{
		Kind: EventRoundEnded,
		Payload: RoundEndedPayload{
			WinnerSeat:   winner,
			WinnerUserID: r.Game.Seats[winner].Identity,
			Scores:       scores,
		},
	}
}

func abortEvent(reason string) Event {
	return Event{Kind: EventRoundAborted, Payload: RoundAbortedPayload{Reason: reason}}
}
