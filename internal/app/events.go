package app

import "bigtwo/internal/domain"

// EventKind identifies emitted room events for transport dispatch.
type EventKind string

const (
	EventPlayerJoined EventKind = "player_joined"
	EventPlayerLeft   EventKind = "player_left"
	EventGameStarted  EventKind = "game_started"
	EventHandDealt    EventKind = "hand_dealt"
	EventCardPlayed   EventKind = "card_played"
	EventTurnPassed   EventKind = "turn_passed"
	EventTrickWon     EventKind = "trick_won"
	EventRoundEnded   EventKind = "round_ended"
	EventRoundAborted EventKind = "round_aborted"
)

// Event is a room event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // identities; empty means broadcast
}

type PlayerJoinedPayload struct {
	UserID      string
	DisplayName string
	Seat        int
	Reconnected bool
}

type PlayerLeftPayload struct {
	UserID string
	Seat   int
}

type GameStartedPayload struct {
	FirstTurnSeat int
	Seats         []int
}

type HandDealtPayload struct {
	UserID string
	Seat   int
	Hand   []domain.Card
}

type CardPlayedPayload struct {
	Seat         int
	Cards        []domain.Card
	HandType     domain.HandType
	NextTurnSeat int
}

type TurnPassedPayload struct {
	Seat         int
	Forced       bool
	NextTurnSeat int
}

type TrickWonPayload struct {
	LeaderSeat int
}

type RoundEndedPayload struct {
	WinnerSeat   int
	WinnerUserID string
	Scores       [domain.MaxSeats]int
}

type RoundAbortedPayload struct {
	Reason string
}
