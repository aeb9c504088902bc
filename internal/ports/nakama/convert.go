package nakama

import (
	"errors"
	"fmt"

	"bigtwo/internal/app"
	"bigtwo/internal/bot"
	"bigtwo/internal/domain"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

var errMissingCards = fmt.Errorf("%w: play request has no cards list", domain.ErrIllegalHand)

var marshalOptions = protojson.MarshalOptions{EmitUnpopulated: true}

// encodeStruct wraps fields in a structpb.Struct and renders it as protobuf JSON.
func encodeStruct(fields map[string]any) ([]byte, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}
	return marshalOptions.Marshal(s)
}

// decodeStruct parses a client payload. An empty payload decodes to an empty struct.
func decodeStruct(data []byte) (*structpb.Struct, error) {
	s := &structpb.Struct{}
	if len(data) == 0 {
		return s, nil
	}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: malformed payload: %v", domain.ErrInvalidAction, err)
	}
	return s, nil
}

// cardIDsFromRequest reads the "cards" list of a play request.
func cardIDsFromRequest(req *structpb.Struct) ([]string, error) {
	list := req.GetFields()["cards"].GetListValue()
	if list == nil {
		return nil, errMissingCards
	}
	ids := make([]string, 0, len(list.GetValues()))
	for _, item := range list.GetValues() {
		s, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("%w: card ids must be strings", domain.ErrIllegalHand)
		}
		ids = append(ids, s.StringValue)
	}
	return ids, nil
}

func cardList(cards []domain.Card) []any {
	out := make([]any, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID())
	}
	return out
}

func intList(values []int) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func tablePlayFields(tp *domain.TablePlay) any {
	if tp == nil {
		return nil
	}
	return map[string]any{
		"seat":  tp.Seat,
		"type":  tp.Hand.Type.String(),
		"cards": cardList(tp.Hand.Cards),
	}
}

// snapshotFields renders a per-viewer projection.
func snapshotFields(state *MatchState, v domain.View) map[string]any {
	seats := make([]any, 0, len(v.Seats))
	for _, s := range v.Seats {
		seats = append(seats, map[string]any{
			"seat":         s.Index,
			"user_id":      s.Identity,
			"display_name": s.DisplayName,
			"status":       s.Status.String(),
			"card_count":   s.CardCount,
			"score":        s.Score,
			"is_turn":      s.IsTurn,
			"has_passed":   s.HasPassed,
			"is_viewer":    s.IsViewer,
			"is_bot":       bot.IsBot(s.Identity),
		})
	}
	return map[string]any{
		"room_id":                   state.Room.ID.String(),
		"tick":                      state.Tick,
		"status":                    string(v.Status),
		"viewer_seat":               v.Viewer,
		"owner_seat":                state.OwnerSeat,
		"hand":                      cardList(v.Hand),
		"seats":                     seats,
		"last_played":               tablePlayFields(v.LastPlayed),
		"trick_starter":             v.TrickStarter,
		"current_seat":              v.CurrentPlayer,
		"pass_count":                v.PassCount,
		"round_winner":              v.RoundWinner,
		"can_act":                   v.CanAct,
		"can_pass":                  v.CanPass,
		"can_start":                 v.CanStart,
		"must_include_opening_card": v.MustIncludeOpeningCard,
		"turn_seconds_remaining":    state.turnSecondsRemaining(),
	}
}

// summaryFields renders the public listing used for the match label and MatchSignal.
func summaryFields(state *MatchState) map[string]any {
	s := state.Room.GetPublicSummary()
	return map[string]any{
		"game":      GameLabel,
		"room_id":   state.Room.ID.String(),
		"open":      s.OpenSeats,
		"connected": s.ConnectedCount,
		"max":       s.MaxSeats,
		"status":    string(s.Status),
	}
}

// eventMessage maps an app event to its op code and payload.
func eventMessage(ev app.Event) (int64, map[string]any, error) {
	switch p := ev.Payload.(type) {
	case app.PlayerJoinedPayload:
		return OpPlayerJoined, map[string]any{
			"user_id":      p.UserID,
			"display_name": p.DisplayName,
			"seat":         p.Seat,
			"reconnected":  p.Reconnected,
		}, nil
	case app.PlayerLeftPayload:
		return OpPlayerLeft, map[string]any{"user_id": p.UserID, "seat": p.Seat}, nil
	case app.GameStartedPayload:
		return OpGameStarted, map[string]any{
			"first_turn_seat": p.FirstTurnSeat,
			"seats":           intList(p.Seats),
		}, nil
	case app.HandDealtPayload:
		return OpHandDealt, map[string]any{"seat": p.Seat, "hand": cardList(p.Hand)}, nil
	case app.CardPlayedPayload:
		return OpCardPlayed, map[string]any{
			"seat":           p.Seat,
			"cards":          cardList(p.Cards),
			"type":           p.HandType.String(),
			"next_turn_seat": p.NextTurnSeat,
		}, nil
	case app.TurnPassedPayload:
		return OpTurnPassed, map[string]any{
			"seat":           p.Seat,
			"forced":         p.Forced,
			"next_turn_seat": p.NextTurnSeat,
		}, nil
	case app.TrickWonPayload:
		return OpTrickWon, map[string]any{"leader_seat": p.LeaderSeat}, nil
	case app.RoundEndedPayload:
		return OpRoundEnded, map[string]any{
			"winner_seat":    p.WinnerSeat,
			"winner_user_id": p.WinnerUserID,
			"scores":         intList(p.Scores[:]),
		}, nil
	case app.RoundAbortedPayload:
		return OpRoundAborted, map[string]any{"reason": p.Reason}, nil
	default:
		return 0, nil, fmt.Errorf("unknown event kind %q", ev.Kind)
	}
}

// errorCode maps an operation error to the code sent to the client.
func errorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrIllegalHand):
		return ErrCodeIllegalHand
	case errors.Is(err, domain.ErrCapacity):
		return ErrCodeCapacity
	case errors.Is(err, domain.ErrInvalidAction):
		return ErrCodeInvalidAction
	default:
		return ErrCodeInternal
	}
}
