package nakama

import (
	"context"
	"database/sql"
	"fmt"

	"bigtwo/internal/app"
	"bigtwo/internal/bot"
	"bigtwo/internal/config"
	"bigtwo/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

var errNotOwner = fmt.Errorf("%w: only the table owner can start a round", domain.ErrInvalidAction)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Room      *app.Room
	Config    config.GameConfig
	Presences map[string]runtime.Presence // UserId -> Presence for targeted messaging
	Bots      map[string]*bot.Agent
	OwnerSeat int   // first connected human seat, NoSeat when none
	Tick      int64 // current tick of the match loop

	TurnDeadline         int64 // tick at which the current human turn expires; 0 when no timer runs
	BotWaitUntil         int64 // tick when the current bot should act; 0 when not scheduled
	LastSinglePlayerTick int64 // tick when a single human started waiting alone

	label string
}

// NewMatchState builds the state for a new match with the given config.
func NewMatchState(cfg config.GameConfig, tick int64) *MatchState {
	return &MatchState{
		Room:      app.NewRoom(nil, cfg.MinPlayersToStart),
		Config:    cfg,
		Presences: make(map[string]runtime.Presence),
		Bots:      make(map[string]*bot.Agent),
		OwnerSeat: domain.NoSeat,
		Tick:      tick,
	}
}

// humanCount returns the number of connected seats held by humans.
func (ms *MatchState) humanCount() int {
	n := 0
	for i := range ms.Room.Game.Seats {
		s := &ms.Room.Game.Seats[i]
		if s.Connected() && !bot.IsBot(s.Identity) {
			n++
		}
	}
	return n
}

// findBotSeat returns the first connected bot seat or NoSeat.
func (ms *MatchState) findBotSeat() int {
	for i := range ms.Room.Game.Seats {
		s := &ms.Room.Game.Seats[i]
		if s.Connected() && bot.IsBot(s.Identity) {
			return i
		}
	}
	return domain.NoSeat
}

func (ms *MatchState) findFirstHumanSeat() int {
	for i := range ms.Room.Game.Seats {
		s := &ms.Room.Game.Seats[i]
		if s.Connected() && !bot.IsBot(s.Identity) {
			return i
		}
	}
	return domain.NoSeat
}

func (ms *MatchState) turnSecondsRemaining() int64 {
	if ms.TurnDeadline == 0 || ms.Tick >= ms.TurnDeadline {
		return 0
	}
	return (ms.TurnDeadline - ms.Tick) / TickRate
}

func (ms *MatchState) currentIdentity() string {
	if !ms.Room.Game.InProgress() {
		return ""
	}
	return ms.Room.IdentityAt(ms.Room.Game.Table.CurrentPlayer)
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := config.LoadGameConfig(ConfigPath); err != nil {
		logger.Warn("MatchInit: Could not load game config, using defaults: %v", err)
	}
	cfg := config.GetGameConfig()
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		cfg.ApplyEnv(env)
	}

	state := NewMatchState(cfg, 0)
	label, err := encodeStruct(summaryFields(state))
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	state.label = string(label)

	logger.WithFields(map[string]interface{}{
		"room_id":      state.Room.ID.String(),
		"bots_enabled": cfg.BotsEnabled,
		"turn_seconds": cfg.TurnDurationSeconds,
	}).Debug("MatchInit: Match created.")
	return state, TickRate, state.label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.Room.CanSeat(presence.GetUserId()) {
		return state, true, ""
	}
	// A bot seat can be handed to a human before the round starts.
	if !matchState.Room.Game.InProgress() && matchState.findBotSeat() != domain.NoSeat {
		return state, true, ""
	}
	return state, false, "Match full"
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		log := logger.WithFields(map[string]interface{}{"room_id": matchState.Room.ID.String(), "user_id": userID})
		matchState.Presences[userID] = p

		if !matchState.Room.CanSeat(userID) && !matchState.Room.Game.InProgress() {
			if seat := matchState.findBotSeat(); seat != domain.NoSeat {
				botID := matchState.Room.IdentityAt(seat)
				log.Info("MatchJoin: Replacing bot %s in seat %d", botID, seat)
				delete(matchState.Bots, botID)
				mh.dispatchEvents(matchState, dispatcher, logger, matchState.Room.RemovePlayer(botID))
			}
		}

		res, events := matchState.Room.AddPlayer(userID, p.GetUsername())
		if !res.Success {
			log.Warn("MatchJoin: User joined but could not be seated: %v", res.Err)
			mh.sendError(matchState, dispatcher, logger, userID, res.Err)
			continue
		}
		log.Debug("MatchJoin: %s", res.Message)
		mh.dispatchEvents(matchState, dispatcher, logger, events)
	}

	mh.updateOwner(matchState, logger)
	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshots(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)
		events := matchState.Room.RemovePlayer(userID)
		logger.Debug("MatchLeave: User %s left.", userID)
		mh.afterCommit(matchState, dispatcher, logger, events)
	}

	if matchState.humanCount() == 0 {
		logger.Info("MatchLeave: Terminating match %s with no humans.", matchState.Room.ID)
		return nil
	}

	mh.updateOwner(matchState, logger)
	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshots(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(matchState, dispatcher, logger, msg)
		case OpPlayCards:
			mh.handlePlayCards(matchState, dispatcher, logger, msg)
		case OpPassTurn:
			mh.handlePassTurn(matchState, dispatcher, logger, msg)
		case OpRequestState:
			mh.sendSnapshot(matchState, dispatcher, logger, msg.GetUserId())
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.processTurnDeadline(matchState, dispatcher, logger)
	if matchState.Config.BotsEnabled {
		mh.processBots(matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.Room.Game.Seats.IndexOf(senderID)
	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d)", senderID, senderSeat, state.OwnerSeat)

	if senderSeat != state.OwnerSeat {
		mh.sendError(state, dispatcher, logger, senderID, errNotOwner)
		return
	}

	res, events := state.Room.StartGame()
	if !res.Success {
		logger.Warn("StartGame: Failed to start round: %v", res.Err)
		mh.sendError(state, dispatcher, logger, senderID, res.Err)
		return
	}
	mh.afterCommit(state, dispatcher, logger, events)
	logger.Info("StartGame: Round started with %d players.", state.Room.Game.Seats.ConnectedCount())
}

func (mh *matchHandler) handlePlayCards(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	request, err := decodeStruct(msg.GetData())
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}
	ids, err := cardIDsFromRequest(request)
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	res, events := state.Room.PlayTurn(senderID, ids)
	if !res.Success {
		logger.Warn("handlePlayCards: User %s failed to play %v: %v", senderID, ids, res.Err)
		mh.sendError(state, dispatcher, logger, senderID, res.Err)
		return
	}
	mh.afterCommit(state, dispatcher, logger, events)
}

func (mh *matchHandler) handlePassTurn(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	res, events := state.Room.PassTurn(senderID)
	if !res.Success {
		logger.Warn("handlePassTurn: User %s failed to pass: %v", senderID, res.Err)
		mh.sendError(state, dispatcher, logger, senderID, res.Err)
		return
	}
	mh.afterCommit(state, dispatcher, logger, events)
}

// afterCommit publishes the events of a committed operation and refreshes timers, label and
// per-viewer snapshots.
func (mh *matchHandler) afterCommit(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	if len(events) == 0 {
		return
	}
	for _, ev := range events {
		if p, ok := ev.Payload.(app.RoundAbortedPayload); ok {
			logger.WithField("room_id", state.Room.ID.String()).Warn("Round aborted: %s", p.Reason)
		}
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.resetTurnTimer(state)
	state.BotWaitUntil = 0
	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastSnapshots(state, dispatcher, logger)
}

func (mh *matchHandler) dispatchEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.dispatchEvent(state, dispatcher, logger, ev)
	}
}

// dispatchEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) dispatchEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, fields, err := eventMessage(ev)
	if err != nil {
		logger.Warn("dispatchEvent: %v", err)
		return
	}
	data, err := encodeStruct(fields)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// Intended recipients that are not connected (e.g. bots) must not turn into a broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
		logger.Error("dispatchEvent: Failed to send %v: %v", ev.Kind, err)
	}
}

// sendError sends an error payload to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, cause error) {
	data, err := encodeStruct(map[string]any{
		"code":    errorCode(cause),
		"message": cause.Error(),
	})
	if err != nil {
		logger.Error("Failed to marshal error payload: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}
	if err := dispatcher.BroadcastMessage(OpGameError, data, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("sendError: %v", err)
	}
}

// sendSnapshot sends userID its own projection of the room.
func (mh *matchHandler) sendSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	data, err := encodeStruct(snapshotFields(state, state.Room.GetStateForViewer(userID)))
	if err != nil {
		logger.Error("sendSnapshot: Failed to marshal snapshot for %s: %v", userID, err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpStateSnapshot, data, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("sendSnapshot: %v", err)
	}
}

func (mh *matchHandler) broadcastSnapshots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	for userID := range state.Presences {
		mh.sendSnapshot(state, dispatcher, logger, userID)
	}
}

// updateOwner keeps the owner seat on a connected human.
func (mh *matchHandler) updateOwner(state *MatchState, logger runtime.Logger) {
	seat := state.OwnerSeat
	if seat != domain.NoSeat {
		s := &state.Room.Game.Seats[seat]
		if s.Connected() && !bot.IsBot(s.Identity) {
			return
		}
	}
	state.OwnerSeat = state.findFirstHumanSeat()
	if state.OwnerSeat != domain.NoSeat {
		logger.Debug("Owner set to human seat %d.", state.OwnerSeat)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := encodeStruct(summaryFields(state))
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	label := string(labelBytes)
	if label == state.label {
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
		return
	}
	state.label = label
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminating with %d grace seconds", graceSeconds)
	return state
}

// MatchSignal answers any signal with the public summary of the room.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, ""
	}
	summary, err := encodeStruct(summaryFields(matchState))
	if err != nil {
		logger.Error("MatchSignal: Failed to marshal summary: %v", err)
		return state, ""
	}
	return state, string(summary)
}
