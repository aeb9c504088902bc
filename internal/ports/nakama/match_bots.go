package nakama

import (
	"math/rand/v2"

	"bigtwo/internal/bot"
	"bigtwo/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// resetTurnTimer starts the deadline for the current turn when a human holds it.
func (mh *matchHandler) resetTurnTimer(state *MatchState) {
	state.TurnDeadline = 0
	current := state.currentIdentity()
	if current == "" || bot.IsBot(current) || state.Config.TurnDurationSeconds <= 0 {
		return
	}
	state.TurnDeadline = state.Tick + int64(state.Config.TurnDurationSeconds*TickRate)
}

// processTurnDeadline acts for a human whose turn expired: a pass when passing is allowed,
// otherwise the weakest legal lead.
func (mh *matchHandler) processTurnDeadline(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.TurnDeadline == 0 || state.Tick < state.TurnDeadline {
		return
	}
	state.TurnDeadline = 0

	userID := state.currentIdentity()
	if userID == "" || bot.IsBot(userID) {
		return
	}
	view := state.Room.GetStateForViewer(userID)
	move := bot.Move{Pass: true}
	if !view.CanPass {
		move = bot.ForcedLead(view)
	}
	logger.Info("processTurnDeadline: Turn expired for %s (seat %d), pass=%t", userID, view.Viewer, move.Pass)
	mh.applyMove(state, dispatcher, logger, userID, move)
}

func (mh *matchHandler) applyMove(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, move bot.Move) {
	var err error
	if move.Pass {
		res, events := state.Room.PassTurn(userID)
		err = res.Err
		if res.Success {
			mh.afterCommit(state, dispatcher, logger, events)
		}
	} else {
		res, events := state.Room.PlayTurn(userID, domain.CardIDs(move.Cards))
		err = res.Err
		if res.Success {
			mh.afterCommit(state, dispatcher, logger, events)
		}
	}
	if err != nil {
		logger.Error("applyMove: Move for %s rejected: %v", userID, err)
	}
}

func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill lobby with bots if there's only one human player after delay
	if !state.Room.Game.InProgress() {
		if state.humanCount() == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}
			if state.Tick-state.LastSinglePlayerTick >= int64(state.Config.BotAutoFillDelaySeconds*TickRate) {
				mh.fillWithBots(state, dispatcher, logger)
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
		return
	}

	// 2. Handle bot turns in-game
	userID := state.currentIdentity()
	if !bot.IsBot(userID) {
		state.BotWaitUntil = 0
		return
	}
	if state.BotWaitUntil == 0 {
		minDelay, maxDelay := state.Config.BotMinDelaySeconds, state.Config.BotMaxDelaySeconds
		delay := minDelay
		if maxDelay > minDelay {
			delay += rand.IntN(maxDelay - minDelay + 1)
		}
		state.BotWaitUntil = state.Tick + int64(delay*TickRate)
		logger.Debug("processBots: Bot %s will act at tick %d (current %d)", userID, state.BotWaitUntil, state.Tick)
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, ok := state.Bots[userID]
	if !ok {
		seat := state.Room.Game.Seats.IndexOf(userID)
		agent = bot.NewAgent(bot.Identity{UserID: userID, DisplayName: state.Room.Game.Seats[seat].DisplayName})
		state.Bots[userID] = agent
	}
	mh.applyMove(state, dispatcher, logger, userID, agent.Play(state.Room.GetStateForViewer(userID)))
}

// fillWithBots seats a bot in every empty or disconnected seat.
func (mh *matchHandler) fillWithBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	added := 0
	for i := 0; i < domain.MaxSeats; i++ {
		identity := bot.NewIdentity(len(state.Bots) + i)
		if !state.Room.CanSeat(identity.UserID) {
			break
		}
		res, events := state.Room.AddPlayer(identity.UserID, identity.DisplayName)
		if !res.Success {
			break
		}
		state.Bots[identity.UserID] = bot.NewAgent(identity)
		mh.dispatchEvents(state, dispatcher, logger, events)
		logger.Info("processBots: Added bot %s (%s)", identity.DisplayName, identity.UserID)
		added++
	}
	if added > 0 {
		mh.updateLabel(state, dispatcher, logger)
		mh.broadcastSnapshots(state, dispatcher, logger)
	}
}
