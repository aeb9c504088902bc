package bot

import "bigtwo/internal/domain"

// Move is the decision made by a bot.
type Move struct {
	Pass  bool
	Cards []domain.Card
}

// Brain picks a move from the legal candidates. moves is ordered weakest first and may be empty.
type Brain interface {
	Choose(view domain.View, moves []domain.Classification) Move
}

// LowestBrain always plays the weakest legal hand and passes only when nothing beats the table.
type LowestBrain struct{}

func (LowestBrain) Choose(view domain.View, moves []domain.Classification) Move {
	if len(moves) == 0 {
		return Move{Pass: true}
	}
	return Move{Cards: append([]domain.Card(nil), moves[0].Cards...)}
}

// Agent is an autonomous seat holder.
type Agent struct {
	ID    string
	Name  string
	Brain Brain
}

// NewAgent creates an agent with the default brain.
func NewAgent(id Identity) *Agent {
	return &Agent{ID: id.UserID, Name: id.DisplayName, Brain: LowestBrain{}}
}

// Play decides the agent's move from its own projection of the room. An agent that cannot act
// passes.
func (a *Agent) Play(view domain.View) Move {
	if !view.CanAct {
		return Move{Pass: true}
	}
	move := a.Brain.Choose(view, LegalMoves(view))
	if move.Pass && !view.CanPass {
		// Leading always has a legal single; fall back to it if the brain declined.
		return ForcedLead(view)
	}
	return move
}

// ForcedLead returns the weakest hand the viewer can lead with. It is used when a player has to
// act and cannot pass.
func ForcedLead(view domain.View) Move {
	moves := LegalMoves(view)
	if len(moves) == 0 {
		return Move{Pass: true}
	}
	return Move{Cards: append([]domain.Card(nil), moves[0].Cards...)}
}
