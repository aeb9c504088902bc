package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"
	// RpcMatchSummary returns the public summary of a running match.
	RpcMatchSummary = "match_summary"

	// MatchNameBigTwo is the authoritative match handler name registered with Nakama.
	MatchNameBigTwo = "bigtwo_match"

	// GameLabel is the value of the "game" key in every match label.
	GameLabel = "bigtwo"

	// ConfigPath is where MatchInit looks for the game config, relative to the Nakama data dir.
	ConfigPath = "data/game_config.json"

	// TickRate is the number of match loop ticks per second; timers are counted in ticks.
	TickRate = 1
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame    int64 = 1
	OpPlayCards    int64 = 2
	OpPassTurn     int64 = 3
	OpRequestState int64 = 4

	// Server -> Client events
	OpPlayerJoined  int64 = 101
	OpPlayerLeft    int64 = 102
	OpGameStarted   int64 = 103
	OpHandDealt     int64 = 104 // send privately
	OpCardPlayed    int64 = 105
	OpTurnPassed    int64 = 106
	OpTrickWon      int64 = 107
	OpRoundEnded    int64 = 108
	OpRoundAborted  int64 = 109
	OpStateSnapshot int64 = 110 // send privately, one per viewer
	OpGameError     int64 = 111
)

// Error codes carried by OpGameError payloads.
const (
	ErrCodeInvalidAction = 400
	ErrCodeIllegalHand   = 422
	ErrCodeCapacity      = 409
	ErrCodeInternal      = 500
)
