package app

// MinPlayersToStartGame defines the minimum number of connected seats required to start a round.
// Rooms may raise it through configuration but never lower it.
const MinPlayersToStartGame = 2
