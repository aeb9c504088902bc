package bot

import (
	"strings"

	"github.com/google/uuid"
)

// IDPrefix marks user IDs that belong to in-process bots rather than Nakama accounts.
const IDPrefix = "bot:"

var displayNames = []string{
	"Dealer Dan",
	"Lucky Lin",
	"Card Shark",
	"Old Tom",
	"Quick Mai",
	"Sly Kim",
}

// Identity is the seat identity and display name a bot joins a room with.
type Identity struct {
	UserID      string
	DisplayName string
}

// NewIdentity returns a fresh bot identity. index picks the display name (mod pool size).
func NewIdentity(index int) Identity {
	if index < 0 {
		index = -index
	}
	return Identity{
		UserID:      IDPrefix + uuid.NewString(),
		DisplayName: displayNames[index%len(displayNames)],
	}
}

// IsBot reports whether the given user ID belongs to a bot.
func IsBot(userID string) bool {
	return strings.HasPrefix(userID, IDPrefix)
}
