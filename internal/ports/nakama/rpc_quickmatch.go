package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"bigtwo/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchResponse is the payload returned to clients when requesting a lobby-capable match.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

type matchSummaryRequest struct {
	MatchID string `json:"match_id"`
}

// MatchSummaryResponse carries the public label of a running match.
type MatchSummaryResponse struct {
	MatchID string          `json:"match_id"`
	Size    int32           `json:"size"`
	Summary json.RawMessage `json:"summary"`
}

// quickMatchQuery finds open lobbies of this game.
var quickMatchQuery = fmt.Sprintf("+label.game:%s +label.status:%s +label.open:>=1", GameLabel, domain.StatusLobby)

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcMatchSummary, rpcMatchSummary)
}

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	limit := 10
	authoritative := true
	minSize := 1
	maxSize := domain.MaxSeats - 1

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, quickMatchQuery)
	if err != nil {
		logger.Error("MatchList error: %v", err)
		return "", err
	}

	if len(matches) > 0 {
		return encodeResponse(QuickMatchResponse{MatchID: matches[0].MatchId, IsNew: false})
	}

	// Seat assignment happens in MatchJoin (server-authoritative).
	matchID, err := nk.MatchCreate(ctx, MatchNameBigTwo, map[string]interface{}{})
	if err != nil {
		logger.Error("MatchCreate error: %v", err)
		return "", err
	}
	return encodeResponse(QuickMatchResponse{MatchID: matchID, IsNew: true})
}

func rpcMatchSummary(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req matchSummaryRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil || req.MatchID == "" {
		return "", runtime.NewError("match_id required", 3) // INVALID_ARGUMENT
	}

	match, err := nk.MatchGet(ctx, req.MatchID)
	if err != nil {
		logger.Error("MatchGet error: %v", err)
		return "", runtime.NewError("Internal error", 13) // INTERNAL
	}
	if match == nil {
		return "", runtime.NewError("match not found", 5) // NOT_FOUND
	}

	summary := json.RawMessage(`{}`)
	if label := match.GetLabel().GetValue(); label != "" {
		summary = json.RawMessage(label)
	}
	return encodeResponse(MatchSummaryResponse{
		MatchID: match.GetMatchId(),
		Size:    match.GetSize(),
		Summary: summary,
	})
}

func encodeResponse(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", runtime.NewError("Internal error", 13)
	}
	return string(b), nil
}
