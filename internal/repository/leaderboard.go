package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweeper-agent/internal/game"
)

// LeaderboardEntry ranks won sessions by how little the agent had to
// guess, then by playtime.
type LeaderboardEntry struct {
	AgentSessionId string  `json:"agent_session_id"`
	Username       *string `json:"username"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	MineCount      int     `json:"mine_count"`
	Moves          int     `json:"moves"`
	Guesses        int     `json:"guesses"`
	PlaytimeMs     float64 `json:"playtime_ms"`
}

type LeaderboardFilter struct {
	Username *string
	Params   *game.Params
}

func (f LeaderboardFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.Params != nil {
		clauses = append(
			clauses,
			"width = @width",
			"height = @height",
			"mine_count = @mineCount",
		)
		args["width"] = f.Params.Width
		args["height"] = f.Params.Height
		args["mineCount"] = f.Params.MineCount
	}
	return strings.Join(clauses, " AND "), args
}

func (q Queries) GetLeaderboard(
	ctx context.Context, filter LeaderboardFilter,
) ([]LeaderboardEntry, error) {
	query := `
	SELECT
		agent_session_id::text agent_session_id,
		username,
		width,
		height,
		mine_count,
		moves,
		guesses,
		(
			extract('epoch' from ended_at) -
			extract('epoch' from started_at)
		) * 1000 playtime_ms
	FROM agent_session
		LEFT OUTER JOIN player USING (player_id)
	WHERE
		won = true
		AND dead = false
		AND ended_at IS NOT NULL
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY guesses, playtime_ms;"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[LeaderboardEntry])
}
