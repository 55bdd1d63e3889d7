package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// AgentSession is one agent playthrough. State holds a gob-encoded
// solver snapshot (board, agent knowledge, move log).
type AgentSession struct {
	AgentSessionId int64
	PlayerId       *int64
	Width          int
	Height         int
	MineCount      int
	Dead           bool
	Won            bool
	Moves          int
	Guesses        int
	State          []byte
	StartedAt      pgtype.Timestamptz
	EndedAt        pgtype.Timestamptz
}

type CreateAgentSessionParams struct {
	PlayerId  *int64
	Width     int
	Height    int
	MineCount int
	Dead      bool
	Won       bool
	Moves     int
	Guesses   int
	State     []byte
}

func (q Queries) CreateAgentSession(
	ctx context.Context, params CreateAgentSessionParams,
) (*AgentSession, error) {
	args := pgx.NamedArgs{
		"width":      params.Width,
		"height":     params.Height,
		"mine_count": params.MineCount,
		"dead":       params.Dead,
		"won":        params.Won,
		"moves":      params.Moves,
		"guesses":    params.Guesses,
		"state":      params.State,
	}
	if params.PlayerId != nil {
		args["player_id"] = *params.PlayerId
	}
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO agent_session (
			player_id, width, height, mine_count, dead, won, moves, guesses, state
		)
		VALUES (
			@player_id, @width, @height, @mine_count, @dead, @won, @moves, @guesses, @state
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[AgentSession])
}

func (q Queries) FetchAgentSession(
	ctx context.Context, agentSessionId int64,
) (*AgentSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM agent_session WHERE agent_session_id = $1",
		agentSessionId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[AgentSession])
}

type UpdateAgentSessionParams struct {
	Dead    *bool
	Won     *bool
	Moves   *int
	Guesses *int
	EndedAt *time.Time
	State   *[]byte
}

func (p UpdateAgentSessionParams) SetClause() (string, pgx.NamedArgs) {
	parts := make([]string, 0)
	args := pgx.NamedArgs{}
	if p.Dead != nil {
		parts = append(parts, "dead = @dead")
		args["dead"] = *p.Dead
	}
	if p.Won != nil {
		parts = append(parts, "won = @won")
		args["won"] = *p.Won
	}
	if p.Moves != nil {
		parts = append(parts, "moves = @moves")
		args["moves"] = *p.Moves
	}
	if p.Guesses != nil {
		parts = append(parts, "guesses = @guesses")
		args["guesses"] = *p.Guesses
	}
	if p.EndedAt != nil {
		parts = append(parts, "ended_at = @ended_at")
		args["ended_at"] = *p.EndedAt
	}
	if p.State != nil {
		parts = append(parts, "state = @state")
		args["state"] = *p.State
	}
	return strings.Join(parts, ", "), args
}

func (q Queries) UpdateAgentSession(
	ctx context.Context, agentSessionId int64, params UpdateAgentSessionParams,
) (*AgentSession, error) {
	setClause, args := params.SetClause()
	if setClause == "" {
		return q.FetchAgentSession(ctx, agentSessionId)
	}
	args["agent_session_id"] = agentSessionId
	rows, _ := q.db.Query(
		ctx,
		`UPDATE agent_session
		SET `+setClause+`
		WHERE agent_session_id = @agent_session_id
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[AgentSession])
}
