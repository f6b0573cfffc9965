package pgstore

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/visitlog/core/visit"
)

const columns = `id, user_id, timestamp, session_key, remote_addr, ua_string, hash, created_at, context, device, os, browser`

const insertQuery = `INSERT INTO user_visits (id, user_id, timestamp, session_key, remote_addr, ua_string, hash, context, device, os, browser)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (hash) DO NOTHING
RETURNING created_at`

const byHashQuery = `SELECT ` + columns + ` FROM user_visits WHERE hash = $1`

// buildWhere renders f as a WHERE clause with positional arguments.
// It returns an empty clause when f matches everything.
func buildWhere(f visit.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.UserID != "" {
		add("user_id = $%d", f.UserID)
	}
	if f.SessionKey != "" {
		add("session_key = $%d", f.SessionKey)
	}
	if f.RemoteAddr != "" {
		add("remote_addr = $%d", f.RemoteAddr)
	}
	if !f.From.IsZero() {
		add("timestamp >= $%d", f.From)
	}
	if !f.To.IsZero() {
		add("timestamp < $%d", f.To)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func listQuery(f visit.Filter) (string, []any) {
	where, args := buildWhere(f)
	q := `SELECT ` + columns + ` FROM user_visits` + where + ` ORDER BY timestamp DESC, id`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return q, args
}

func countQuery(f visit.Filter) (string, []any) {
	where, args := buildWhere(f)
	return `SELECT count(*) FROM user_visits` + where, args
}
