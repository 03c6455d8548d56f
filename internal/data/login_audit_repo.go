package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prefeitura-sp/coresso-portal/internal/data/pgxutil"
	apperrors "github.com/prefeitura-sp/coresso-portal/internal/errors"
	"github.com/prefeitura-sp/coresso-portal/internal/ports"
)

// LoginAuditRecord is a persisted authorization outcome row.
type LoginAuditRecord struct {
	ID          string    `db:"id"`
	Login       string    `db:"login"`
	Outcome     string    `db:"outcome"`
	OperationID string    `db:"operation_id"`
	CreatedAt   time.Time `db:"created_at"`
}

// LoginAuditRepo implements the ports.LoginAuditor interface using PostgreSQL.
// Rows never contain the submitted password.
type LoginAuditRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewLoginAuditRepo creates a new LoginAuditRepo with the given database connection.
func NewLoginAuditRepo(db *sql.DB) *LoginAuditRepo {
	return &LoginAuditRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

var _ ports.LoginAuditor = (*LoginAuditRepo)(nil)

const loginAuditColumns = `id, login, outcome, operation_id, created_at`

// Record inserts one authorization outcome row.
func (r *LoginAuditRepo) Record(ctx context.Context, entry ports.LoginAudit) error {
	login := strings.TrimSpace(entry.Login)
	if login == "" {
		return ErrAuditLoginRequired
	}
	if strings.TrimSpace(entry.Outcome) == "" {
		return ErrAuditOutcomeRequired
	}

	at := entry.At
	if at.IsZero() {
		at = r.timeProvider.Now()
	}

	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, execErr := conn.Exec(ctx, `
			INSERT INTO login_audits (id, login, outcome, operation_id, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.NewString(), login, entry.Outcome, entry.OperationID, at.UTC())
		return execErr
	})
	if err != nil {
		return apperrors.MapDBError(fmt.Errorf("record login audit: %w", err))
	}
	return nil
}

// RecentByLogin returns the most recent outcomes recorded for one login,
// newest first.
func (r *LoginAuditRepo) RecentByLogin(ctx context.Context, login string, limit int) ([]*LoginAuditRecord, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, ErrAuditLoginRequired
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var out []*LoginAuditRecord
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, `
			SELECT `+loginAuditColumns+`
			FROM login_audits
			WHERE login = $1
			ORDER BY created_at DESC
			LIMIT $2
		`, login, limit)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		out, collectErr = pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[LoginAuditRecord])
		return collectErr
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("list login audits: %w", err))
	}
	return out, nil
}

// PruneBefore deletes audit rows older than the cutoff and reports how many
// rows were removed.
func (r *LoginAuditRepo) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, execErr := conn.Exec(ctx, `DELETE FROM login_audits WHERE created_at < $1`, cutoff.UTC())
		if execErr != nil {
			return execErr
		}
		removed = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, apperrors.MapDBError(fmt.Errorf("prune login audits: %w", err))
	}
	return removed, nil
}
