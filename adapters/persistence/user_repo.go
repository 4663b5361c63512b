package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/khoahotran/namelookup/internal/domain/user"
	"github.com/khoahotran/namelookup/pkg/logger"
)

// pgxQuerier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PostgresUserRepo struct {
	db     pgxQuerier
	table  string // quoted identifier
	logger logger.Logger
}

// NewPostgresUserRepo reads and writes the given table, "users" when empty.
func NewPostgresUserRepo(db pgxQuerier, table string, log logger.Logger) *PostgresUserRepo {
	if table == "" {
		table = "users"
	}
	return &PostgresUserRepo{db: db, table: pgx.Identifier{table}.Sanitize(), logger: log}
}

func (r *PostgresUserRepo) FindAll(ctx context.Context) ([]*user.User, error) {
	query, args, err := psql.
		Select("id", "display_name", "email", "created_at").
		From(r.table).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build users query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error when query users: %w", err)
	}

	users, err := scanUsers(rows)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Fetched users", zap.String("table", r.table), zap.Int("count", len(users)))
	return users, nil
}

func scanUsers(rows pgx.Rows) ([]*user.User, error) {
	defer rows.Close()

	users := make([]*user.User, 0)
	for rows.Next() {
		var (
			id          string
			displayName sql.NullString
			email       sql.NullString
			createdAt   time.Time
		)
		if err := rows.Scan(&id, &displayName, &email, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row during iteration: %w", err)
		}
		if !displayName.Valid {
			return nil, user.MalformedRecordError(id, "displayName")
		}
		users = append(users, &user.User{
			ID:          id,
			DisplayName: displayName.String,
			Email:       email.String,
			CreatedAt:   createdAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error when iterate users: %w", err)
	}
	return users, nil
}

func (r *PostgresUserRepo) Save(ctx context.Context, u *user.User) (bool, error) {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query, args, err := psql.
		Insert(r.table).
		Columns("id", "display_name", "email", "created_at").
		Values(u.ID, u.DisplayName, u.Email, createdAt).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build insert user query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("error when insert user: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
