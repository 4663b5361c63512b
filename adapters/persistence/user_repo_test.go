package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/namelookup/internal/domain/user"
	"github.com/khoahotran/namelookup/pkg/logger"
)

type recordingQuerier struct {
	queries []string
}

func (q *recordingQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.queries = append(q.queries, sql)
	return nil, errors.New("not connected")
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.queries = append(q.queries, sql)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestPostgresUserRepo_QuotesTableName(t *testing.T) {
	db := &recordingQuerier{}
	repo := NewPostgresUserRepo(db, `users"; DROP TABLE users; --`, logger.NewNop())

	_, err := repo.FindAll(context.Background())
	require.Error(t, err)

	created, err := repo.Save(context.Background(), &user.User{ID: "u1", DisplayName: "Bob", Email: "bob@x.com"})
	require.NoError(t, err)
	assert.True(t, created)

	require.Len(t, db.queries, 2)
	quoted := `"users""; DROP TABLE users; --"`
	assert.Contains(t, db.queries[0], "FROM "+quoted)
	assert.Contains(t, db.queries[1], "INSERT INTO "+quoted)
}

func TestPostgresUserRepo_DefaultTable(t *testing.T) {
	db := &recordingQuerier{}
	repo := NewPostgresUserRepo(db, "", logger.NewNop())

	_, _ = repo.FindAll(context.Background())

	require.Len(t, db.queries, 1)
	assert.Contains(t, db.queries[0], `FROM "users"`)
}
