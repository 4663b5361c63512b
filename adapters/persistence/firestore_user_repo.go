package persistence

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/khoahotran/namelookup/internal/domain/user"
	"github.com/khoahotran/namelookup/pkg/logger"
)

// Document field names, as written by the web client.
const (
	fieldDisplayName = "displayName"
	fieldEmail       = "email"
	fieldCreatedAt   = "createdAt"
)

type FirestoreUserRepo struct {
	client     *firestore.Client
	collection string
	logger     logger.Logger
}

func NewFirestoreUserRepo(client *firestore.Client, collection string, log logger.Logger) *FirestoreUserRepo {
	if collection == "" {
		collection = "users"
	}
	return &FirestoreUserRepo{client: client, collection: collection, logger: log}
}

// FindAll reads the whole collection ordered by document ID.
func (r *FirestoreUserRepo) FindAll(ctx context.Context) ([]*user.User, error) {
	docs, err := r.client.Collection(r.collection).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("error when read collection %s: %w", r.collection, err)
	}

	users := make([]*user.User, 0, len(docs))
	for _, doc := range docs {
		u, err := decodeUserDocument(doc.Ref.ID, doc.Data())
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	r.logger.Debug("Fetched users", zap.String("collection", r.collection), zap.Int("count", len(users)))
	return users, nil
}

func decodeUserDocument(id string, data map[string]any) (*user.User, error) {
	displayName, ok := data[fieldDisplayName].(string)
	if !ok {
		return nil, user.MalformedRecordError(id, fieldDisplayName)
	}
	email, _ := data[fieldEmail].(string)
	createdAt, _ := data[fieldCreatedAt].(time.Time)

	return &user.User{
		ID:          id,
		DisplayName: displayName,
		Email:       email,
		CreatedAt:   createdAt,
	}, nil
}

func encodeUserDocument(u *user.User) map[string]any {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return map[string]any{
		fieldDisplayName: u.DisplayName,
		fieldEmail:       u.Email,
		fieldCreatedAt:   createdAt,
	}
}

func (r *FirestoreUserRepo) Save(ctx context.Context, u *user.User) (bool, error) {
	_, err := r.client.Collection(r.collection).Doc(u.ID).Create(ctx, encodeUserDocument(u))
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return false, nil
		}
		return false, fmt.Errorf("error when create user document %s: %w", u.ID, err)
	}
	return true, nil
}
