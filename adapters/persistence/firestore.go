package persistence

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/khoahotran/namelookup/internal/config"
	"github.com/khoahotran/namelookup/pkg/logger"
)

// NewFirestoreClient connects to the emulator when one is configured and to
// production Firestore otherwise.
func NewFirestoreClient(ctx context.Context, cfg config.Config, log logger.Logger) (*firestore.Client, error) {
	projectID := cfg.Firestore.ProjectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	if host := cfg.Firestore.EmulatorHost; host != "" {
		// the client library only reads the emulator address from the environment
		if err := os.Setenv("FIRESTORE_EMULATOR_HOST", host); err != nil {
			return nil, fmt.Errorf("set emulator host: %w", err)
		}
		client, err := firestore.NewClient(ctx, projectID, option.WithoutAuthentication())
		if err != nil {
			return nil, fmt.Errorf("connect Firestore emulator: %w", err)
		}
		log.Info("Connected to Firestore emulator", zap.String("host", host))
		return client, nil
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("connect Firestore: %w", err)
	}
	log.Info("Connected to Firestore production", zap.String("project_id", projectID))
	return client, nil
}
