package registration

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/namelookup/adapters/event"
	"github.com/khoahotran/namelookup/internal/domain/user"
	"github.com/khoahotran/namelookup/pkg/logger"
)

type ProcessUserEventUseCase struct {
	userWriter user.Writer
	logger     logger.Logger
}

func NewProcessUserEventUseCase(w user.Writer, log logger.Logger) *ProcessUserEventUseCase {
	return &ProcessUserEventUseCase{userWriter: w, logger: log}
}

type ProcessOutput struct {
	Skipped bool
	Created bool
}

func (uc *ProcessUserEventUseCase) Execute(ctx context.Context, payload event.UserEventPayload) (*ProcessOutput, error) {
	if payload.EventType != event.EventUserRegistered {
		uc.logger.Warn("Unknown user event type, skip.", zap.String("event_type", string(payload.EventType)))
		return &ProcessOutput{Skipped: true}, nil
	}
	if payload.UserID == "" || payload.DisplayName == "" {
		uc.logger.Warn("Incomplete user event, skip.", zap.String("user_id", payload.UserID))
		return &ProcessOutput{Skipped: true}, nil
	}

	u := &user.User{
		ID:          payload.UserID,
		DisplayName: payload.DisplayName,
		Email:       payload.Email,
		CreatedAt:   payload.OccurredAt,
	}
	created, err := uc.userWriter.Save(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("save user %s failed: %w", u.ID, err)
	}

	if created {
		uc.logger.Info("User added", zap.String("user_id", u.ID))
	} else {
		uc.logger.Info("User already exists, left unchanged", zap.String("user_id", u.ID))
	}
	return &ProcessOutput{Created: created}, nil
}
