package registration

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/namelookup/adapters/event"
	"github.com/khoahotran/namelookup/internal/application/service"
	"github.com/khoahotran/namelookup/internal/domain/user"
	"github.com/khoahotran/namelookup/pkg/apperror"
	"github.com/khoahotran/namelookup/pkg/logger"
)

type RegisterUserUseCase struct {
	publisher service.UserEventPublisher
	logger    logger.Logger
	now       func() time.Time
}

func NewRegisterUserUseCase(pub service.UserEventPublisher, log logger.Logger) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		publisher: pub,
		logger:    log,
		now:       time.Now,
	}
}

type RegisterInput struct {
	ID          string
	DisplayName string
	Email       string
}

type RegisterOutput struct {
	User *user.User
}

var tracer = otel.Tracer("registration_usecase")

// Execute validates the registration and hands it to the user event stream.
// The record is written to the store by the worker, not here.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()

	u := &user.User{
		ID:          input.ID,
		DisplayName: user.NormalizeDisplayName(input.DisplayName),
		Email:       user.NormalizeEmail(input.Email),
		CreatedAt:   uc.now().UTC(),
	}
	if u.DisplayName == "" || u.Email == "" {
		err := apperror.NewInvalidInput("displayName and email are required", nil)
		span.RecordError(err)
		return nil, err
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	span.SetAttributes(attribute.String("user_id", u.ID))

	err := uc.publisher.PublishUserEvent(ctx, event.UserEventPayload{
		EventType:   event.EventUserRegistered,
		UserID:      u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		OccurredAt:  u.CreatedAt,
	})
	if err != nil {
		uc.logger.Error("Failed to publish user event", err, zap.String("user_id", u.ID))
		appErr := apperror.NewInternal("failed to publish user registration", err)
		span.RecordError(appErr)
		return nil, appErr
	}

	uc.logger.Info("User registration accepted", zap.String("user_id", u.ID))
	return &RegisterOutput{User: u}, nil
}
