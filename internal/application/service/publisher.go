package service

import (
	"context"

	"github.com/khoahotran/namelookup/adapters/event"
)

type UserEventPublisher interface {
	PublishUserEvent(ctx context.Context, payload event.UserEventPayload) error
}
