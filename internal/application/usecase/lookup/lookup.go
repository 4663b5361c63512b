package lookup

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/khoahotran/namelookup/internal/domain/user"
	"github.com/khoahotran/namelookup/pkg/apperror"
	"github.com/khoahotran/namelookup/pkg/logger"
	"github.com/khoahotran/namelookup/pkg/metrics"
)

type Outcome int

const (
	OutcomeFound Outcome = iota
	OutcomeNotFound
	OutcomeInvalidArgument
	OutcomeInternal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeInvalidArgument:
		return "invalid_argument"
	default:
		return "internal"
	}
}

// Result is the outcome of one lookup. Email is set only for OutcomeFound;
// Err is an *apperror.AppError for every other outcome.
type Result struct {
	Outcome Outcome
	Email   string
	Err     *apperror.AppError
}

func (r Result) Found() bool {
	return r.Outcome == OutcomeFound
}

// AsError returns nil for a found result and the classified error otherwise.
func (r Result) AsError() error {
	if r.Err == nil {
		return nil
	}
	return r.Err
}

type LookupInput struct {
	DisplayName string
}

type LookupUseCase struct {
	userRepo user.Repository
	logger   logger.Logger
	metrics  *metrics.LookupMetrics
}

func NewLookupUseCase(repo user.Repository, log logger.Logger, m *metrics.LookupMetrics) *LookupUseCase {
	return &LookupUseCase{
		userRepo: repo,
		logger:   log,
		metrics:  m,
	}
}

var tracer = otel.Tracer("lookup_usecase")

// Execute fetches every user record and returns the email of the first one
// whose display name equals the input, ignoring case. Records are scanned in
// the repository's order, so with duplicate display names the earliest record
// in that order wins.
func (uc *LookupUseCase) Execute(ctx context.Context, input LookupInput) Result {
	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()

	start := time.Now()
	res := uc.lookup(ctx, input.DisplayName)
	uc.metrics.Observe(res.Outcome.String(), time.Since(start))

	span.SetAttributes(attribute.String("lookup.outcome", res.Outcome.String()))
	if res.Outcome == OutcomeInternal {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Message)
	}
	return res
}

func (uc *LookupUseCase) lookup(ctx context.Context, displayName string) Result {
	if displayName == "" {
		return Result{
			Outcome: OutcomeInvalidArgument,
			Err: apperror.NewAppError(
				apperror.ErrInvalidInput,
				"The function must be called with one argument 'displayName' containing the display name to look up.",
				"displayName is required",
				nil,
			),
		}
	}

	users, err := uc.userRepo.FindAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to fetch users", err, zap.String("display_name", displayName))
		return Result{
			Outcome: OutcomeInternal,
			Err:     apperror.NewAppError(apperror.ErrInternal, err.Error(), err.Error(), err),
		}
	}
	uc.metrics.ObserveScanned(len(users))

	for _, u := range users {
		if u.MatchesDisplayName(displayName) {
			uc.logger.Debug("Display name resolved", zap.String("display_name", displayName), zap.String("user_id", u.ID))
			return Result{Outcome: OutcomeFound, Email: u.Email}
		}
	}

	uc.logger.Debug("Display name not found", zap.String("display_name", displayName), zap.Int("scanned", len(users)))
	return Result{
		Outcome: OutcomeNotFound,
		Err: apperror.NewAppError(
			apperror.ErrNotFound,
			fmt.Sprintf("User with display name %s not found.", displayName),
			displayName,
			nil,
		),
	}
}
