package lookup

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/namelookup/internal/domain/user"
	"github.com/khoahotran/namelookup/pkg/apperror"
	"github.com/khoahotran/namelookup/pkg/logger"
	"github.com/khoahotran/namelookup/pkg/metrics"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*user.User)
	return users, args.Error(1)
}

type LookupUseCaseTestSuite struct {
	suite.Suite
	repo    *mockUserRepo
	reg     *prometheus.Registry
	useCase *LookupUseCase
}

func (s *LookupUseCaseTestSuite) SetupTest() {
	s.repo = new(mockUserRepo)
	s.reg = prometheus.NewRegistry()
	s.useCase = NewLookupUseCase(s.repo, logger.NewNop(), metrics.NewLookupMetrics(s.reg))
}

func TestLookupUseCase(t *testing.T) {
	suite.Run(t, new(LookupUseCaseTestSuite))
}

func (s *LookupUseCaseTestSuite) Test_Found_ExactScenario() {
	s.repo.On("FindAll", mock.Anything).Return([]*user.User{
		{ID: "u1", DisplayName: "Bob Smith", Email: "bob@x.com"},
	}, nil).Once()

	res := s.useCase.Execute(context.Background(), LookupInput{DisplayName: "bob smith"})

	s.Equal(OutcomeFound, res.Outcome)
	s.Equal("bob@x.com", res.Email)
	s.Nil(res.Err)
	s.NoError(res.AsError())
	s.True(res.Found())
	s.repo.AssertExpectations(s.T())
}

func (s *LookupUseCaseTestSuite) Test_Found_IsCaseInsensitive() {
	s.repo.On("FindAll", mock.Anything).Return([]*user.User{
		{ID: "u0", DisplayName: "Carol", Email: "carol@x.com"},
		{ID: "u1", DisplayName: "Alice", Email: "alice@x.com"},
	}, nil)

	for _, q := range []string{"alice", "ALICE", "Alice"} {
		res := s.useCase.Execute(context.Background(), LookupInput{DisplayName: q})
		s.Equal(OutcomeFound, res.Outcome, q)
		s.Equal("alice@x.com", res.Email, q)
	}
}

func (s *LookupUseCaseTestSuite) Test_DuplicateDisplayNames_FirstInStoreOrderWins() {
	s.repo.On("FindAll", mock.Anything).Return([]*user.User{
		{ID: "u1", DisplayName: "Sam", Email: "first@x.com"},
		{ID: "u2", DisplayName: "SAM", Email: "second@x.com"},
	}, nil)

	for i := 0; i < 3; i++ {
		res := s.useCase.Execute(context.Background(), LookupInput{DisplayName: "sam"})
		s.Equal("first@x.com", res.Email)
	}
}

func (s *LookupUseCaseTestSuite) Test_EmptyStore_NotFoundMentionsQuery() {
	s.repo.On("FindAll", mock.Anything).Return([]*user.User{}, nil).Once()

	res := s.useCase.Execute(context.Background(), LookupInput{DisplayName: "anyone"})

	s.Equal(OutcomeNotFound, res.Outcome)
	s.Empty(res.Email)
	s.Require().NotNil(res.Err)
	s.ErrorIs(res.AsError(), apperror.ErrNotFound)
	s.Contains(res.Err.Message, "anyone")
	s.Equal(apperror.CodeNotFound, apperror.ToCallableCode(res.AsError()))
}

func (s *LookupUseCaseTestSuite) Test_EmptyInput_InvalidArgumentWithoutTouchingStore() {
	res := s.useCase.Execute(context.Background(), LookupInput{DisplayName: ""})

	s.Equal(OutcomeInvalidArgument, res.Outcome)
	s.ErrorIs(res.AsError(), apperror.ErrInvalidInput)
	s.Equal(apperror.CodeInvalidArgument, apperror.ToCallableCode(res.AsError()))
	s.repo.AssertNotCalled(s.T(), "FindAll", mock.Anything)
}

func (s *LookupUseCaseTestSuite) Test_WhitespaceInput_IsScannedLikeAnyName() {
	s.repo.On("FindAll", mock.Anything).Return([]*user.User{
		{ID: "u1", DisplayName: " ", Email: "space@x.com"},
		{ID: "u2", DisplayName: "Bob", Email: "bob@x.com"},
	}, nil).Times(3)

	res := s.useCase.Execute(context.Background(), LookupInput{DisplayName: " "})
	s.Equal(OutcomeFound, res.Outcome)
	s.Equal("space@x.com", res.Email)

	for _, q := range []string{"   ", "\t"} {
		res = s.useCase.Execute(context.Background(), LookupInput{DisplayName: q})
		s.Equal(OutcomeNotFound, res.Outcome, "query %q", q)
		s.Equal(apperror.CodeNotFound, apperror.ToCallableCode(res.AsError()))
	}
	s.repo.AssertNumberOfCalls(s.T(), "FindAll", 3)
}

func (s *LookupUseCaseTestSuite) Test_StoreFailure_InternalKeepsUnderlyingError() {
	cause := errors.New("dial tcp 10.0.0.5:5432: connection refused")
	s.repo.On("FindAll", mock.Anything).Return(nil, cause).Once()

	res := s.useCase.Execute(context.Background(), LookupInput{DisplayName: "bob"})

	s.Equal(OutcomeInternal, res.Outcome)
	s.ErrorIs(res.AsError(), apperror.ErrInternal)
	s.ErrorIs(res.AsError(), cause)
	s.Equal(cause.Error(), res.Err.Message)
	s.Equal(apperror.CodeInternal, apperror.ToCallableCode(res.AsError()))
}

func (s *LookupUseCaseTestSuite) Test_MalformedRecord_Internal() {
	s.repo.On("FindAll", mock.Anything).Return(nil, user.MalformedRecordError("u9", "displayName")).Once()

	res := s.useCase.Execute(context.Background(), LookupInput{DisplayName: "bob"})

	s.Equal(OutcomeInternal, res.Outcome)
	s.ErrorIs(res.AsError(), user.ErrMalformedRecord)
}

func (s *LookupUseCaseTestSuite) Test_RecordsOutcomeMetrics() {
	s.repo.On("FindAll", mock.Anything).Return([]*user.User{{ID: "u1", DisplayName: "Ann", Email: "ann@x.com"}}, nil)

	s.useCase.Execute(context.Background(), LookupInput{DisplayName: "ann"})
	s.useCase.Execute(context.Background(), LookupInput{DisplayName: "nobody"})
	s.useCase.Execute(context.Background(), LookupInput{DisplayName: ""})

	n, err := testutil.GatherAndCount(s.reg, "namelookup_lookups_total")
	s.Require().NoError(err)
	s.Equal(3, n, "one series per outcome")
}

// Any non-empty name that no record carries must come back NotFound.
func TestLookupUseCase_RandomMissesAreNotFound(t *testing.T) {
	faker := gofakeit.New(42)
	users := make([]*user.User, 0, 50)
	taken := make(map[string]bool)
	for i := 0; i < 50; i++ {
		name := faker.Name()
		taken[name] = true
		users = append(users, &user.User{ID: fmt.Sprintf("u%d", i), DisplayName: name, Email: faker.Email()})
	}

	repo := new(mockUserRepo)
	repo.On("FindAll", mock.Anything).Return(users, nil)
	uc := NewLookupUseCase(repo, logger.NewNop(), nil)

	for i := 0; i < 100; i++ {
		q := faker.Name() + " " + faker.LetterN(6)
		require.False(t, taken[q])
		res := uc.Execute(context.Background(), LookupInput{DisplayName: q})
		assert.Equal(t, OutcomeNotFound, res.Outcome, q)
	}

	for _, u := range users[:10] {
		res := uc.Execute(context.Background(), LookupInput{DisplayName: u.DisplayName})
		assert.Equal(t, OutcomeFound, res.Outcome)
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "found", OutcomeFound.String())
	assert.Equal(t, "not_found", OutcomeNotFound.String())
	assert.Equal(t, "invalid_argument", OutcomeInvalidArgument.String())
	assert.Equal(t, "internal", OutcomeInternal.String())
}
