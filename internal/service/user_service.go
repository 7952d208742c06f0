package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hijri-users/internal/domain"
	"github.com/prn-tf/hijri-users/internal/hijri"
	"github.com/prn-tf/hijri-users/internal/lock"
	"github.com/prn-tf/hijri-users/internal/metrics"
	"github.com/prn-tf/hijri-users/internal/repository"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100

	seedLockTTL = 30 * time.Second
)

// UserService handles user management operations.
type UserService struct {
	userRepo repository.UserRepository
	cache    repository.Cache
	cacheTTL time.Duration
	locker   lock.Locker
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// Option configures optional UserService collaborators.
type Option func(*UserService)

// WithCache enables read-through caching of GetByID.
func WithCache(cache repository.Cache, ttl time.Duration) Option {
	return func(s *UserService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithLocker sets the locker guarding Seed. Defaults to a no-op locker.
func WithLocker(locker lock.Locker) Option {
	return func(s *UserService) {
		s.locker = locker
	}
}

// WithMetrics records parse, conversion and registration counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *UserService) {
		s.metrics = m
	}
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger, opts ...Option) *UserService {
	s := &UserService{
		userRepo: userRepo,
		locker:   lock.NewNoOpLocker(),
		logger:   logger.With().Str("service", "user").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterUserInput contains the data needed to register a user.
type RegisterUserInput struct {
	Name      string
	BirthDate string
}

// RegisterUserOutput contains the result of registering a user.
type RegisterUserOutput struct {
	User *domain.User
}

// Register validates the input and persists a new user.
// The birth date must match the grammar; whether it converts to a
// Gregorian date is only checked when it is rendered.
func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	name, err := domain.NormalizeName(input.Name)
	if err != nil {
		return nil, err
	}

	birthDate, err := hijri.Parse(input.BirthDate)
	if err != nil {
		s.countParseFailure()
		return nil, fmt.Errorf("%w: %w", ErrInvalidBirthDate, err)
	}

	user := domain.NewUser(name, birthDate)
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to create user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if s.metrics != nil {
		s.metrics.UsersRegistered.Inc()
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("name", user.Name).
		Stringer("birth_date", user.BirthDate).
		Msg("user registered")

	return &RegisterUserOutput{User: user}, nil
}

// GetByID retrieves a user by ID, reading through the cache when configured.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	key := repository.CacheKey{}.UserByID(id)

	if user, ok := s.cachedUser(ctx, key); ok {
		return user, nil
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, notFound(id)
		}
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to get user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.storeUser(ctx, key, user)
	return user, nil
}

// Delete deletes a user and drops any cached copy.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return notFound(id)
		}
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, repository.CacheKey{}.UserByID(id)); err != nil {
			s.logger.Warn().Err(err).Int64("user_id", id).Msg("failed to invalidate cached user")
		}
	}

	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

// ListUsersInput contains pagination options for listing users.
type ListUsersInput struct {
	Limit  int
	Offset int
}

// ListUsersOutput contains the result of listing users.
type ListUsersOutput struct {
	Users      []*domain.User
	TotalCount int64
}

// List returns users with pagination.
func (s *UserService) List(ctx context.Context, input ListUsersInput) (*ListUsersOutput, error) {
	if input.Limit <= 0 {
		input.Limit = defaultListLimit
	}
	if input.Limit > maxListLimit {
		input.Limit = maxListLimit
	}
	if input.Offset < 0 {
		input.Offset = 0
	}

	result, err := s.userRepo.List(ctx, repository.ListOptions{
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return &ListUsersOutput{
		Users:      result.Items,
		TotalCount: result.Total,
	}, nil
}

// RosterEntry is one printable line of the roster.
type RosterEntry struct {
	User      *domain.User
	Gregorian time.Time
}

// Line renders the entry as "<name>, <YYYY-MM-DD>".
func (e RosterEntry) Line() string {
	return e.User.Name + ", " + hijri.FormatISO(e.Gregorian)
}

// SkippedUser is a user whose birth date could not be converted.
type SkippedUser struct {
	User *domain.User
	Err  error
}

// RosterOutput lists every user with a Gregorian birth date, in ID order.
type RosterOutput struct {
	Entries []RosterEntry
	Skipped []SkippedUser
}

// Roster converts every stored birth date. Users whose dates fail conversion
// are reported in Skipped and never replaced by a nearby date.
func (s *UserService) Roster(ctx context.Context) (*RosterOutput, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load users for roster")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	out := &RosterOutput{Entries: make([]RosterEntry, 0, len(users))}
	for _, user := range users {
		g, err := user.BirthDateGregorian()
		if err != nil {
			s.countConversionFailure()
			s.logger.Warn().
				Err(err).
				Int64("user_id", user.ID).
				Stringer("birth_date", user.BirthDate).
				Msg("skipping user with unconvertible birth date")
			out.Skipped = append(out.Skipped, SkippedUser{User: user, Err: err})
			continue
		}
		out.Entries = append(out.Entries, RosterEntry{User: user, Gregorian: g})
	}

	return out, nil
}

// ConvertOutput is a Hijri date with its Gregorian equivalent.
type ConvertOutput struct {
	Hijri     hijri.Date
	Gregorian time.Time
}

// Convert parses input and converts it to a Gregorian date.
func (s *UserService) Convert(input string) (*ConvertOutput, error) {
	d, err := hijri.Parse(input)
	if err != nil {
		s.countParseFailure()
		return nil, fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}

	g, err := d.Gregorian()
	if err != nil {
		s.countConversionFailure()
		return nil, err
	}

	return &ConvertOutput{Hijri: d, Gregorian: g}, nil
}

func (s *UserService) cachedUser(ctx context.Context, key string) (*domain.User, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrCacheMiss) {
			s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return nil, false
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("discarding corrupt cache entry")
		_ = s.cache.Delete(ctx, key)
		return nil, false
	}
	return &user, true
}

func (s *UserService) storeUser(ctx context.Context, key string, user *domain.User) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(user)
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to encode user for cache")
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func notFound(id int64) error {
	return domain.NewDomainError(ErrUserNotFound, "no such id", strconv.FormatInt(id, 10))
}

func (s *UserService) countParseFailure() {
	if s.metrics != nil {
		s.metrics.ParseFailures.Inc()
	}
}

func (s *UserService) countConversionFailure() {
	if s.metrics != nil {
		s.metrics.ConversionFailures.Inc()
	}
}
