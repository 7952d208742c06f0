package service

import (
	"context"
	"fmt"

	"github.com/prn-tf/hijri-users/internal/lock"
)

// SeedUser is a user to load by Seed.
type SeedUser struct {
	Name      string
	BirthDate string
}

// DefaultSeed is the demo data set.
var DefaultSeed = []SeedUser{
	{Name: "Ali", BirthDate: "1438-01-02"},
	{Name: "Wael", BirthDate: "1438-02-22"},
	{Name: "Mostafa", BirthDate: "1439-01-02"},
	{Name: "Mortada", BirthDate: "1444-01-16"},
	{Name: "Ibrahim", BirthDate: "1436-01-05"},
}

// SeedOutput reports what Seed did.
type SeedOutput struct {
	// Created is the number of users inserted.
	Created int

	// Skipped is true when users already existed or another instance held
	// the seed lock.
	Skipped bool
}

// Seed registers users when the store is empty. It is a no-op otherwise,
// so it is safe to call on every start.
func (s *UserService) Seed(ctx context.Context, users []SeedUser) (*SeedOutput, error) {
	seedLock := lock.NewLock(s.locker, lock.Keys.Seed())
	acquired, err := seedLock.Acquire(ctx, seedLockTTL, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if !acquired {
		s.logger.Info().Msg("seed already running elsewhere, skipping")
		return &SeedOutput{Skipped: true}, nil
	}
	defer func() {
		if err := seedLock.Release(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("failed to release seed lock")
		}
	}()

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if count > 0 {
		s.logger.Debug().Int64("existing", count).Msg("users present, skipping seed")
		return &SeedOutput{Skipped: true}, nil
	}

	out := &SeedOutput{}
	for _, u := range users {
		if _, err := s.Register(ctx, RegisterUserInput{Name: u.Name, BirthDate: u.BirthDate}); err != nil {
			return out, fmt.Errorf("seed user %q: %w", u.Name, err)
		}
		out.Created++
	}

	s.logger.Info().Int("created", out.Created).Msg("seeded users")
	return out, nil
}
