package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/meetsync/meetsync/internal/model"
	"github.com/meetsync/meetsync/internal/repository"
	"github.com/meetsync/meetsync/internal/schedule"
)

// UserService manages profiles and availability rule sets.
type UserService struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func NewUserService(users repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// GetProfile fetches a profile by id.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile updates the editable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, photoURL string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters", ErrValidation)
	}
	return s.users.UpdateProfile(ctx, userID, name, photoURL)
}

// GetAvailability returns the user's weekly rule set.
func (s *UserService) GetAvailability(ctx context.Context, userID string) ([]model.AvailabilityRule, error) {
	return s.users.GetAvailability(ctx, userID)
}

// SaveAvailability validates and replaces the user's whole weekly rule set.
// At most one rule per weekday; every window must be well-formed with
// start < end.
func (s *UserService) SaveAvailability(ctx context.Context, userID string, rules []model.AvailabilityRule) error {
	seen := make(map[int]bool, len(rules))
	for _, rule := range rules {
		if rule.Weekday < 0 || rule.Weekday > 6 {
			return fmt.Errorf("%w: weekday %d out of range", ErrValidation, rule.Weekday)
		}
		if seen[rule.Weekday] {
			return fmt.Errorf("%w: duplicate rule for weekday %d", ErrValidation, rule.Weekday)
		}
		seen[rule.Weekday] = true

		for _, window := range rule.Windows {
			start, err := schedule.TimeToMinutes(window.Start)
			if err != nil {
				return err
			}
			end, err := schedule.TimeToMinutes(window.End)
			if err != nil {
				return err
			}
			if end <= start {
				return fmt.Errorf("%w: window %s-%s must end after it starts", ErrValidation, window.Start, window.End)
			}
		}
	}

	if err := s.users.SaveAvailability(ctx, userID, rules); err != nil {
		return err
	}

	s.logger.Info("Availability updated",
		zap.String("user_id", userID),
		zap.Int("rules", len(rules)),
	)

	return nil
}
