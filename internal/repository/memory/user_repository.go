package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/meetsync/meetsync/internal/model"
	"github.com/meetsync/meetsync/internal/repository"
)

type UserRepository struct {
	mu      sync.Mutex
	users   map[string]*model.UserProfile
	byEmail map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:   make(map[string]*model.UserProfile),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepository) Create(_ context.Context, user *model.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return repository.ErrDuplicateEmail
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = cloneUser(user)
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*model.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(user), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*model.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return cloneUser(r.users[id]), nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, id, name, photoURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Name = name
	user.PhotoURL = photoURL
	user.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepository) GetAvailability(_ context.Context, userID string) ([]model.AvailabilityRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	rules := append([]model.AvailabilityRule(nil), user.Availability...)
	sort.Slice(rules, func(i, j int) bool { return rules[i].Weekday < rules[j].Weekday })
	return rules, nil
}

func (r *UserRepository) SaveAvailability(_ context.Context, userID string, rules []model.AvailabilityRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.Availability = append([]model.AvailabilityRule(nil), rules...)
	user.UpdatedAt = time.Now()
	return nil
}

func cloneUser(u *model.UserProfile) *model.UserProfile {
	cp := *u
	cp.Availability = append([]model.AvailabilityRule(nil), u.Availability...)
	return &cp
}
