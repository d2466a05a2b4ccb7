package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/meetsync/meetsync/internal/model"
	"github.com/meetsync/meetsync/internal/repository"
)

type GroupRepository struct {
	mu     sync.Mutex
	groups map[string]*model.Group
}

func NewGroupRepository() *GroupRepository {
	return &GroupRepository{groups: make(map[string]*model.Group)}
}

func (r *GroupRepository) Create(_ context.Context, group *model.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	group.CreatedAt = time.Now()
	r.groups[group.ID] = cloneGroup(group)
	return nil
}

func (r *GroupRepository) GetByID(_ context.Context, id string) (*model.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := r.groups[id]
	if !ok {
		return nil, nil
	}
	return cloneGroup(group), nil
}

func (r *GroupRepository) ListForUser(_ context.Context, userID string) ([]*model.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Group
	for _, group := range r.groups {
		for _, member := range group.Members {
			if member.UserID == userID {
				out = append(out, cloneGroup(group))
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *GroupRepository) Update(_ context.Context, id, name, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := r.groups[id]
	if !ok {
		return repository.ErrNotFound
	}
	group.Name = name
	group.Description = description
	return nil
}

func (r *GroupRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.groups, id)
	return nil
}

func (r *GroupRepository) AddMember(_ context.Context, groupID, userID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := r.groups[groupID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, member := range group.Members {
		if member.UserID == userID {
			return nil
		}
	}
	group.Members = append(group.Members, model.GroupMember{UserID: userID, Role: role})
	return nil
}

func (r *GroupRepository) RemoveMember(_ context.Context, groupID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := r.groups[groupID]
	if !ok {
		return repository.ErrNotFound
	}
	for i, member := range group.Members {
		if member.UserID == userID {
			group.Members = append(group.Members[:i], group.Members[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *GroupRepository) SetMemberRole(_ context.Context, groupID, userID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := r.groups[groupID]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range group.Members {
		if group.Members[i].UserID == userID {
			group.Members[i].Role = role
			return nil
		}
	}
	return repository.ErrNotFound
}

func cloneGroup(g *model.Group) *model.Group {
	cp := *g
	cp.Members = append([]model.GroupMember(nil), g.Members...)
	return &cp
}
