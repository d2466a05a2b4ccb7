package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meetsync/meetsync/internal/model"
	"github.com/meetsync/meetsync/internal/repository"
)

type GroupRepository struct {
	base
}

func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{base{pool: pool}}
}

// Create inserts a group together with its initial members.
func (r *GroupRepository) Create(ctx context.Context, group *model.Group) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(
		ctx,
		`INSERT INTO groups (id, name, description, created_by) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		group.ID, group.Name, group.Description, group.CreatedBy,
	).Scan(&group.CreatedAt)
	if err != nil {
		return fmt.Errorf("create group: %w", err)
	}

	for _, member := range group.Members {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO group_members (group_id, user_id, role) VALUES ($1, $2, $3)`,
			group.ID, member.UserID, member.Role,
		)
		if err != nil {
			return fmt.Errorf("add initial member: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByID fetches a group with members. Returns nil when absent.
func (r *GroupRepository) GetByID(ctx context.Context, id string) (*model.Group, error) {
	var group model.Group
	err := r.pool.QueryRow(
		ctx,
		`SELECT id, name, description, created_by, created_at FROM groups WHERE id = $1`,
		id,
	).Scan(&group.ID, &group.Name, &group.Description, &group.CreatedBy, &group.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group: %w", err)
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT user_id, role FROM group_members WHERE group_id = $1 ORDER BY user_id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("get group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var member model.GroupMember
		if err := rows.Scan(&member.UserID, &member.Role); err != nil {
			return nil, fmt.Errorf("scan group member: %w", err)
		}
		group.Members = append(group.Members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group members: %w", err)
	}

	return &group, nil
}

// ListForUser returns the groups the user belongs to.
func (r *GroupRepository) ListForUser(ctx context.Context, userID string) ([]*model.Group, error) {
	query := `
		SELECT g.id, g.name, g.description, g.created_by, g.created_at
		FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE m.user_id = $1
		ORDER BY g.created_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list groups for user: %w", err)
	}
	defer rows.Close()

	var groups []*model.Group
	for rows.Next() {
		var group model.Group
		if err := rows.Scan(&group.ID, &group.Name, &group.Description, &group.CreatedBy, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, &group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}

	return groups, nil
}

// Update renames a group and replaces its description.
func (r *GroupRepository) Update(ctx context.Context, id, name, description string) error {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE groups SET name = $2, description = $3 WHERE id = $1`,
		id, name, description,
	)
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a group; memberships go with it via ON DELETE CASCADE.
func (r *GroupRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddMember adds a user to a group. Re-adding keeps the existing role.
func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID, role string) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO group_members (group_id, user_id, role) VALUES ($1, $2, $3)
		 ON CONFLICT (group_id, user_id) DO NOTHING`,
		groupID, userID, role,
	)
	if err != nil {
		return fmt.Errorf("add group member: %w", err)
	}
	return nil
}

// RemoveMember removes a user from a group.
func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, userID string) error {
	tag, err := r.pool.Exec(
		ctx,
		`DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`,
		groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("remove group member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetMemberRole changes a member's role within a group.
func (r *GroupRepository) SetMemberRole(ctx context.Context, groupID, userID, role string) error {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE group_members SET role = $3 WHERE group_id = $1 AND user_id = $2`,
		groupID, userID, role,
	)
	if err != nil {
		return fmt.Errorf("set member role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
