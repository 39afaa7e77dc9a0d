package group

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mkaul/splitr/internal/database"
)

// Repository handles group and membership persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a group with the creator as its first member, in one
// transaction so the at-least-one-member invariant holds from the start.
func (r *Repository) Create(ctx context.Context, name, creatorID string) (*Group, error) {
	g := &Group{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedBy: creatorID,
		MemberIDs: []string{creatorID},
	}

	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO groups (id, name, created_by)
			VALUES ($1, $2, $3)
			RETURNING created_at
		`
		if err := tx.QueryRowContext(ctx, query, g.ID, g.Name, g.CreatedBy).Scan(&g.CreatedAt); err != nil {
			return fmt.Errorf("failed to create group: %w", err)
		}

		memberQuery := `INSERT INTO group_members (group_id, member_id, position) VALUES ($1, $2, 1)`
		if _, err := tx.ExecContext(ctx, memberQuery, g.ID, g.CreatedBy); err != nil {
			return fmt.Errorf("failed to add creator membership: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return g, nil
}

// GetByIDForMember retrieves a group with its ordered member ids, but
// only if userID belongs to it. A missing group and a membership miss
// both return nil.
func (r *Repository) GetByIDForMember(ctx context.Context, id, userID string) (*Group, error) {
	query := `
		SELECT g.id, g.name, g.created_by, g.created_at
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id AND gm.member_id = $2
		WHERE g.id = $1
	`

	g := &Group{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&g.ID, &g.Name, &g.CreatedBy, &g.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if err := r.loadMemberIDs(ctx, []*Group{g}); err != nil {
		return nil, err
	}

	return g, nil
}

// ListByMemberID retrieves every group userID belongs to, newest first,
// with member ids loaded.
func (r *Repository) ListByMemberID(ctx context.Context, userID string) ([]*Group, error) {
	query := `
		SELECT g.id, g.name, g.created_by, g.created_at
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.member_id = $1
		ORDER BY g.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		g := &Group{}
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedBy, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadMemberIDs(ctx, groups); err != nil {
		return nil, err
	}

	return groups, nil
}

func (r *Repository) loadMemberIDs(ctx context.Context, groups []*Group) error {
	if len(groups) == 0 {
		return nil
	}

	byID := make(map[string]*Group, len(groups))
	ids := make([]string, len(groups))
	for i, g := range groups {
		byID[g.ID] = g
		ids[i] = g.ID
	}

	query := `
		SELECT group_id, member_id FROM group_members
		WHERE group_id = ANY($1)
		ORDER BY group_id, position
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load memberships: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID, memberID string
		if err := rows.Scan(&groupID, &memberID); err != nil {
			return fmt.Errorf("failed to scan membership: %w", err)
		}
		byID[groupID].MemberIDs = append(byID[groupID].MemberIDs, memberID)
	}

	return rows.Err()
}

// Delete removes a group; expenses, allocation lines and invitations
// cascade at the schema level.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}
