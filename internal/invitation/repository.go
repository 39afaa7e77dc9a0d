package invitation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkaul/splitr/internal/database"
)

// Repository handles invitation persistence and the placeholder
// reconciliation rewrite.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new invitation repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// IsGroupMember reports whether userID currently belongs to the group.
func (r *Repository) IsGroupMember(ctx context.Context, groupID, userID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM group_members WHERE group_id = $1 AND member_id = $2)`
	if err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// GetByGroupAndEmail returns the pending invitation for email in the
// group, or nil.
func (r *Repository) GetByGroupAndEmail(ctx context.Context, groupID, email string) (*Invitation, error) {
	query := `
		SELECT id, group_id, name, email, placeholder, created_at
		FROM invitations
		WHERE group_id = $1 AND email = $2
	`

	inv := &Invitation{}
	err := r.db.QueryRowContext(ctx, query, groupID, email).Scan(
		&inv.ID, &inv.GroupID, &inv.Name, &inv.Email, &inv.Placeholder, &inv.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	return inv, nil
}

// ListByGroupID returns all pending invitations for a group.
func (r *Repository) ListByGroupID(ctx context.Context, groupID string) ([]*Invitation, error) {
	query := `
		SELECT id, group_id, name, email, placeholder, created_at
		FROM invitations
		WHERE group_id = $1
		ORDER BY created_at
	`

	return r.queryInvitations(ctx, query, groupID)
}

// ListByEmail returns every pending invitation addressed to email,
// across all groups.
func (r *Repository) ListByEmail(ctx context.Context, email string) ([]*Invitation, error) {
	query := `
		SELECT id, group_id, name, email, placeholder, created_at
		FROM invitations
		WHERE email = $1
		ORDER BY created_at
	`

	return r.queryInvitations(ctx, query, email)
}

func (r *Repository) queryInvitations(ctx context.Context, query string, args ...interface{}) ([]*Invitation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var invitations []*Invitation
	for rows.Next() {
		inv := &Invitation{}
		if err := rows.Scan(
			&inv.ID, &inv.GroupID, &inv.Name, &inv.Email, &inv.Placeholder, &inv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}

	return invitations, rows.Err()
}

// CreateWithMembership inserts the invitation and appends its placeholder
// to the group's membership in one transaction, so the placeholder is
// never visible without its invitation record (or vice versa).
func (r *Repository) CreateWithMembership(ctx context.Context, groupID, name, email string) (*Invitation, error) {
	inv := &Invitation{
		ID:          uuid.NewString(),
		GroupID:     groupID,
		Name:        name,
		Email:       email,
		Placeholder: NewPlaceholderID(),
	}

	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO invitations (id, group_id, name, email, placeholder)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at
		`
		if err := tx.QueryRowContext(ctx, query,
			inv.ID, inv.GroupID, inv.Name, inv.Email, inv.Placeholder,
		).Scan(&inv.CreatedAt); err != nil {
			return fmt.Errorf("failed to create invitation: %w", err)
		}

		memberQuery := `
			INSERT INTO group_members (group_id, member_id, position)
			SELECT $1, $2, COALESCE(MAX(position), 0) + 1
			FROM group_members WHERE group_id = $1
		`
		if _, err := tx.ExecContext(ctx, memberQuery, inv.GroupID, inv.Placeholder); err != nil {
			return fmt.Errorf("failed to add placeholder member: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return inv, nil
}

// Reconcile rewrites every reference to the invitation's placeholder id
// to the resolved user id and deletes the invitation, all in a single
// transaction: group membership, expense payer and creator fields, and
// allocation-line participants. A concurrent reader either sees the
// placeholder everywhere or the resolved id everywhere.
func (r *Repository) Reconcile(ctx context.Context, inv *Invitation, resolvedID string) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		queries := []struct {
			name string
			sql  string
		}{
			{"membership", `
				UPDATE group_members SET member_id = $2
				WHERE group_id = $3 AND member_id = $1
				AND NOT EXISTS (
					SELECT 1 FROM group_members WHERE group_id = $3 AND member_id = $2
				)`},
			{"expense payer", `
				UPDATE expenses SET paid_by = $2
				WHERE group_id = $3 AND paid_by = $1`},
			{"expense creator", `
				UPDATE expenses SET created_by = $2
				WHERE group_id = $3 AND created_by = $1`},
			{"allocation lines", `
				UPDATE splits SET user_id = $2
				WHERE user_id = $1 AND expense_id IN (
					SELECT id FROM expenses WHERE group_id = $3
				)`},
		}

		for _, q := range queries {
			if _, err := tx.ExecContext(ctx, q.sql, inv.Placeholder, resolvedID, inv.GroupID); err != nil {
				return fmt.Errorf("failed to rewrite %s: %w", q.name, err)
			}
		}

		// If the resolved user was already a member the placeholder row
		// could not be rewritten above; drop it instead.
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM group_members WHERE group_id = $1 AND member_id = $2`,
			inv.GroupID, inv.Placeholder,
		); err != nil {
			return fmt.Errorf("failed to drop stale placeholder: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM invitations WHERE id = $1`, inv.ID); err != nil {
			return fmt.Errorf("failed to delete invitation: %w", err)
		}

		return nil
	})
}
