package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/mkaul/splitr/internal/database"
)

// Repository handles expense and allocation-line persistence. Writes
// always commit an expense together with all of its lines, or nothing.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetGroupMemberIDs returns the group's member ids in insertion order,
// or nil if the group does not exist.
func (r *Repository) GetGroupMemberIDs(ctx context.Context, groupID string) ([]string, error) {
	query := `
		SELECT member_id FROM group_members
		WHERE group_id = $1
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// IsGroupMember reports whether userID currently belongs to the group
func (r *Repository) IsGroupMember(ctx context.Context, groupID, userID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM group_members WHERE group_id = $1 AND member_id = $2)`
	if err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// CreateWithLines inserts the expense and all of its allocation lines in
// a single transaction.
func (r *Repository) CreateWithLines(ctx context.Context, e *Expense) (*Expense, error) {
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO expenses (id, group_id, name, description, amount_paise, paid_by, created_by, split_type)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING created_at
		`
		if err := tx.QueryRowContext(ctx, query,
			e.ID, e.GroupID, e.Name, e.Description, int64(e.Amount), e.PaidBy, e.CreatedBy, e.SplitType,
		).Scan(&e.CreatedAt); err != nil {
			return fmt.Errorf("failed to create expense: %w", err)
		}

		return insertLines(ctx, tx, e)
	})
	if err != nil {
		return nil, err
	}

	return e, nil
}

// UpdateWithLines rewrites the expense and replaces all of its
// allocation lines in a single transaction. CreatedBy is never touched.
func (r *Repository) UpdateWithLines(ctx context.Context, e *Expense) (*Expense, error) {
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			UPDATE expenses
			SET name = $2, description = $3, amount_paise = $4, paid_by = $5, split_type = $6
			WHERE id = $1
		`
		if _, err := tx.ExecContext(ctx, query,
			e.ID, e.Name, e.Description, int64(e.Amount), e.PaidBy, e.SplitType,
		); err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM splits WHERE expense_id = $1`, e.ID); err != nil {
			return fmt.Errorf("failed to clear allocation lines: %w", err)
		}

		return insertLines(ctx, tx, e)
	})
	if err != nil {
		return nil, err
	}

	return e, nil
}

func insertLines(ctx context.Context, tx *sql.Tx, e *Expense) error {
	query := `
		INSERT INTO splits (expense_id, user_id, amount_paise, percentage)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for _, l := range e.Lines {
		l.ExpenseID = e.ID
		if err := tx.QueryRowContext(ctx, query,
			e.ID, l.UserID, int64(l.Amount), l.Percentage,
		).Scan(&l.ID); err != nil {
			return fmt.Errorf("failed to create allocation line: %w", err)
		}
	}
	return nil
}

// GetByID retrieves an expense with its allocation lines
func (r *Repository) GetByID(ctx context.Context, id string) (*Expense, error) {
	query := `
		SELECT id, group_id, name, description, amount_paise, paid_by, created_by, split_type, created_at
		FROM expenses
		WHERE id = $1
	`

	e := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.GroupID, &e.Name, &e.Description, &e.Amount,
		&e.PaidBy, &e.CreatedBy, &e.SplitType, &e.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := r.loadLines(ctx, []*Expense{e}); err != nil {
		return nil, err
	}

	return e, nil
}

// ListByGroupID retrieves a page of a group's expenses, newest first,
// with allocation lines loaded.
func (r *Repository) ListByGroupID(ctx context.Context, groupID string, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT id, group_id, name, description, amount_paise, paid_by, created_by, split_type, created_at
		FROM expenses
		WHERE group_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	expenses, err := r.queryExpenses(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return expenses, total, nil
}

// ListAllByGroupID retrieves every expense of a group with allocation
// lines loaded. Balance and settlement computation always run over the
// full ledger, never a page.
func (r *Repository) ListAllByGroupID(ctx context.Context, groupID string) ([]*Expense, error) {
	query := `
		SELECT id, group_id, name, description, amount_paise, paid_by, created_by, split_type, created_at
		FROM expenses
		WHERE group_id = $1
		ORDER BY created_at DESC
	`

	return r.queryExpenses(ctx, query, groupID)
}

func (r *Repository) queryExpenses(ctx context.Context, query string, args ...interface{}) ([]*Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e := &Expense{}
		if err := rows.Scan(
			&e.ID, &e.GroupID, &e.Name, &e.Description, &e.Amount,
			&e.PaidBy, &e.CreatedBy, &e.SplitType, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadLines(ctx, expenses); err != nil {
		return nil, err
	}

	return expenses, nil
}

func (r *Repository) loadLines(ctx context.Context, expenses []*Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	byID := make(map[string]*Expense, len(expenses))
	ids := make([]string, len(expenses))
	for i, e := range expenses {
		byID[e.ID] = e
		ids[i] = e.ID
	}

	query := `
		SELECT id, expense_id, user_id, amount_paise, percentage
		FROM splits
		WHERE expense_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load allocation lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		l := &Line{}
		if err := rows.Scan(&l.ID, &l.ExpenseID, &l.UserID, &l.Amount, &l.Percentage); err != nil {
			return fmt.Errorf("failed to scan allocation line: %w", err)
		}
		byID[l.ExpenseID].Lines = append(byID[l.ExpenseID].Lines, l)
	}

	return rows.Err()
}

// Delete removes an expense; allocation lines cascade
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}
