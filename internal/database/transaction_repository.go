package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"superfamily/internal/models"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// joinedColumns selects the transaction row plus the category and user
// projections the API contract exposes.
const joinedColumns = `
	t.id, t.amount, t.category_id, t.user_id, t.family_id, t.note,
	t.transaction_date, t.transaction_no, t.created_at, t.updated_at,
	c.id, c.name, c.slug, c.type,
	u.id, u.name
`

const joinedFrom = `
	FROM transactions t
	JOIN categories c ON c.id = t.category_id
	JOIN users u ON u.id = t.user_id
`

func scanTransaction(row interface{ Scan(...any) error }) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.ID, &t.Amount, &t.CategoryID, &t.UserID, &t.FamilyID, &t.Note,
		&t.TransactionDate, &t.TransactionNo, &t.CreatedAt, &t.UpdatedAt,
		&t.Category.ID, &t.Category.Name, &t.Category.Slug, &t.Category.Type,
		&t.User.ID, &t.User.Name,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) Create(ctx context.Context, params models.CreateTransactionParams) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (amount, category_id, user_id, family_id, note, transaction_date, transaction_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id string
	err := r.db.QueryRowContext(
		ctx, query,
		params.Amount, params.CategoryID, params.UserID, params.FamilyID,
		params.Note, params.TransactionDate, params.TransactionNo,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	query := `SELECT ` + joinedColumns + joinedFrom + ` WHERE t.id = $1`

	transaction, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return transaction, nil
}

// List returns one page of transactions matching the filter, newest first,
// together with the total row count for pagination metadata.
func (r *TransactionRepository) List(ctx context.Context, filter models.TransactionFilter, limit, offset int) ([]*models.Transaction, int, error) {
	where, args := buildFilter(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM transactions t` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := `SELECT ` + joinedColumns + joinedFrom + where + `
		ORDER BY t.transaction_date DESC, t.created_at DESC
		LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, transaction)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, total, nil
}

func buildFilter(filter models.TransactionFilter) (string, []any) {
	var clauses []string
	var args []any

	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("t.%s = $%d", column, len(args)))
	}

	add("family_id", filter.FamilyID)
	add("user_id", filter.UserID)
	add("category_id", filter.CategoryID)

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *TransactionRepository) Update(ctx context.Context, id string, params models.UpdateTransactionParams) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET amount = COALESCE($2, amount),
		    category_id = COALESCE($3, category_id),
		    note = COALESCE($4, note),
		    transaction_date = COALESCE($5, transaction_date),
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, params.Amount, params.CategoryID, params.Note, params.TransactionDate)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrTransactionNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// StatRows returns the amount and joined category type for every family
// transaction, optionally bounded to [from, to].
func (r *TransactionRepository) StatRows(ctx context.Context, familyID string, from, to *time.Time) ([]models.StatRow, error) {
	query := `
		SELECT t.amount, c.type
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.family_id = $1
	`
	args := []any{familyID}

	if from != nil && to != nil {
		query += ` AND t.transaction_date >= $2 AND t.transaction_date <= $3`
		args = append(args, *from, *to)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query statistics: %w", err)
	}
	defer rows.Close()

	var stats []models.StatRow
	for rows.Next() {
		var row models.StatRow
		if err := rows.Scan(&row.Amount, &row.CategoryType); err != nil {
			return nil, fmt.Errorf("failed to scan statistics row: %w", err)
		}
		stats = append(stats, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statistics: %w", err)
	}

	return stats, nil
}
