package postgres

import (
	"context"
	"time"

	"github.com/frahmantamala/cost-manager/internal/expense"
	"gorm.io/gorm"
)

// ExpenseRepository implements the expense.Repository interface using GORM
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create saves a new expense to the database
func (r *ExpenseRepository) Create(ctx context.Context, exp *expense.Expense) error {
	return r.db.WithContext(ctx).Create(exp).Error
}

// FindForPeriod returns a user's expenses with created_at in [from, to).
func (r *ExpenseRepository) FindForPeriod(ctx context.Context, userID int64, from, to time.Time) ([]expense.Expense, error) {
	var expenses []expense.Expense
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Order("created_at ASC, id ASC").
		Find(&expenses).Error
	return expenses, err
}

// SumByUser returns the all-time total for a user, 0 when they have no
// expenses.
func (r *ExpenseRepository) SumByUser(ctx context.Context, userID int64) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&expense.Expense{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(sum), 0)").
		Scan(&total).Error
	return total, err
}
