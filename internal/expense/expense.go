package expense

import (
	"strings"
	"time"

	"github.com/frahmantamala/cost-manager/internal"
)

// Expense is a single immutable cost record. Records are only ever
// inserted; nothing in the system updates or deletes them.
type Expense struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      int64     `json:"userid" gorm:"column:user_id;not null;index"`
	Sum         float64   `json:"sum" gorm:"column:sum;not null"`
	Category    string    `json:"category" gorm:"column:category;not null"`
	Description string    `json:"description" gorm:"column:description;not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;type:date;not null"`
}

func (Expense) TableName() string {
	return "expenses"
}

// date layouts accepted for client-supplied createdAt
var createdAtLayouts = []string{"2006-01-02", "2006/01/02"}

// CreateExpenseDTO is the /api/add request payload. CreatedAt is optional
// and defaults to the server clock.
type CreateExpenseDTO struct {
	UserID      int64   `json:"userid"`
	Sum         float64 `json:"sum"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

// Validate checks required fields and normalizes the category.
func (dto *CreateExpenseDTO) Validate() *internal.AppError {
	if dto.UserID < 1 {
		return internal.NewValidationError("userid must be a positive integer")
	}
	if dto.Sum <= 0 {
		return internal.NewValidationError("sum must be greater than 0")
	}
	dto.Category = strings.ToLower(strings.TrimSpace(dto.Category))
	if dto.Category == "" {
		return internal.NewValidationError("category is required")
	}
	if strings.TrimSpace(dto.Description) == "" {
		return internal.NewValidationError("description is required")
	}
	return nil
}

// ParseCreatedAt resolves the record date. An empty value falls back to
// now; anything else must be a real calendar date in YYYY-MM-DD or
// YYYY/MM/DD form (time.Parse rejects out-of-range days like 2024-02-30).
func (dto *CreateExpenseDTO) ParseCreatedAt(now time.Time) (time.Time, *internal.AppError) {
	raw := strings.TrimSpace(dto.CreatedAt)
	if raw == "" {
		return now, nil
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, internal.NewValidationError("createdAt is invalid (YYYY-MM-DD)")
}
