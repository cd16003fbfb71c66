package user

import (
	"strings"
	"time"

	"github.com/frahmantamala/cost-manager/internal"
)

// User is an account in the users service. IDs are client-assigned, as in
// the rest of the system.
type User struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	FirstName string `json:"first_name" gorm:"column:first_name;not null"`
	LastName  string `json:"last_name" gorm:"column:last_name;not null"`
	Birthday  string `json:"birthday" gorm:"column:birthday"`
}

func (User) TableName() string {
	return "users"
}

// UserWithTotal is the GET /api/users/{id} response: the user plus the
// all-time sum of their expenses.
type UserWithTotal struct {
	User
	Total float64 `json:"total"`
}

type CreateUserDTO struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Birthday  string `json:"birthday,omitempty"`
}

func (dto *CreateUserDTO) Validate() *internal.AppError {
	if dto.ID < 1 {
		return internal.NewValidationError("id must be a positive integer")
	}
	if strings.TrimSpace(dto.FirstName) == "" {
		return internal.NewValidationError("first_name is required")
	}
	if strings.TrimSpace(dto.LastName) == "" {
		return internal.NewValidationError("last_name is required")
	}
	if dto.Birthday != "" {
		if _, err := time.Parse("2006-01-02", dto.Birthday); err != nil {
			return internal.NewValidationError("birthday is invalid (YYYY-MM-DD)")
		}
	}
	return nil
}
