package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mdarmaan6204/nutri-tracker/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("record already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// MealRepository scopes every operation by the owning user. Listings are
// always ordered by meal date descending.
type MealRepository interface {
	Create(ctx context.Context, meal *models.Meal) error
	ListPage(ctx context.Context, userID uint, offset, limit int) ([]models.Meal, int64, error)
	ListAll(ctx context.Context, userID uint) ([]models.Meal, error)
	ListBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.Meal, error)
	Delete(ctx context.Context, userID, mealID uint) error
}
