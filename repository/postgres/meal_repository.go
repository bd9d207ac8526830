package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mdarmaan6204/nutri-tracker/models"
	"github.com/mdarmaan6204/nutri-tracker/repository"
)

type MealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{db: db}
}

func (r *MealRepository) Create(ctx context.Context, meal *models.Meal) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

func (r *MealRepository) ListPage(ctx context.Context, userID uint, offset, limit int) ([]models.Meal, int64, error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&models.Meal{}).Where("user_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	meals := []models.Meal{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Offset(offset).
		Limit(limit).
		Find(&meals).Error
	return meals, total, err
}

func (r *MealRepository) ListAll(ctx context.Context, userID uint) ([]models.Meal, error) {
	meals := []models.Meal{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&meals).Error
	return meals, err
}

func (r *MealRepository) ListBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.Meal, error) {
	meals := []models.Meal{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date DESC").
		Find(&meals).Error
	return meals, err
}

// Delete removes a meal by id, scoped to the owning user. A meal that
// belongs to someone else is indistinguishable from a missing one.
func (r *MealRepository) Delete(ctx context.Context, userID, mealID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", mealID, userID).
		Delete(&models.Meal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
