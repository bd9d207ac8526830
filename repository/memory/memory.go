// Package memory provides in-memory repository implementations used by
// unit tests. Behavior mirrors the postgres adapters: listings ordered by
// date descending, deletes scoped by owner.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mdarmaan6204/nutri-tracker/models"
	"github.com/mdarmaan6204/nutri-tracker/repository"
)

type UserRepository struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{nextID: 1, users: map[uint]models.User{}}
}

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := u
	return &out, nil
}

// Delete removes a user record. Only tests exercise this; the API has no
// user-deletion operation.
func (r *UserRepository) Delete(_ context.Context, id uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

type MealRepository struct {
	mu     sync.Mutex
	nextID uint
	meals  map[uint]models.Meal
}

func NewMealRepository() *MealRepository {
	return &MealRepository{nextID: 1, meals: map[uint]models.Meal{}}
}

func (r *MealRepository) Create(_ context.Context, meal *models.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	meal.ID = r.nextID
	r.nextID++
	meal.CreatedAt = time.Now()
	meal.UpdatedAt = meal.CreatedAt
	r.meals[meal.ID] = *meal
	return nil
}

func (r *MealRepository) owned(userID uint) []models.Meal {
	out := []models.Meal{}
	for _, m := range r.meals {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID > out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func (r *MealRepository) ListPage(_ context.Context, userID uint, offset, limit int) ([]models.Meal, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.owned(userID)
	total := int64(len(all))
	if offset >= len(all) {
		return []models.Meal{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *MealRepository) ListAll(_ context.Context, userID uint) ([]models.Meal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.owned(userID), nil
}

func (r *MealRepository) ListBetween(_ context.Context, userID uint, from, to time.Time) ([]models.Meal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Meal{}
	for _, m := range r.owned(userID) {
		if !m.Date.Before(from) && !m.Date.After(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MealRepository) Delete(_ context.Context, userID, mealID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meals[mealID]
	if !ok || m.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.meals, mealID)
	return nil
}
