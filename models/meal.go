package models

import "time"

// Meal types accepted on save. Anything else is rejected; an empty
// type defaults to snack.
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

func ValidMealType(t string) bool {
	switch t {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

// Meal is one logged food-consumption event. The nutrient totals are a
// snapshot computed from the submitted nutrition items at save time and
// are never recomputed afterwards.
type Meal struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index;not null" json:"userId"`
	FoodName      string    `gorm:"not null" json:"foodName"`
	Detected      []string  `gorm:"serializer:json" json:"detected"`
	MealType      string    `gorm:"size:16;not null" json:"mealType"`
	Calories      float64   `json:"calories"`
	Protein       float64   `json:"protein"`
	Carbohydrates float64   `json:"carbohydrates"`
	Fat           float64   `json:"fat"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	Date          time.Time `gorm:"index" json:"date"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}
