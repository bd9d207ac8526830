package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/mdarmaan6204/nutri-tracker/models"
	"github.com/mdarmaan6204/nutri-tracker/repository"
)

// ErrMealNotFound is returned when a meal id does not exist for the user.
var ErrMealNotFound = errors.New("meal not found")

const (
	defaultPage  = 1
	defaultLimit = 10
)

// NutritionItem is one entry of the per-item nutrition list submitted
// with a meal. Fields absent from the request JSON decode to zero and
// contribute nothing to the totals.
type NutritionItem struct {
	Name          string  `json:"name,omitempty"`
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
}

type SaveMealInput struct {
	FoodName  string
	Detected  []string
	Nutrition []NutritionItem
	MealType  string
	Date      time.Time
	ImageURL  string
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type NutrientTotals struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
}

type DailySummary struct {
	Date   string         `json:"date"`
	Meals  []models.Meal  `json:"meals"`
	Totals NutrientTotals `json:"totals"`
}

type DayBucket struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	MealCount     int     `json:"mealCount"`
}

type MonthlyTotals struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	AvgCalories   float64 `json:"avgCalories"`
	DaysLogged    int     `json:"daysLogged"`
}

type MonthlySummary struct {
	Year          int                  `json:"year"`
	Month         int                  `json:"month"`
	DailyData     map[string]DayBucket `json:"dailyData"`
	MonthlyTotals MonthlyTotals        `json:"monthlyTotals"`
}

type MealService struct {
	meals repository.MealRepository
}

func NewMealService(meals repository.MealRepository) *MealService {
	return &MealService{meals: meals}
}

// SaveMeal validates the submission, sums the nutrition items into the
// meal's total fields and persists the record. Totals are a write-time
// snapshot; nothing recomputes them later.
func (s *MealService) SaveMeal(ctx context.Context, userID uint, in SaveMealInput) (*models.Meal, error) {
	if in.FoodName == "" {
		return nil, errValidation("foodName is required")
	}
	if in.Nutrition == nil {
		return nil, errValidation("nutrition must be a list")
	}

	mealType := in.MealType
	if mealType == "" {
		mealType = models.MealTypeSnack
	}
	if !models.ValidMealType(mealType) {
		return nil, errValidation("mealType must be breakfast, lunch, dinner or snack")
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	detected := in.Detected
	if detected == nil {
		detected = []string{}
	}

	meal := &models.Meal{
		UserID:   userID,
		FoodName: in.FoodName,
		Detected: detected,
		MealType: mealType,
		ImageURL: in.ImageURL,
		Date:     date,
	}
	for _, item := range in.Nutrition {
		meal.Calories += item.Calories
		meal.Protein += item.Protein
		meal.Carbohydrates += item.Carbohydrates
		meal.Fat += item.Fat
	}

	if err := s.meals.Create(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

// ListMeals returns one page of the user's meals, newest first. Page and
// limit fall back to 1/10 when absent or unparseable.
func (s *MealService) ListMeals(ctx context.Context, userID uint, page, limit int) ([]models.Meal, Pagination, error) {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	meals, total, err := s.meals.ListPage(ctx, userID, (page-1)*limit, limit)
	if err != nil {
		return nil, Pagination{}, err
	}

	return meals, Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *MealService) ListAllMeals(ctx context.Context, userID uint) ([]models.Meal, error) {
	return s.meals.ListAll(ctx, userID)
}

func (s *MealService) DeleteMeal(ctx context.Context, userID, mealID uint) error {
	err := s.meals.Delete(ctx, userID, mealID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMealNotFound
	}
	return err
}

// DailySummary sums the nutrient fields across meals whose timestamp
// falls within the given calendar day, local server time.
func (s *MealService) DailySummary(ctx context.Context, userID uint, date time.Time) (*DailySummary, error) {
	meals, err := s.meals.ListBetween(ctx, userID, dayStart(date), dayEnd(date))
	if err != nil {
		return nil, err
	}

	out := &DailySummary{Date: date.Format("2006-01-02"), Meals: meals}
	for _, m := range meals {
		out.Totals.Calories += m.Calories
		out.Totals.Protein += m.Protein
		out.Totals.Carbohydrates += m.Carbohydrates
		out.Totals.Fat += m.Fat
	}
	return out, nil
}

// MonthlySummary buckets the month's meals by calendar day. The average
// calories figure divides by the number of distinct days that have at
// least one meal, not by the days in the month.
func (s *MealService) MonthlySummary(ctx context.Context, userID uint, year, month int) (*MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, errValidation("month must be between 1 and 12")
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)

	meals, err := s.meals.ListBetween(ctx, userID, first, dayEnd(last))
	if err != nil {
		return nil, err
	}

	out := &MonthlySummary{
		Year:      year,
		Month:     month,
		DailyData: map[string]DayBucket{},
	}
	for _, m := range meals {
		key := m.Date.Format("2006-01-02")
		bucket := out.DailyData[key]
		bucket.Calories += m.Calories
		bucket.Protein += m.Protein
		bucket.Carbohydrates += m.Carbohydrates
		bucket.Fat += m.Fat
		bucket.MealCount++
		out.DailyData[key] = bucket

		out.MonthlyTotals.Calories += m.Calories
		out.MonthlyTotals.Protein += m.Protein
		out.MonthlyTotals.Carbohydrates += m.Carbohydrates
		out.MonthlyTotals.Fat += m.Fat
	}

	out.MonthlyTotals.DaysLogged = len(out.DailyData)
	if out.MonthlyTotals.DaysLogged > 0 {
		out.MonthlyTotals.AvgCalories = round2(out.MonthlyTotals.Calories / float64(out.MonthlyTotals.DaysLogged))
	}
	return out, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
