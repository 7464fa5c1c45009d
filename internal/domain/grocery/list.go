// Package grocery contains the domain types for meal plans and the grocery
// lists derived from them. Ingredient aggregation happens backend-side; the
// client consumes the resulting ordered item list.
package grocery

import (
	"strings"
	"time"
)

// DateRange is the meal-planning period a grocery list covers. Start and End
// are display strings echoed by the backend; Days is the inclusive span.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days,omitempty"`
}

// List is a grocery list: ordered ingredient strings aggregated from the
// recipes of a meal plan. ID is assigned by the backend when saved.
type List struct {
	ID        string    `json:"id,omitempty"`
	Items     []string  `json:"grocery_list"`
	MealPlan  []string  `json:"meal_plan"`
	DateRange DateRange `json:"date_range"`
	CreatedAt string    `json:"created_at,omitempty"`
}

// PlanDateFormat is the wire format for user-entered plan dates
const PlanDateFormat = "2006-01-02"

// ValidatePlan checks a meal-plan request before any network call
func ValidatePlan(recipeNames []string, startDate, endDate string) error {
	if len(recipeNames) == 0 {
		return ErrNoRecipesSelected
	}
	for _, name := range recipeNames {
		if strings.TrimSpace(name) == "" {
			return ErrNoRecipesSelected
		}
	}
	if startDate == "" || endDate == "" {
		return ErrDatesRequired
	}
	start, err := time.Parse(PlanDateFormat, startDate)
	if err != nil {
		return ErrInvalidDateFormat
	}
	end, err := time.Parse(PlanDateFormat, endDate)
	if err != nil {
		return ErrInvalidDateFormat
	}
	if start.After(end) {
		return ErrEndBeforeStart
	}
	return nil
}
