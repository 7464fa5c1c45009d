package grocery

import "errors"

// Plan validation errors
var (
	ErrNoRecipesSelected = errors.New("at least one recipe must be selected")
	ErrDatesRequired     = errors.New("start date and end date are required")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrEndBeforeStart    = errors.New("end date must be after start date")
)
