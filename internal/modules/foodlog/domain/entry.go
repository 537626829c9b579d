package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type MealType string

const (
	// MealTypeUnset is the selector placeholder; it never reaches the backend.
	MealTypeUnset     MealType = "Choose meal type"
	MealTypeBreakfast MealType = "Breakfast"
	MealTypeLunch     MealType = "Lunch"
	MealTypeDinner    MealType = "Dinner"
	MealTypeSnack     MealType = "Snack"
)

// MealTypes lists the selectable meal types in display order.
var MealTypes = []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack}

func (m MealType) Validate() error {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return nil
	default:
		return fmt.Errorf("unsupported meal type %q", string(m))
	}
}

// ParseMealType matches case-insensitively; an empty string is the placeholder.
func ParseMealType(raw string) (MealType, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, string(MealTypeUnset)) {
		return MealTypeUnset, nil
	}
	for _, m := range MealTypes {
		if strings.EqualFold(raw, string(m)) {
			return m, nil
		}
	}
	return MealTypeUnset, fmt.Errorf("unsupported meal type %q", raw)
}

// FoodItemRoute is the navigation target of a list item.
const FoodItemRoute = "/foodItemInfo/:foodItemHash"

type Entry struct {
	ID            string
	FoodName      string
	Calories      float64
	Protein       float64
	Carbohydrates float64
	Fat           float64
	Servings      float64
	MealType      MealType
}

// Route is empty for entries the server returned without an identifying hash.
func (e Entry) Route() string {
	if e.ID == "" {
		return ""
	}
	return strings.Replace(FoodItemRoute, ":foodItemHash", e.ID, 1)
}

type Totals struct {
	Calories      float64
	Protein       float64
	Carbohydrates float64
	Fat           float64
}

func TotalsOf(entries []Entry) Totals {
	t := Totals{}
	for _, e := range entries {
		t = t.Add(e)
	}
	return t
}

// Add accumulates one entry scaled by its servings.
func (t Totals) Add(e Entry) Totals {
	return t.Plus(Contribution(e))
}

func (t Totals) Plus(o Totals) Totals {
	return Totals{
		Calories:      t.Calories + o.Calories,
		Protein:       t.Protein + o.Protein,
		Carbohydrates: t.Carbohydrates + o.Carbohydrates,
		Fat:           t.Fat + o.Fat,
	}
}

// Contribution is the amount a single entry adds to the daily totals.
func Contribution(e Entry) Totals {
	return Totals{
		Calories:      e.Calories * e.Servings,
		Protein:       e.Protein * e.Servings,
		Carbohydrates: e.Carbohydrates * e.Servings,
		Fat:           e.Fat * e.Servings,
	}
}

// Matches compares with a relative tolerance so float summation order does
// not count as drift.
func (t Totals) Matches(o Totals) bool {
	return approxEqual(t.Calories, o.Calories) &&
		approxEqual(t.Protein, o.Protein) &&
		approxEqual(t.Carbohydrates, o.Carbohydrates) &&
		approxEqual(t.Fat, o.Fat)
}

func approxEqual(a, b float64) bool {
	diff := math.Abs(a - b)
	if diff <= 1e-9 {
		return true
	}
	return diff <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

// Principal identifies whose food log is read and written.
type Principal struct {
	UserID string
	Token  string
}

type Day struct {
	Date    time.Time
	Entries []Entry
	Totals  Totals
}

func NewDay(date time.Time, entries []Entry) Day {
	return Day{Date: date, Entries: entries, Totals: TotalsOf(entries)}
}
