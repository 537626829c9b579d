package dto

import (
	"time"

	"mealtrack/internal/modules/foodlog/domain"
)

// MealTypePlaceholder is the selector value meaning "nothing chosen yet".
const MealTypePlaceholder = string(domain.MealTypeUnset)

// MealTypeOptions returns the selector options, placeholder first.
func MealTypeOptions() []string {
	out := []string{MealTypePlaceholder}
	for _, m := range domain.MealTypes {
		out = append(out, string(m))
	}
	return out
}

type EntryOutput struct {
	ID            string
	FoodName      string
	MealType      string
	Route         string
	Calories      float64
	Protein       float64
	Carbohydrates float64
	Fat           float64
	Servings      float64
}

type TotalsOutput struct {
	Calories      float64
	Protein       float64
	Carbohydrates float64
	Fat           float64
}

func (t TotalsOutput) Plus(o TotalsOutput) TotalsOutput {
	return TotalsOutput{
		Calories:      t.Calories + o.Calories,
		Protein:       t.Protein + o.Protein,
		Carbohydrates: t.Carbohydrates + o.Carbohydrates,
		Fat:           t.Fat + o.Fat,
	}
}

type DayOutput struct {
	UserID    string
	Date      time.Time
	FetchedAt time.Time
	Entries   []EntryOutput
	Totals    TotalsOutput
}

// DraftInput mirrors the add-entry form; every field is raw text.
type DraftInput struct {
	FoodName      string
	Calories      string
	Protein       string
	Carbohydrates string
	Fat           string
	Servings      string
	MealType      string
}

type ValidationOutput struct {
	Valid   bool
	Field   string
	Message string
}

type AddInput struct {
	Draft DraftInput
	// Prior is the caller's displayed totals at submission time.
	Prior TotalsOutput
}

type AddOutput struct {
	Entries []EntryOutput
	// Delta is the submitted entry's contribution (value × servings).
	Delta TotalsOutput
	// Totals is Prior+Delta, or the sum over Entries when Reconciled.
	Totals     TotalsOutput
	Reconciled bool
	Drift      bool
}

type JournalOutput struct {
	Path    string
	Date    string
	Entries int
	Totals  TotalsOutput
}
