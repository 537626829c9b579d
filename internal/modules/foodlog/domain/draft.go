package domain

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	apperrors "mealtrack/internal/platform/errors"
	"mealtrack/internal/platform/numfmt"
)

type Field string

const (
	FieldIncomplete    Field = "incomplete"
	FieldCalories      Field = "calories"
	FieldProtein       Field = "protein"
	FieldCarbohydrates Field = "carbohydrates"
	FieldFat           Field = "fat"
	FieldServings      Field = "servings"
)

const (
	MsgIncompleteFields = "Please enter all necessary fields before saving"
	MsgInvalidCalories  = "Calories must be a number"
	MsgInvalidProtein   = "Protein must be a number"
	MsgInvalidCarbs     = "Carbohydrates must be a number"
	MsgInvalidFat       = "Fat must be a number"
	MsgInvalidServings  = "Servings must be a number"
)

type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == apperrors.ErrInvalidInput }

// Draft is the raw text of the add-entry form.
type Draft struct {
	FoodName      string
	Calories      string
	Protein       string
	Carbohydrates string
	Fat           string
	Servings      string
	MealType      MealType
}

// Validate runs the completeness gate and then the numeric checks in form
// order, returning the first failure only. Fat is deliberately outside the
// completeness gate; an empty fat field fails its numeric check instead.
func (d Draft) Validate() *ValidationError {
	if d.FoodName == "" || d.Calories == "" || d.Protein == "" || d.Carbohydrates == "" ||
		d.Servings == "" || d.MealType == MealTypeUnset || d.MealType == "" {
		return &ValidationError{Field: FieldIncomplete, Message: MsgIncompleteFields}
	}
	checks := []struct {
		value string
		field Field
		msg   string
	}{
		{d.Calories, FieldCalories, MsgInvalidCalories},
		{d.Protein, FieldProtein, MsgInvalidProtein},
		{d.Carbohydrates, FieldCarbohydrates, MsgInvalidCarbs},
		{d.Fat, FieldFat, MsgInvalidFat},
		{d.Servings, FieldServings, MsgInvalidServings},
	}
	for _, c := range checks {
		if !IsValidNumber(c.value) {
			return &ValidationError{Field: c.field, Message: c.msg}
		}
	}
	// A value that overflows once scaled by servings would turn the totals
	// into Infinity; it fails as that field.
	servings := mustParse(d.Servings)
	for _, c := range checks[:4] {
		if math.IsInf(mustParse(c.value)*servings, 0) {
			return &ValidationError{Field: c.field, Message: c.msg}
		}
	}
	return nil
}

// Entry validates the draft and returns the entry it describes, without an id.
func (d Draft) Entry() (Entry, error) {
	if verr := d.Validate(); verr != nil {
		return Entry{}, verr
	}
	if err := d.MealType.Validate(); err != nil {
		return Entry{}, &ValidationError{Field: FieldIncomplete, Message: MsgIncompleteFields}
	}
	return Entry{
		FoodName:      d.FoodName,
		Calories:      mustParse(d.Calories),
		Protein:       mustParse(d.Protein),
		Carbohydrates: mustParse(d.Carbohydrates),
		Fat:           mustParse(d.Fat),
		Servings:      mustParse(d.Servings),
		MealType:      d.MealType,
	}, nil
}

// Submission is the PUT body. Numbers travel as the trimmed text the user
// typed, which is already canonical once validated.
func (d Draft) Submission() Submission {
	return Submission{
		FoodName:      d.FoodName,
		Calories:      trim(d.Calories),
		Protein:       trim(d.Protein),
		Carbohydrates: trim(d.Carbohydrates),
		Fat:           trim(d.Fat),
		Servings:      trim(d.Servings),
		MealType:      d.MealType,
	}
}

type Submission struct {
	FoodName      string
	Calories      string
	Protein       string
	Carbohydrates string
	Fat           string
	Servings      string
	MealType      MealType
}

// IsValidNumber accepts a non-negative finite number whose trimmed text is
// exactly its canonical rendering, so "12" passes while "12abc", "12.50",
// "007", ".5", "1e3" and "-1" do not.
func IsValidNumber(s string) bool {
	t := trim(s)
	f, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return false
	}
	return t == numfmt.Format(f)
}

func mustParse(s string) float64 {
	f, _ := strconv.ParseFloat(trim(s), 64)
	return f
}

// trim strips the whitespace a browser's String#trim strips: Unicode
// White_Space plus the BOM, but not NEL.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return (unicode.IsSpace(r) && r != '\u0085') || r == '\uFEFF'
	})
}
