package tracker

import (
	foodlogdto "mealtrack/internal/modules/foodlog/dto"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseShowingError
	PhaseSubmitting
)

func (p Phase) String() string {
	switch p {
	case PhaseShowingError:
		return "error"
	case PhaseSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

// Form owns the add-entry draft and its submission state. It holds no
// network or rendering concerns, so every transition can be driven directly.
type Form struct {
	draft    foodlogdto.DraftInput
	phase    Phase
	message  string
	inFlight int
}

func NewForm() Form {
	return Form{draft: foodlogdto.DraftInput{MealType: foodlogdto.MealTypePlaceholder}}
}

func (f Form) Draft() foodlogdto.DraftInput { return f.draft }
func (f Form) Phase() Phase                 { return f.phase }
func (f Form) InFlight() int                { return f.inFlight }

// Error is the single validation message on display, if any.
func (f Form) Error() string { return f.message }

func (f *Form) SetFoodName(v string) {
	f.draft.FoodName = v
	f.edited()
}

func (f *Form) SetCalories(v string) {
	f.draft.Calories = v
	f.edited()
}

func (f *Form) SetProtein(v string) {
	f.draft.Protein = v
	f.edited()
}

func (f *Form) SetCarbohydrates(v string) {
	f.draft.Carbohydrates = v
	f.edited()
}

func (f *Form) SetFat(v string) {
	f.draft.Fat = v
	f.edited()
}

func (f *Form) SetServings(v string) {
	f.draft.Servings = v
	f.edited()
}

func (f *Form) SetMealType(v string) {
	f.draft.MealType = v
	f.edited()
}

func (f *Form) edited() {
	if f.phase == PhaseShowingError {
		f.phase = PhaseIdle
		f.message = ""
	}
}

// Begin validates the draft with check. A failure moves to ShowingError and
// keeps the draft; success moves to Submitting and returns the draft to send.
// Overlapping submissions are allowed.
func (f *Form) Begin(check func(foodlogdto.DraftInput) foodlogdto.ValidationOutput) (foodlogdto.DraftInput, bool) {
	result := check(f.draft)
	if !result.Valid {
		f.phase = PhaseShowingError
		f.message = result.Message
		return foodlogdto.DraftInput{}, false
	}
	f.phase = PhaseSubmitting
	f.message = ""
	f.inFlight++
	return f.draft, true
}

// Succeed clears every field and puts the meal type back on the placeholder.
func (f *Form) Succeed() {
	f.settle()
	f.draft = foodlogdto.DraftInput{MealType: foodlogdto.MealTypePlaceholder}
}

// Fail keeps the entered values and shows nothing; the error is only logged.
func (f *Form) Fail() {
	f.settle()
}

// Reset drops the draft and any message without touching in-flight requests.
func (f *Form) Reset() {
	f.draft = foodlogdto.DraftInput{MealType: foodlogdto.MealTypePlaceholder}
	if f.phase == PhaseShowingError {
		f.phase = PhaseIdle
	}
	f.message = ""
}

func (f *Form) settle() {
	if f.inFlight > 0 {
		f.inFlight--
	}
	if f.inFlight == 0 && f.phase == PhaseSubmitting {
		f.phase = PhaseIdle
	}
}
