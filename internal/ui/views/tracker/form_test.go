package tracker

import (
	"testing"

	foodlogdto "mealtrack/internal/modules/foodlog/dto"
)

func checkWith(msg string) func(foodlogdto.DraftInput) foodlogdto.ValidationOutput {
	return func(foodlogdto.DraftInput) foodlogdto.ValidationOutput {
		if msg == "" {
			return foodlogdto.ValidationOutput{Valid: true}
		}
		return foodlogdto.ValidationOutput{Message: msg}
	}
}

func filled() Form {
	f := NewForm()
	f.SetFoodName("Oats")
	f.SetCalories("150")
	f.SetProtein("5")
	f.SetCarbohydrates("27")
	f.SetFat("3")
	f.SetServings("2")
	f.SetMealType("Breakfast")
	return f
}

func TestFormStartsIdleOnPlaceholder(t *testing.T) {
	t.Parallel()
	f := NewForm()
	if f.Phase() != PhaseIdle || f.Error() != "" {
		t.Fatalf("new form should be idle without message")
	}
	if f.Draft().MealType != foodlogdto.MealTypePlaceholder {
		t.Fatalf("meal type should start on the placeholder, got %q", f.Draft().MealType)
	}
}

func TestFormValidationErrorClearsOnEdit(t *testing.T) {
	t.Parallel()
	f := filled()
	if _, ok := f.Begin(checkWith("Fat must be a number")); ok {
		t.Fatalf("failing check must not start a submission")
	}
	if f.Phase() != PhaseShowingError || f.Error() != "Fat must be a number" || f.InFlight() != 0 {
		t.Fatalf("unexpected state %s %q %d", f.Phase(), f.Error(), f.InFlight())
	}
	if f.Draft().FoodName != "Oats" {
		t.Fatalf("draft must survive a validation failure")
	}
	f.SetFat("3")
	if f.Phase() != PhaseIdle || f.Error() != "" {
		t.Fatalf("an edit should return to idle, got %s %q", f.Phase(), f.Error())
	}
}

func TestFormSuccessClearsFields(t *testing.T) {
	t.Parallel()
	f := filled()
	draft, ok := f.Begin(checkWith(""))
	if !ok || draft.Calories != "150" || f.Phase() != PhaseSubmitting {
		t.Fatalf("expected submission of the draft, got %+v %s", draft, f.Phase())
	}
	f.Succeed()
	if f.Phase() != PhaseIdle {
		t.Fatalf("expected idle after success, got %s", f.Phase())
	}
	want := foodlogdto.DraftInput{MealType: foodlogdto.MealTypePlaceholder}
	if f.Draft() != want {
		t.Fatalf("expected cleared draft, got %+v", f.Draft())
	}
}

func TestFormFailureKeepsValuesSilently(t *testing.T) {
	t.Parallel()
	f := filled()
	before := f.Draft()
	if _, ok := f.Begin(checkWith("")); !ok {
		t.Fatalf("expected submission")
	}
	f.Fail()
	if f.Phase() != PhaseIdle || f.Error() != "" {
		t.Fatalf("failure must not surface a message: %s %q", f.Phase(), f.Error())
	}
	if f.Draft() != before {
		t.Fatalf("failure must keep values: %+v", f.Draft())
	}
}

func TestFormAllowsOverlappingSubmissions(t *testing.T) {
	t.Parallel()
	f := filled()
	if _, ok := f.Begin(checkWith("")); !ok {
		t.Fatalf("first submission")
	}
	if _, ok := f.Begin(checkWith("")); !ok {
		t.Fatalf("second submission should not be blocked")
	}
	if f.InFlight() != 2 {
		t.Fatalf("expected two in flight, got %d", f.InFlight())
	}
	f.Fail()
	if f.Phase() != PhaseSubmitting {
		t.Fatalf("still submitting while one request is open, got %s", f.Phase())
	}
	f.Succeed()
	if f.Phase() != PhaseIdle || f.InFlight() != 0 {
		t.Fatalf("expected idle, got %s %d", f.Phase(), f.InFlight())
	}
}
