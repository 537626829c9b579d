package domain_test

import (
	"errors"
	"testing"

	"mealtrack/internal/modules/foodlog/domain"
	apperrors "mealtrack/internal/platform/errors"
)

func TestIsValidNumber(t *testing.T) {
	t.Parallel()
	valid := []string{"0", "12", "12.5", "0.25", " 100 ", "\t3\n", "\u00a012", "\ufeff7\u2028", "1e+21", "0.000001", "1.5e-7"}
	for _, s := range valid {
		if !domain.IsValidNumber(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	invalid := []string{"", " ", "abc", "12abc", "1.2.3", "12.50", "007", ".5", "5.", "1e3", "-1", "-0", "+5", "0x10", "1_000", "Infinity", "NaN", "1,5", "\u008512", "12\u0085"}
	for _, s := range invalid {
		if domain.IsValidNumber(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func completeDraft() domain.Draft {
	return domain.Draft{
		FoodName:      "Oatmeal",
		Calories:      "150",
		Protein:       "5",
		Carbohydrates: "27",
		Fat:           "3",
		Servings:      "2",
		MealType:      domain.MealTypeBreakfast,
	}
}

func TestValidateCompletenessGate(t *testing.T) {
	t.Parallel()
	mutations := map[string]func(*domain.Draft){
		"name":        func(d *domain.Draft) { d.FoodName = "" },
		"calories":    func(d *domain.Draft) { d.Calories = "" },
		"protein":     func(d *domain.Draft) { d.Protein = "" },
		"carbs":       func(d *domain.Draft) { d.Carbohydrates = "" },
		"servings":    func(d *domain.Draft) { d.Servings = "" },
		"placeholder": func(d *domain.Draft) { d.MealType = domain.MealTypeUnset },
	}
	for name, mutate := range mutations {
		d := completeDraft()
		d.Calories = "not a number"
		mutate(&d)
		verr := d.Validate()
		if verr == nil || verr.Field != domain.FieldIncomplete || verr.Message != domain.MsgIncompleteFields {
			t.Fatalf("%s: expected incomplete-fields error, got %+v", name, verr)
		}
	}
}

func TestValidateEmptyFatFailsNumericCheckNotCompleteness(t *testing.T) {
	t.Parallel()
	d := completeDraft()
	d.Fat = ""
	verr := d.Validate()
	if verr == nil || verr.Field != domain.FieldFat || verr.Message != "Fat must be a number" {
		t.Fatalf("expected fat numeric error, got %+v", verr)
	}
}

func TestValidateReportsFirstInvalidFieldInOrder(t *testing.T) {
	t.Parallel()
	d := completeDraft()
	d.Protein = "lots"
	d.Servings = "two"
	if verr := d.Validate(); verr == nil || verr.Message != "Protein must be a number" {
		t.Fatalf("expected protein error first, got %+v", verr)
	}
	d.Protein = "5"
	if verr := d.Validate(); verr == nil || verr.Message != "Servings must be a number" {
		t.Fatalf("expected servings error, got %+v", verr)
	}
	d.Servings = "2"
	d.Carbohydrates = "12abc"
	if verr := d.Validate(); verr == nil || verr.Field != domain.FieldCarbohydrates {
		t.Fatalf("expected carbohydrates error, got %+v", verr)
	}
	d.Carbohydrates = "27"
	d.Calories = "1.2.3"
	if verr := d.Validate(); verr == nil || verr.Message != "Calories must be a number" {
		t.Fatalf("expected calories error, got %+v", verr)
	}
}

func TestValidateRejectsValuesThatOverflowWithServings(t *testing.T) {
	t.Parallel()
	d := completeDraft()
	d.Calories = "1e+308"
	if verr := d.Validate(); verr == nil || verr.Field != domain.FieldCalories {
		t.Fatalf("expected calories overflow error, got %+v", verr)
	}
	d.Servings = "1"
	if verr := d.Validate(); verr != nil {
		t.Fatalf("finite contribution should pass, got %+v", verr)
	}
	d.Calories = "150"
	d.Servings = "1e+308"
	if verr := d.Validate(); verr == nil || verr.Field != domain.FieldCalories {
		t.Fatalf("expected first overflowing field to be reported, got %+v", verr)
	}
	d.Calories, d.Protein, d.Carbohydrates, d.Fat = "0", "0", "0", "0"
	if verr := d.Validate(); verr != nil {
		t.Fatalf("zero values cannot overflow, got %+v", verr)
	}
}

func TestDraftEntryAndSubmission(t *testing.T) {
	t.Parallel()
	d := completeDraft()
	d.Calories = " 150 "
	entry, err := d.Entry()
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if entry.Calories != 150 || entry.Servings != 2 || entry.MealType != domain.MealTypeBreakfast {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if sub := d.Submission(); sub.Calories != "150" || sub.FoodName != "Oatmeal" {
		t.Fatalf("unexpected submission: %+v", sub)
	}

	d.MealType = domain.MealTypeUnset
	_, err = d.Entry()
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != domain.FieldIncomplete {
		t.Fatalf("expected validation error, got %v", err)
	}
}
