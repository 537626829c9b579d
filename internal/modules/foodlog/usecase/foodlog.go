package usecase

import (
	"context"

	"mealtrack/internal/modules/foodlog/domain"
	"mealtrack/internal/modules/foodlog/dto"
	foodlogin "mealtrack/internal/modules/foodlog/port/in"
	"mealtrack/internal/modules/foodlog/service"
)

type Interactor struct {
	svc *service.FoodLogService
}

func NewInteractor(svc *service.FoodLogService) foodlogin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) LoadDay(ctx context.Context) (dto.DayOutput, error) {
	day, userID, err := i.svc.LoadDay(ctx)
	if err != nil {
		return dto.DayOutput{}, err
	}
	out := toDayOutput(day, userID)
	out.FetchedAt = day.Date
	return out, nil
}

func (i *Interactor) CheckDraft(input dto.DraftInput) dto.ValidationOutput {
	if verr := toDraft(input).Validate(); verr != nil {
		return dto.ValidationOutput{Field: string(verr.Field), Message: verr.Message}
	}
	return dto.ValidationOutput{Valid: true}
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.AddOutput, error) {
	res, err := i.svc.Add(ctx, toDraft(input.Draft), domain.Totals(input.Prior))
	if err != nil {
		return dto.AddOutput{}, err
	}
	return dto.AddOutput{
		Entries:    toEntryOutputs(res.Entries),
		Delta:      dto.TotalsOutput(res.Delta),
		Totals:     dto.TotalsOutput(res.Totals),
		Reconciled: res.Reconciled,
		Drift:      res.Drift,
	}, nil
}

func (i *Interactor) CachedDay(ctx context.Context) (dto.DayOutput, error) {
	day, userID, err := i.svc.CachedDay(ctx)
	if err != nil {
		return dto.DayOutput{}, err
	}
	out := toDayOutput(day, userID)
	out.FetchedAt = day.Date
	return out, nil
}

func (i *Interactor) ClearCache(ctx context.Context) error {
	return i.svc.ClearCache(ctx)
}

func (i *Interactor) ExportJournal(ctx context.Context) (dto.JournalOutput, error) {
	day, path, err := i.svc.ExportJournal(ctx)
	if err != nil {
		return dto.JournalOutput{}, err
	}
	return dto.JournalOutput{
		Path:    path,
		Date:    day.Date.Format("2006-01-02"),
		Entries: len(day.Entries),
		Totals:  dto.TotalsOutput(day.Totals),
	}, nil
}

// toDraft maps the raw form. A meal type outside the selector's options is
// treated like the placeholder so it fails the completeness gate.
func toDraft(input dto.DraftInput) domain.Draft {
	meal, err := domain.ParseMealType(input.MealType)
	if err != nil {
		meal = domain.MealTypeUnset
	}
	return domain.Draft{
		FoodName:      input.FoodName,
		Calories:      input.Calories,
		Protein:       input.Protein,
		Carbohydrates: input.Carbohydrates,
		Fat:           input.Fat,
		Servings:      input.Servings,
		MealType:      meal,
	}
}

func toDayOutput(day domain.Day, userID string) dto.DayOutput {
	return dto.DayOutput{
		UserID:  userID,
		Date:    day.Date,
		Entries: toEntryOutputs(day.Entries),
		Totals:  dto.TotalsOutput(day.Totals),
	}
}

func toEntryOutputs(entries []domain.Entry) []dto.EntryOutput {
	out := make([]dto.EntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.EntryOutput{
			ID:            e.ID,
			FoodName:      e.FoodName,
			MealType:      string(e.MealType),
			Route:         e.Route(),
			Calories:      e.Calories,
			Protein:       e.Protein,
			Carbohydrates: e.Carbohydrates,
			Fat:           e.Fat,
			Servings:      e.Servings,
		})
	}
	return out
}
