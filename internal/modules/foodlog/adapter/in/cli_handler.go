package in

import (
	"context"

	"mealtrack/internal/modules/foodlog/dto"
	foodlogin "mealtrack/internal/modules/foodlog/port/in"
	apperrors "mealtrack/internal/platform/errors"
)

type CLIHandler struct {
	usecase foodlogin.Usecase
}

func NewCLIHandler(usecase foodlogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, cached bool) (dto.DayOutput, error) {
	if cached {
		return h.usecase.CachedDay(ctx)
	}
	return h.usecase.LoadDay(ctx)
}

// Add submits one entry. The CLI has no displayed totals, so the prior totals
// are read from the current list first.
func (h CLIHandler) Add(ctx context.Context, draft dto.DraftInput) (dto.AddOutput, error) {
	if check := h.usecase.CheckDraft(draft); !check.Valid {
		return dto.AddOutput{}, ValidationError{Output: check}
	}
	day, err := h.usecase.LoadDay(ctx)
	if err != nil {
		return dto.AddOutput{}, err
	}
	return h.usecase.Add(ctx, dto.AddInput{Draft: draft, Prior: day.Totals})
}

func (h CLIHandler) Totals(ctx context.Context) (dto.DayOutput, error) {
	return h.usecase.LoadDay(ctx)
}

func (h CLIHandler) ExportJournal(ctx context.Context) (dto.JournalOutput, error) {
	return h.usecase.ExportJournal(ctx)
}

func (h CLIHandler) ClearCache(ctx context.Context) error {
	return h.usecase.ClearCache(ctx)
}

// ValidationError surfaces the form's single message as the command error.
type ValidationError struct {
	Output dto.ValidationOutput
}

func (e ValidationError) Error() string {
	return e.Output.Message
}

func (e ValidationError) Unwrap() error {
	return apperrors.ErrInvalidInput
}
