package in

import (
	"context"

	"mealtrack/internal/modules/foodlog/dto"
	foodlogin "mealtrack/internal/modules/foodlog/port/in"
)

type TUIHandler struct {
	usecase foodlogin.Usecase
}

func NewTUIHandler(usecase foodlogin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) LoadDay(ctx context.Context) (dto.DayOutput, error) {
	return h.usecase.LoadDay(ctx)
}

func (h TUIHandler) CheckDraft(input dto.DraftInput) dto.ValidationOutput {
	return h.usecase.CheckDraft(input)
}

func (h TUIHandler) Add(ctx context.Context, draft dto.DraftInput, prior dto.TotalsOutput) (dto.AddOutput, error) {
	return h.usecase.Add(ctx, dto.AddInput{Draft: draft, Prior: prior})
}

func (h TUIHandler) ExportJournal(ctx context.Context) (dto.JournalOutput, error) {
	return h.usecase.ExportJournal(ctx)
}
