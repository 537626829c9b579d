package in

import (
	"context"

	"mealtrack/internal/modules/foodlog/dto"
)

type Usecase interface {
	LoadDay(ctx context.Context) (dto.DayOutput, error)
	CheckDraft(input dto.DraftInput) dto.ValidationOutput
	Add(ctx context.Context, input dto.AddInput) (dto.AddOutput, error)
	CachedDay(ctx context.Context) (dto.DayOutput, error)
	ClearCache(ctx context.Context) error
	ExportJournal(ctx context.Context) (dto.JournalOutput, error)
}
