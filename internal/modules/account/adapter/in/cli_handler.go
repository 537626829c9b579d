package in

import (
	"context"

	"mealtrack/internal/modules/account/dto"
	accountin "mealtrack/internal/modules/account/port/in"
)

type CLIHandler struct {
	usecase accountin.Usecase
}

func NewCLIHandler(usecase accountin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Set(ctx context.Context, userID, token string) (dto.StatusOutput, error) {
	return h.usecase.Set(ctx, dto.SetInput{UserID: userID, Token: token})
}

func (h CLIHandler) Show(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.Clear(ctx)
}
