package in

import (
	"context"

	"mealtrack/internal/modules/account/dto"
)

type Usecase interface {
	Set(ctx context.Context, input dto.SetInput) (dto.StatusOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	// Current returns the principal even when the error is ErrTokenExpired.
	Current(ctx context.Context) (dto.PrincipalOutput, error)
	Clear(ctx context.Context) error
}
