package usecase

import (
	"context"

	"mealtrack/internal/modules/account/domain"
	"mealtrack/internal/modules/account/dto"
	accountin "mealtrack/internal/modules/account/port/in"
	"mealtrack/internal/modules/account/service"
)

type Interactor struct {
	svc *service.AccountService
}

func NewInteractor(svc *service.AccountService) accountin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Set(ctx context.Context, input dto.SetInput) (dto.StatusOutput, error) {
	creds, claims, err := i.svc.Set(ctx, input.UserID, input.Token)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return i.status(creds, service.SourceFile, claims, true), nil
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	creds, source, err := i.svc.Resolve(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	claims, ok := i.svc.Inspect(creds.Token)
	return i.status(creds, source, claims, ok), nil
}

func (i *Interactor) Current(ctx context.Context) (dto.PrincipalOutput, error) {
	creds, err := i.svc.Current(ctx)
	return dto.PrincipalOutput{UserID: creds.UserID, Token: creds.Token}, err
}

func (i *Interactor) Clear(ctx context.Context) error {
	return i.svc.Clear(ctx)
}

func (i *Interactor) status(creds domain.Credentials, source string, claims domain.Claims, readable bool) dto.StatusOutput {
	out := dto.StatusOutput{
		UserID:        creds.UserID,
		TokenPreview:  domain.Preview(creds.Token),
		Source:        source,
		Authenticated: creds.Complete(),
	}
	if readable && claims.HasExpiry {
		out.HasExpiry = true
		out.ExpiresAt = claims.ExpiresAt
		out.Expired = i.svc.Expired(claims)
	}
	return out
}
