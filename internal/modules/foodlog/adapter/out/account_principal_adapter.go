package out

import (
	"context"

	accountin "mealtrack/internal/modules/account/port/in"
	"mealtrack/internal/modules/foodlog/domain"
	foodlogout "mealtrack/internal/modules/foodlog/port/out"
)

type AccountPrincipalAdapter struct {
	account accountin.Usecase
}

func NewAccountPrincipalAdapter(account accountin.Usecase) foodlogout.PrincipalSource {
	return &AccountPrincipalAdapter{account: account}
}

func (a *AccountPrincipalAdapter) Current(ctx context.Context) (domain.Principal, error) {
	p, err := a.account.Current(ctx)
	return domain.Principal{UserID: p.UserID, Token: p.Token}, err
}
