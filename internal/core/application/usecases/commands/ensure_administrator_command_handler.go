package commands

import (
	"context"
	"errors"

	"courier/internal/core/domain/model/user"
	"courier/internal/pkg/errs"
)

type EnsureAdministratorCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewEnsureAdministratorCommandHandler(uowFactory UserUoWFactory) EnsureAdministratorCommandHandler {
	return EnsureAdministratorCommandHandler{uowFactory: uowFactory}
}

// Handle reports whether the administrator was created by this call.
func (h *EnsureAdministratorCommandHandler) Handle(ctx context.Context, cmd EnsureAdministratorCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	existing, err := repo.Get(ctx, user.AdministratorUsername)
	switch {
	case err == nil:
		if !existing.IsAdministrator() {
			return false, errs.NewStateError(
				"user "+user.AdministratorUsername, "exists but is not an administrator",
			)
		}
		return false, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return false, err
	}

	admin, err := user.NewAdministrator(cmd.Password(), cmd.Profile())
	if err != nil {
		return false, err
	}

	if err = repo.Add(ctx, admin); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
