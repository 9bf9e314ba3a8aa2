// Package auth turns bearer credentials into verified principals.
//
// A credential is an HS256 JWT naming the user (sub) and the session it was
// issued for (jti). It is only honoured while that session is live in the
// session store, so dropping the session revokes every credential issued
// for the user regardless of the token's own expiry.
package auth

import (
	"courier/internal/core/domain/model/user"
	"courier/internal/pkg/errs"
)

// Principal is the verified identity behind a request.
type Principal struct {
	Username string
	Role     user.Role
}

func (p Principal) IsAdministrator() bool {
	return p.Role == user.Administrator
}

// Require fails with errs.ErrForbidden unless the principal holds role.
func (p Principal) Require(role user.Role, operation string) error {
	if p.Role != role {
		return errs.NewForbiddenError(p.Username, operation)
	}
	return nil
}
