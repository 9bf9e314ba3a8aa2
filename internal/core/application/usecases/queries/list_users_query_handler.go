package queries

import (
	"context"
	"database/sql"
	"errors"

	"courier/internal/core/domain/model/user"
	"courier/internal/pkg/errs"

	"gorm.io/gorm"
)

type ListUsersQueryHandler struct {
	db *gorm.DB
}

func NewListUsersQueryHandler(db *gorm.DB) ListUsersQueryHandler {
	return ListUsersQueryHandler{db: db}
}

// Handle checks the caller's role in the store, then lists users ordered by
// username.
func (h ListUsersQueryHandler) Handle(ctx context.Context, query ListUsersQuery) ([]UserInfoResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var role user.Role
	err := db.Raw(`SELECT role FROM users WHERE username = ?`, query.Caller()).Row().Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("username", query.Caller())
	}
	if err != nil {
		return nil, errs.NewStorageError("get caller role", err)
	}
	if role != user.Administrator {
		return nil, errs.NewForbiddenError(query.Caller(), "list users")
	}

	rows, err := db.Raw(`
		SELECT username, role, balance, name, phone, address
		FROM users
		ORDER BY username
	`).Rows()
	if err != nil {
		return nil, errs.NewStorageError("list users", err)
	}
	defer rows.Close()

	users := make([]UserInfoResponse, 0)
	for rows.Next() {
		var info UserInfoResponse
		if err = rows.Scan(
			&info.Username,
			&info.Role,
			&info.Balance,
			&info.Name,
			&info.Phone,
			&info.Address,
		); err != nil {
			return nil, errs.NewStorageError("scan user", err)
		}
		users = append(users, info)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageError("list users", err)
	}

	return users, nil
}
