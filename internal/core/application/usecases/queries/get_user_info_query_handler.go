package queries

import (
	"context"
	"database/sql"
	"errors"

	"courier/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetUserInfoQueryHandler struct {
	db *gorm.DB
}

func NewGetUserInfoQueryHandler(db *gorm.DB) GetUserInfoQueryHandler {
	return GetUserInfoQueryHandler{db: db}
}

func (h GetUserInfoQueryHandler) Handle(ctx context.Context, query GetUserInfoQuery) (UserInfoResponse, error) {
	if err := query.Validate(); err != nil {
		return UserInfoResponse{}, err
	}

	var info UserInfoResponse
	err := h.db.WithContext(ctx).Raw(`
		SELECT username, role, balance, name, phone, address
		FROM users
		WHERE username = ?
	`, query.Username()).Row().Scan(
		&info.Username,
		&info.Role,
		&info.Balance,
		&info.Name,
		&info.Phone,
		&info.Address,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return UserInfoResponse{}, errs.NewObjectNotFoundError("username", query.Username())
	}
	if err != nil {
		return UserInfoResponse{}, errs.NewStorageError("get user info", err)
	}

	return info, nil
}
