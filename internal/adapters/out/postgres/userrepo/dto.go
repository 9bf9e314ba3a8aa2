// Package userrepo persists user aggregates in the users table.
package userrepo

import (
	"courier/internal/core/domain/model/user"
)

// UserDTO is the row shape of the users table.
type UserDTO struct {
	Username string `gorm:"primaryKey;size:40"`
	Password string `gorm:"not null"`
	Role     int    `gorm:"type:smallint;not null"`
	Balance  int64  `gorm:"not null"`
	Name     string
	Phone    string
	Address  string
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		Username: u.Username(),
		Password: u.PasswordHash(),
		Role:     int(u.Role()),
		Balance:  u.Balance(),
		Name:     u.Name(),
		Phone:    u.Phone(),
		Address:  u.Address(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	return user.RestoreUser(
		dto.Username,
		dto.Password,
		user.Role(dto.Role),
		dto.Balance,
		user.Profile{Name: dto.Name, Phone: dto.Phone, Address: dto.Address},
	)
}
