package user

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"courier/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

const (
	AdministratorUsername = "ADMINISTRATOR"
	MaxBalance            = int64(1_000_000_000)

	// MaxUsernameLength bounds names chosen at registration.
	MaxUsernameLength = 10

	// MaxStoredUsernameLength matches the users.username column.
	MaxStoredUsernameLength = 40
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewCustomer, NewAdministrator or RestoreUser")

// User is the account aggregate. The password is held only as a bcrypt hash.
type User struct {
	username     string
	passwordHash string
	role         Role
	balance      int64
	name         string
	phone        string
	address      string

	isConstructed bool
}

// Profile carries the descriptive fields a user supplies at registration.
type Profile struct {
	Name    string
	Phone   string
	Address string
}

// NewCustomer registers a customer with zero balance.
func NewCustomer(username, password string, profile Profile) (*User, error) {
	if n := utf8.RuneCountInString(username); n > MaxUsernameLength {
		return nil, errs.NewValueIsOutOfRangeError("username length", n, 1, MaxUsernameLength)
	}
	return newUser(username, password, Customer, profile)
}

// NewAdministrator builds the single administrator account.
func NewAdministrator(password string, profile Profile) (*User, error) {
	return newUser(AdministratorUsername, password, Administrator, profile)
}

func newUser(username, password string, role Role, profile Profile) (*User, error) {
	u := &User{
		role:          role,
		name:          profile.Name,
		phone:         profile.Phone,
		address:       profile.Address,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setUsername(username),
		u.setPassword(password),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser rehydrates a user from storage. passwordHash is taken as is.
func RestoreUser(
	username, passwordHash string,
	role Role,
	balance int64,
	profile Profile,
) (*User, error) {
	u := &User{
		passwordHash:  passwordHash,
		name:          profile.Name,
		phone:         profile.Phone,
		address:       profile.Address,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setUsername(username),
		role.Validate(),
		validateBalance(balance),
	); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, errs.NewValueIsRequiredError("password")
	}

	u.role = role
	u.balance = balance
	return u, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) Username() string     { return u.username }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) Balance() int64       { return u.balance }
func (u *User) Name() string         { return u.name }
func (u *User) Phone() string        { return u.phone }
func (u *User) Address() string      { return u.address }

func (u *User) IsAdministrator() bool {
	return u.role == Administrator
}

func (u *User) Profile() Profile {
	return Profile{Name: u.name, Phone: u.phone, Address: u.address}
}

// PasswordMatches reports whether password is the one the hash was made from.
func (u *User) PasswordMatches(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

func (u *User) ChangePassword(newPassword string) error {
	return u.setPassword(newPassword)
}

// AdjustBalance adds delta to the balance. The balance is left untouched on error.
func (u *User) AdjustBalance(delta int64) error {
	if err := u.CanAdjustBalance(delta); err != nil {
		return err
	}
	u.balance += delta
	return nil
}

// CanAdjustBalance checks AdjustBalance's rules without applying them.
func (u *User) CanAdjustBalance(delta int64) error {
	if delta > MaxBalance || delta < -MaxBalance {
		return errs.NewValueIsOutOfRangeError("balance change", delta, -MaxBalance, MaxBalance)
	}
	if err := validateBalance(u.balance + delta); err != nil {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"resulting balance", u.balance+delta, 0, MaxBalance,
			fmt.Errorf("current balance of %s is %d", u.username, u.balance),
		)
	}
	return nil
}

func validateBalance(balance int64) error {
	if balance < 0 || balance > MaxBalance {
		return errs.NewValueIsOutOfRangeError("balance", balance, 0, MaxBalance)
	}
	return nil
}

func (u *User) setUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n == 0 {
		return errs.NewValueIsRequiredError("username")
	}
	if n > MaxStoredUsernameLength {
		return errs.NewValueIsOutOfRangeError("username length", n, 1, MaxStoredUsernameLength)
	}
	u.username = username
	return nil
}

func (u *User) setPassword(password string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("password", err)
	}
	u.passwordHash = string(hash)
	return nil
}
