package user_test

import (
	"testing"

	"courier/internal/core/domain/model/user"

	"github.com/stretchr/testify/assert"
)

func TestRole(t *testing.T) {
	assert.NoError(t, user.Customer.Validate())
	assert.NoError(t, user.Administrator.Validate())
	assert.Error(t, user.Role(2).Validate())

	assert.Equal(t, "Customer", user.Customer.String())
	assert.Equal(t, "Administrator", user.Administrator.String())
	assert.Equal(t, "Unknown", user.Role(-1).String())
}
