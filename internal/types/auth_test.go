package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateUserRequest_Validate(t *testing.T) {
	valid := &CreateUserRequest{Name: "Jane", Email: "jane@example.com", Password: "secret-password"}
	assert.NoError(t, valid.Validate())

	missing := &CreateUserRequest{Email: "jane@example.com", Password: "secret-password"}
	assert.Error(t, missing.Validate())

	badEmail := &CreateUserRequest{Name: "Jane", Email: "not-an-email", Password: "secret-password"}
	assert.Error(t, badEmail.Validate())

	shortPassword := &CreateUserRequest{Name: "Jane", Email: "jane@example.com", Password: "short"}
	assert.Error(t, shortPassword.Validate())
}

func TestLoginRequest_Validate(t *testing.T) {
	valid := &LoginRequest{Email: "jane@example.com", Password: "anything"}
	assert.NoError(t, valid.Validate())

	missing := &LoginRequest{Email: "jane@example.com"}
	assert.Error(t, missing.Validate())
}

func TestUpdatePasswordRequest_Validate(t *testing.T) {
	valid := &UpdatePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"}
	assert.NoError(t, valid.Validate())

	shortNew := &UpdatePasswordRequest{CurrentPassword: "old-password", NewPassword: "short"}
	assert.Error(t, shortNew.Validate())
}
