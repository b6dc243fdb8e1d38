package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&ErrEmailAlreadyExists{Email: "a@b.com"}, http.StatusConflict},
		{&ErrInvalidCredentials{}, http.StatusUnauthorized},
		{&ErrPasswordMismatch{}, http.StatusUnauthorized},
		{&ErrUserNotFound{UserID: uuid.New()}, http.StatusNotFound},
		{&ErrNotFound{Resource: "artifact", ID: "x"}, http.StatusNotFound},
		{&ErrForbidden{}, http.StatusForbidden},
		{&ErrValidation{Field: "email", Message: "required"}, http.StatusBadRequest},
		{&ErrLLMUnavailable{}, http.StatusServiceUnavailable},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), "error: %v", tc.err)
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, (&ErrEmailAlreadyExists{Email: "a@b.com"}).Error(), "a@b.com")
	assert.Equal(t, "invalid email or password", (&ErrInvalidCredentials{}).Error())

	id := uuid.New()
	assert.Contains(t, (&ErrUserNotFound{UserID: id}).Error(), id.String())
	assert.Contains(t, (&ErrNotFound{Resource: "artifact", ID: "abc"}).Error(), "artifact")
}
