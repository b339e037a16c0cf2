package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request CreateUserRequest
		wantErr bool
	}{
		{
			name:    "valid",
			request: CreateUserRequest{Name: "Ada", Email: "ada@example.com", Password: "password123"},
		},
		{
			name:    "missing name",
			request: CreateUserRequest{Email: "ada@example.com", Password: "password123"},
			wantErr: true,
		},
		{
			name:    "bad email",
			request: CreateUserRequest{Name: "Ada", Email: "not-an-email", Password: "password123"},
			wantErr: true,
		},
		{
			name:    "short password",
			request: CreateUserRequest{Name: "Ada", Email: "ada@example.com", Password: "short"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "ada@example.com", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Password: "x"}).Validate(), "email required")
	assert.Error(t, (&LoginRequest{Email: "ada@example.com"}).Validate(), "password required")
	assert.Error(t, (&LoginRequest{Email: "nope", Password: "x"}).Validate(), "email format checked")
}

func TestUpdatePasswordRequest_Validate(t *testing.T) {
	assert.NoError(t, (&UpdatePasswordRequest{CurrentPassword: "old", NewPassword: "long-enough-pw"}).Validate())
	assert.Error(t, (&UpdatePasswordRequest{NewPassword: "long-enough-pw"}).Validate())
	assert.Error(t, (&UpdatePasswordRequest{CurrentPassword: "old", NewPassword: "tiny"}).Validate())
}

func TestUserJSON_NoCredentialFields(t *testing.T) {
	u := User{
		ID:          uuid.New(),
		Name:        "Ada",
		Email:       "ada@example.com",
		PasswordSet: true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	raw, err := json.Marshal(LoginResponse{User: &u, Token: "tok"})
	require.NoError(t, err)

	body := string(raw)
	assert.Contains(t, body, `"password_set":true`)
	assert.Contains(t, body, `"token":"tok"`)
	assert.NotContains(t, body, "password_hash")

	var back LoginResponse
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, u.ID, back.User.ID)
}
