package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateObjectID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"3f2b8c1e-8d4a-4e0b-9a57-2f1f0c9d6a11", true},
		{"3F2B8C1E-8D4A-4E0B-9A57-2F1F0C9D6A11", true},
		{"abc", false},
		{"", false},
		{"507f1f77bcf86cd799439011", false},
		{"3f2b8c1e-8d4a-4e0b-9a57-2f1f0c9d6a1z", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateObjectID(tt.id))
		})
	}
}

func TestValidateUserData(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		wantErr string
	}{
		{
			name:    "nil payload",
			payload: nil,
			wantErr: "No data provided",
		},
		{
			name:    "empty payload",
			payload: map[string]any{},
			wantErr: "No data provided",
		},
		{
			name:    "missing name",
			payload: map[string]any{"email": "john@example.com", "password": "12345678"},
			wantErr: "Missing required field: name",
		},
		{
			name:    "missing email",
			payload: map[string]any{"name": "John", "password": "12345678"},
			wantErr: "Missing required field: email",
		},
		{
			name:    "missing password",
			payload: map[string]any{"name": "John", "email": "john@example.com"},
			wantErr: "Missing required field: password",
		},
		{
			name:    "non string field",
			payload: map[string]any{"name": 42.0, "email": "john@example.com", "password": "12345678"},
			wantErr: "Field name must be a string",
		},
		{
			name:    "bad email",
			payload: map[string]any{"name": "John", "email": "john.example.com", "password": "12345678"},
			wantErr: "Invalid email format",
		},
		{
			name:    "short password",
			payload: map[string]any{"name": "John", "email": "john@example.com", "password": "1234567"},
			wantErr: "Password must be at least 8 characters long",
		},
		{
			name:    "multi-byte password counted by characters",
			payload: map[string]any{"name": "John", "email": "john@example.com", "password": "éééé"},
			wantErr: "Password must be at least 8 characters long",
		},
		{
			name:    "seven multi-byte characters",
			payload: map[string]any{"name": "John", "email": "john@example.com", "password": "ééééééé"},
			wantErr: "Password must be at least 8 characters long",
		},
		{
			name:    "eight multi-byte characters",
			payload: map[string]any{"name": "John", "email": "john@example.com", "password": "éééééééé"},
		},
		{
			name:    "null field is not a string",
			payload: map[string]any{"name": nil, "email": "john@example.com", "password": "12345678"},
			wantErr: "Field name must be a string",
		},
		{
			name:    "whitespace name",
			payload: map[string]any{"name": "   ", "email": "john@example.com", "password": "12345678"},
			wantErr: "Name cannot be empty",
		},
		{
			name:    "email checked before password",
			payload: map[string]any{"name": " ", "email": "nope", "password": "1"},
			wantErr: "Invalid email format",
		},
		{
			name:    "valid",
			payload: map[string]any{"name": "John", "email": "john@example.com", "password": "12345678"},
		},
		{
			name:    "extra fields ignored",
			payload: map[string]any{"_id": "x", "name": "John", "email": "john@example.com", "password": "12345678"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUserData(tt.payload)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidateUserUpdate(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		wantErr string
	}{
		{name: "empty", payload: map[string]any{}},
		{name: "nil", payload: nil},
		{name: "name only", payload: map[string]any{"name": "Jane"}},
		{name: "empty password keeps hash", payload: map[string]any{"password": ""}},
		{name: "bad email", payload: map[string]any{"email": "jane"}, wantErr: "Invalid email format"},
		{name: "blank name", payload: map[string]any{"name": "\t"}, wantErr: "Name cannot be empty"},
		{name: "short password", payload: map[string]any{"password": "short"}, wantErr: "Password must be at least 8 characters long"},
		{name: "short multi-byte password", payload: map[string]any{"password": "éééé"}, wantErr: "Password must be at least 8 characters long"},
		{name: "multi-byte password", payload: map[string]any{"password": "пароль12"}},
		{name: "null name treated as absent", payload: map[string]any{"name": nil}},
		{name: "null fields with valid email", payload: map[string]any{"name": nil, "email": "jane@example.com", "password": nil}},
		{name: "non string email", payload: map[string]any{"email": true}, wantErr: "Field email must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUserUpdate(tt.payload)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
