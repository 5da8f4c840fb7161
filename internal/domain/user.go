package domain

import "time"

// User is the persisted user record. PasswordHash never leaves the service.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser builds a record ready for insertion with both timestamps set to now.
func NewUser(name, email, passwordHash string, now time.Time) *User {
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// UserUpdate is a partial change to a user. Nil fields are left untouched.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	UpdatedAt    time.Time
}

// NewUserUpdate starts an update stamped with now.
func NewUserUpdate(now time.Time) *UserUpdate {
	return &UserUpdate{UpdatedAt: now}
}

// Apply copies the set fields of u onto user.
func (u *UserUpdate) Apply(user *User) {
	if u.Name != nil {
		user.Name = *u.Name
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.PasswordHash != nil {
		user.PasswordHash = *u.PasswordHash
	}
	user.UpdatedAt = u.UpdatedAt
}
