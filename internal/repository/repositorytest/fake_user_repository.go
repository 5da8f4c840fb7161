// Package repositorytest provides an in-memory UserRepository for tests of
// the layers above the store.
package repositorytest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/repository"
)

// FakeUserRepository keeps users in a map and enforces email uniqueness the
// way the users table constraint does.
type FakeUserRepository struct {
	mu    sync.Mutex
	users map[string]domain.User

	// Err, when set, is returned by every call.
	Err error
	// Writes counts successful mutating calls.
	Writes int
}

var _ repository.UserRepository = (*FakeUserRepository)(nil)

// NewFakeUserRepository returns an empty fake.
func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{users: make(map[string]domain.User)}
}

func (f *FakeUserRepository) List(_ context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	users := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (f *FakeUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *FakeUserRepository) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}

	if _, taken := f.byEmail(user.Email); taken {
		return repository.ErrDuplicateEmail
	}
	user.ID = uuid.NewString()
	f.users[user.ID] = *user
	f.Writes++
	return nil
}

func (f *FakeUserRepository) Update(_ context.Context, id string, update *domain.UserUpdate) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Email != nil {
		if other, taken := f.byEmail(*update.Email); taken && other.ID != id {
			return nil, repository.ErrDuplicateEmail
		}
	}
	update.Apply(&u)
	f.users[id] = u
	f.Writes++
	return &u, nil
}

func (f *FakeUserRepository) DeleteByID(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}

	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	f.Writes++
	return nil
}

func (f *FakeUserRepository) DeleteByEmail(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}

	u, ok := f.byEmail(email)
	if !ok {
		return repository.ErrNotFound
	}
	delete(f.users, u.ID)
	f.Writes++
	return nil
}

// Count returns the number of users currently stored.
func (f *FakeUserRepository) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

func (f *FakeUserRepository) byEmail(email string) (domain.User, bool) {
	for _, u := range f.users {
		if u.Email == email {
			return u, true
		}
	}
	return domain.User{}, false
}
