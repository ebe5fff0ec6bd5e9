package memory

import (
	"context"

	"blogapp/models"
	"blogapp/store"
)

type UserStore struct {
	s *Store
}

func NewUserStore(s *Store) *UserStore {
	return &UserStore{s: s}
}

func (us *UserStore) Create(ctx context.Context, u models.NewUser) (models.User, error) {
	us.s.mu.Lock()
	defer us.s.mu.Unlock()

	for _, existing := range us.s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return models.User{}, store.ErrDuplicate
		}
	}

	user := models.User{
		ID:           us.s.nextUserID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
	}
	us.s.nextUserID++
	us.s.users[user.ID] = user

	return user, nil
}

func (us *UserStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	us.s.mu.Lock()
	defer us.s.mu.Unlock()

	for _, user := range us.s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, store.ErrNotFound
}
