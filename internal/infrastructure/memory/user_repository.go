package memory

import (
	"context"

	"github.com/jhoicas/foodcart-api/internal/domain"
	"github.com/jhoicas/foodcart-api/internal/domain/entity"
	"github.com/jhoicas/foodcart-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	guard
}

// NewUserRepository construye el repositorio sobre st.
func NewUserRepository(st *Store) *UserRepo {
	return &UserRepo{guard{st: st}}
}

// Create inserta el usuario; email y username son únicos.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	var err error
	r.write(func() {
		for _, u := range r.st.users {
			if u.Email == user.Email {
				err = domain.ErrEmailAlreadyExists
				return
			}
			if u.Username == user.Username {
				err = domain.ErrUsernameAlreadyExists
				return
			}
		}
		r.st.users[user.ID] = *user
	})
	return err
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id }), nil
}

// GetByEmail obtiene un usuario por email; (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email }), nil
}

// GetByUsername obtiene un usuario por username; (nil, nil) si no existe.
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username }), nil
}

func (r *UserRepo) find(match func(entity.User) bool) *entity.User {
	var out *entity.User
	r.read(func() {
		for _, u := range r.st.users {
			if match(u) {
				u := u
				out = &u
				return
			}
		}
	})
	return out
}
