package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bulletinboard/internal/models"
)

type fakeUserFullStore struct {
	nextID int64
	users  map[int64]models.User
}

func newFakeUserFullStore() *fakeUserFullStore {
	return &fakeUserFullStore{users: map[int64]models.User{}}
}

func (f *fakeUserFullStore) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	f.nextID++
	u.ID = f.nextID
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserFullStore) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("%w: id %d", models.ErrUserNotFound, id)
	}
	return u, nil
}

func (f *fakeUserFullStore) ListUsers(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserFullStore) UpdateUser(ctx context.Context, u models.User) (models.User, error) {
	if _, ok := f.users[u.ID]; !ok {
		return models.User{}, fmt.Errorf("%w: id %d", models.ErrUserNotFound, u.ID)
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserFullStore) DeleteUser(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return fmt.Errorf("%w: id %d", models.ErrUserNotFound, id)
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserFullStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func TestUserServiceDuplicateEmail(t *testing.T) {
	svc := &UserService{Users: newFakeUserFullStore()}
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, models.UserRequest{Name: "Somchai", Email: "somchai@example.com"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if _, err := svc.CreateUser(ctx, models.UserRequest{Name: "Lek", Email: "somchai@example.com"}); !errors.Is(err, models.ErrDuplicateEmail) {
		t.Fatalf("duplicate create: err = %v, want ErrDuplicateEmail", err)
	}

	if _, err := svc.CreateUser(ctx, models.UserRequest{Name: "Lek"}); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("missing email: err = %v, want ErrValidation", err)
	}

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		updated, err := svc.UpdateUser(ctx, created.ID, models.UserRequest{Phone: "+66 81 234 5678"})
		if err != nil {
			t.Fatalf("UpdateUser: %v", err)
		}
		if updated.Name != "Somchai" || updated.Email != "somchai@example.com" {
			t.Errorf("phone-only update changed name/email: %+v", updated)
		}
		if updated.Phone != "+66 81 234 5678" {
			t.Errorf("phone = %q", updated.Phone)
		}
	})

	t.Run("email change onto taken address", func(t *testing.T) {
		other, err := svc.CreateUser(ctx, models.UserRequest{Name: "Lek", Email: "lek@example.com"})
		if err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
		if _, err := svc.UpdateUser(ctx, other.ID, models.UserRequest{Email: "somchai@example.com"}); !errors.Is(err, models.ErrDuplicateEmail) {
			t.Fatalf("err = %v, want ErrDuplicateEmail", err)
		}
	})
}
