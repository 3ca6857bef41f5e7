package service

import (
	"sort"
	"testing"
	"time"

	"bashaway_backend/internal/config"
	"bashaway_backend/internal/model"
	"bashaway_backend/internal/util"

	"gorm.io/gorm"
)

type fakeUserRepo struct {
	nextID uint
	users  []*model.User
}

func (f *fakeUserRepo) Create(user *model.User) error {
	f.nextID++
	user.ID = f.nextID
	stored := *user
	f.users = append(f.users, &stored)
	return nil
}

func (f *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// FindAll pages in score order, like the real listing.
func (f *fakeUserRepo) FindAll(page, limit int) ([]model.User, int64, error) {
	ordered := f.sortedBy(func(a, b *model.User) bool { return a.Score > b.Score })
	total := int64(len(ordered))
	return pageOf(ordered, page, limit), total, nil
}

// FindAllByID pages in id order, like the real bulk-walk query.
func (f *fakeUserRepo) FindAllByID(page, limit int) ([]model.User, error) {
	ordered := f.sortedBy(func(a, b *model.User) bool { return a.ID < b.ID })
	return pageOf(ordered, page, limit), nil
}

func (f *fakeUserRepo) sortedBy(less func(a, b *model.User) bool) []*model.User {
	ordered := append([]*model.User(nil), f.users...)
	sort.SliceStable(ordered, func(i, j int) bool { return less(ordered[i], ordered[j]) })
	return ordered
}

func pageOf(ordered []*model.User, page, limit int) []model.User {
	start := (page - 1) * limit
	if start < 0 || start > len(ordered) {
		return nil
	}
	end := start + limit
	if end > len(ordered) {
		end = len(ordered)
	}
	out := make([]model.User, 0, end-start)
	for _, u := range ordered[start:end] {
		out = append(out, *u)
	}
	return out
}

func (f *fakeUserRepo) Update(user *model.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			stored := *user
			f.users[i] = &stored
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret-key-that-is-long-enough",
			ExpireTime: time.Hour,
		},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAuthService(users, authTestConfig())

	user, err := svc.Register(RegisterRequest{Name: "Team Rocket", Email: "rocket@example.com", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != model.RoleUser {
		t.Fatalf("registered users default to the user role, got %q", user.Role)
	}
	if user.Password == "hunter2hunter2" {
		t.Fatal("password must be stored hashed")
	}

	_, err = svc.Register(RegisterRequest{Name: "Copycat", Email: "rocket@example.com", Password: "hunter2hunter2"})
	expectAPIError(t, err, 400, "The email is already taken")

	token, logged, err := svc.Login("rocket@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("login returned wrong user %d", logged.ID)
	}

	claims, err := util.ParseJWT(token, "test-secret-key-that-is-long-enough")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != "rocket@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAuthService(users, authTestConfig())

	if _, err := svc.Register(RegisterRequest{Name: "Team Rocket", Email: "rocket@example.com", Password: "hunter2hunter2"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login("rocket@example.com", "wrong-password")
	expectAPIError(t, err, 401, "Invalid credentials")

	// Unknown accounts and wrong passwords are indistinguishable.
	_, _, err = svc.Login("nobody@example.com", "hunter2hunter2")
	expectAPIError(t, err, 401, "Invalid credentials")
}

func TestChangePassword(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAuthService(users, authTestConfig())

	user, err := svc.Register(RegisterRequest{Name: "Team Rocket", Email: "rocket@example.com", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	err = svc.ChangePassword(user.ID, "not-the-password", "a-new-password")
	expectAPIError(t, err, 400, "Current password is incorrect")

	if err := svc.ChangePassword(user.ID, "hunter2hunter2", "a-new-password"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, _, err := svc.Login("rocket@example.com", "a-new-password"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	_, _, err = svc.Login("rocket@example.com", "hunter2hunter2")
	expectAPIError(t, err, 401, "Invalid credentials")
}
