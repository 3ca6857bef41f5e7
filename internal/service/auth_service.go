package service

import (
	"errors"
	"net/http"

	"bashaway_backend/internal/config"
	"bashaway_backend/internal/model"
	"bashaway_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserRepository is the persistence surface shared by the auth and user
// services.
type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindAll(page, limit int) ([]model.User, int64, error)
	FindAllByID(page, limit int) ([]model.User, error)
	Update(user *model.User) error
}

type AuthService struct {
	Users UserRepository
	Cfg   *config.Config
}

func NewAuthService(users UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		Users: users,
		Cfg:   cfg,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (s *AuthService) Register(req RegisterRequest) (*model.User, error) {
	existing, err := s.Users.FindByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, util.NewAPIError(http.StatusBadRequest, "The email is already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     model.RoleUser,
	}
	if err := s.Users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.Users.FindByEmail(email)
	if err != nil {
		return "", nil, util.NewAPIError(http.StatusUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.NewAPIError(http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return util.NewAPIError(http.StatusBadRequest, "Current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashedPassword)
	return s.Users.Update(user)
}
