package repository

import (
	"bashaway_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindAll(page, limit int) ([]model.User, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}

	var total int64
	if err := r.DB.Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	offset := (page - 1) * limit
	err := r.DB.Order("score DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

// FindAllByID pages users in id order. Bulk walks that rewrite scores must
// use this: paging on the score ordering would shift users across page
// boundaries as their scores change.
func (r *UserRepository) FindAllByID(page, limit int) ([]model.User, error) {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}

	var users []model.User
	offset := (page - 1) * limit
	err := r.DB.Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateScore(userID uint, score int) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("score", score).
		Error
}

// SumSubmissionScores recomputes a user's score from their graded
// submissions.
func (r *UserRepository) SumSubmissionScores(userID uint) (int, error) {
	var total int
	err := r.DB.Model(&model.Submission{}).
		Where("user_id = ? AND graded = ?", userID, true).
		Select("COALESCE(SUM(score), 0)").
		Scan(&total).
		Error
	return total, err
}

func (r *UserRepository) FindTopByScore(limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("score DESC").Limit(limit).Find(&users).Error
	return users, err
}
