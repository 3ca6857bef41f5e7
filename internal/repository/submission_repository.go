package repository

import (
	"errors"

	"bashaway_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(submission *model.Submission) error {
	return r.DB.Create(submission).Error
}

// GetOneSubmission returns the first match for the filter, or nil when there
// is none.
func (r *SubmissionRepository) GetOneSubmission(filter map[string]interface{}) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Where(filter).First(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// GetSubmissions returns one page of matches plus the total count.
func (r *SubmissionRepository) GetSubmissions(filter map[string]interface{}, page, limit int) ([]model.Submission, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}

	var total int64
	if err := r.DB.Model(&model.Submission{}).Where(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var submissions []model.Submission
	offset := (page - 1) * limit
	err := r.DB.Model(&model.Submission{}).
		Where(filter).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&submissions).Error
	return submissions, total, err
}

func (r *SubmissionRepository) FindByID(id uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.First(&submission, id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *SubmissionRepository) Update(submission *model.Submission) error {
	return r.DB.Save(submission).Error
}
