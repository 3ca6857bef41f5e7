package service

import (
	"net/http"

	"bashaway_backend/internal/model"
	"bashaway_backend/internal/repository"
	"bashaway_backend/internal/util"

	"golang.org/x/sync/errgroup"
)

// QuestionRepository is the persistence surface the question service needs.
type QuestionRepository interface {
	FindAllQuestions(userID uint, query repository.QuestionQuery) ([]model.Question, *repository.PageInfo, error)
	InsertQuestion(question *model.Question) error
	FindQuestion(filter map[string]interface{}) (*model.Question, error)
	GetQuestionByID(id uint, userID uint, filterFields bool) ([]model.Question, error)
	GetAllQuestionIDs(filter map[string]interface{}) ([]uint, error)
	FindAndUpdateQuestion(filter map[string]interface{}, data map[string]interface{}) (*model.Question, error)
	DeleteAQuestion(filter map[string]interface{}) (int64, error)
	GetMaxScore(questionID uint) (int, error)
}

// SubmissionReader is the slice of the submission repository used to derive
// question attributes.
type SubmissionReader interface {
	GetOneSubmission(filter map[string]interface{}) (*model.Submission, error)
	GetSubmissions(filter map[string]interface{}, page, limit int) ([]model.Submission, int64, error)
}

type QuestionService struct {
	Questions   QuestionRepository
	Submissions SubmissionReader
}

func NewQuestionService(questions QuestionRepository, submissions SubmissionReader) *QuestionService {
	return &QuestionService{
		Questions:   questions,
		Submissions: submissions,
	}
}

type QuestionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Constraints string `json:"constraints"`
	MaxScore    int    `json:"max_score" binding:"required"`
	Enabled     bool   `json:"enabled"`
	CreatorLock bool   `json:"creator_lock"`
}

// UpdateQuestionRequest carries a partial update; only non-nil fields touch
// the stored question.
type UpdateQuestionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Constraints *string `json:"constraints"`
	MaxScore    *int    `json:"max_score"`
	Enabled     *bool   `json:"enabled"`
	CreatorLock *bool   `json:"creator_lock"`
}

// QuestionWithAttributes is a question plus its submission-derived attributes.
type QuestionWithAttributes struct {
	model.Question
	SubmissionCount int64 `json:"submission_count"`
	Submitted       bool  `json:"submitted"`
}

// RetrieveAllQuestions lists visible questions and attaches submission
// attributes to every entry concurrently. A single attachment failure fails
// the whole listing; there are no partial results.
func (s *QuestionService) RetrieveAllQuestions(user *util.Claims, query repository.QuestionQuery) ([]QuestionWithAttributes, *repository.PageInfo, error) {
	questions, page, err := s.Questions.FindAllQuestions(user.UserID, query)
	if err != nil {
		return nil, nil, err
	}

	augmented := make([]QuestionWithAttributes, len(questions))

	var g errgroup.Group
	for i := range questions {
		i := i
		g.Go(func() error {
			return s.attachSubmissionAttributes(&augmented[i], questions[i], user.UserID)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return augmented, page, nil
}

func (s *QuestionService) attachSubmissionAttributes(dst *QuestionWithAttributes, question model.Question, userID uint) error {
	_, total, err := s.Submissions.GetSubmissions(map[string]interface{}{"question_id": question.ID}, 1, 1)
	if err != nil {
		return err
	}

	own, err := s.Submissions.GetOneSubmission(map[string]interface{}{
		"question_id": question.ID,
		"user_id":     userID,
	})
	if err != nil {
		return err
	}

	dst.Question = question
	dst.SubmissionCount = total
	dst.Submitted = own != nil
	return nil
}

// CreateQuestion stamps the caller as creator and persists. Duplicate names
// are left to the unique index; the boundary layer translates the violation.
func (s *QuestionService) CreateQuestion(req QuestionRequest, user *util.Claims) (*model.Question, error) {
	question := &model.Question{
		Name:        req.Name,
		Description: req.Description,
		Constraints: req.Constraints,
		MaxScore:    req.MaxScore,
		Enabled:     req.Enabled,
		CreatorID:   user.UserID,
		CreatorLock: req.CreatorLock,
	}

	if err := s.Questions.InsertQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

// RetrieveQuestion fetches one visible question with submission attributes.
// Absence and lack of permission are indistinguishable to the caller, and the
// status is 400 rather than 404 to match the established API contract.
func (s *QuestionService) RetrieveQuestion(id uint, user *util.Claims) (*QuestionWithAttributes, error) {
	results, err := s.Questions.GetQuestionByID(id, user.UserID, true)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, util.NewAPIError(http.StatusBadRequest, "Question doesn't exist or you do not have permission to view this question")
	}

	var augmented QuestionWithAttributes
	if err := s.attachSubmissionAttributes(&augmented, results[0], user.UserID); err != nil {
		return nil, err
	}
	return &augmented, nil
}

// UpdateQuestionByID runs the update guards in a fixed order, short-circuiting
// on the first violation: existence, name collision, creator lock, max_score
// immutability once submissions exist.
func (s *QuestionService) UpdateQuestionByID(id uint, req UpdateQuestionRequest, user *util.Claims) (*model.Question, error) {
	question, err := s.Questions.FindQuestion(map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, util.NewAPIError(http.StatusBadRequest, "Question doesn't exist to update")
	}

	if req.Name != nil && *req.Name != "" {
		check, err := s.Questions.FindQuestion(map[string]interface{}{"name": *req.Name})
		if err != nil {
			return nil, err
		}
		if check != nil && check.ID != id {
			return nil, util.NewAPIError(http.StatusBadRequest, "Question name already taken")
		}
	}

	if question.CreatorLock && question.CreatorID != user.UserID {
		return nil, util.NewAPIError(http.StatusForbidden, "You are not authorized to update this question")
	}

	if req.MaxScore != nil {
		_, total, err := s.Submissions.GetSubmissions(map[string]interface{}{"question_id": id}, 1, 1)
		if err != nil {
			return nil, err
		}
		if total > 0 {
			return nil, util.NewAPIError(http.StatusBadRequest, "Cannot update question with submissions")
		}
	}

	data := map[string]interface{}{}
	if req.Name != nil {
		data["name"] = *req.Name
	}
	if req.Description != nil {
		data["description"] = *req.Description
	}
	if req.Constraints != nil {
		data["constraints"] = *req.Constraints
	}
	if req.MaxScore != nil {
		data["max_score"] = *req.MaxScore
	}
	if req.Enabled != nil {
		data["enabled"] = *req.Enabled
	}
	if req.CreatorLock != nil {
		data["creator_lock"] = *req.CreatorLock
	}
	if len(data) == 0 {
		return question, nil
	}

	return s.Questions.FindAndUpdateQuestion(map[string]interface{}{"id": id}, data)
}

// DeleteQuestion removes a question that is disabled, submission-free, and
// mutable by the caller. Existence is checked before anything else is read
// off the row.
func (s *QuestionService) DeleteQuestion(id uint, user *util.Claims) (int64, error) {
	question, err := s.Questions.FindQuestion(map[string]interface{}{"id": id})
	if err != nil {
		return 0, err
	}
	if question == nil {
		return 0, util.NewAPIError(http.StatusBadRequest, "Question doesn't exist to remove")
	}

	checkSubmission, err := s.Submissions.GetOneSubmission(map[string]interface{}{"question_id": id})
	if err != nil {
		return 0, err
	}

	if question.Enabled {
		return 0, util.NewAPIError(http.StatusBadRequest, "Failed to delete question/ Question is active")
	}

	if checkSubmission != nil {
		return 0, util.NewAPIError(http.StatusBadRequest, "Failed to delete question/ Question already has a submission")
	}

	if question.CreatorLock && question.CreatorID != user.UserID {
		return 0, util.NewAPIError(http.StatusForbidden, "You are not authorized to delete this question")
	}

	return s.Questions.DeleteAQuestion(map[string]interface{}{"id": id})
}

// UpdateQuestionAttachment stores an uploaded attachment URL on the question,
// subject to the same existence and creator-lock guards as any mutation.
func (s *QuestionService) UpdateQuestionAttachment(id uint, url string, user *util.Claims) (*model.Question, error) {
	question, err := s.Questions.FindQuestion(map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, util.NewAPIError(http.StatusBadRequest, "Question doesn't exist to update")
	}

	if question.CreatorLock && question.CreatorID != user.UserID {
		return nil, util.NewAPIError(http.StatusForbidden, "You are not authorized to update this question")
	}

	return s.Questions.FindAndUpdateQuestion(
		map[string]interface{}{"id": id},
		map[string]interface{}{"attachment": url},
	)
}
