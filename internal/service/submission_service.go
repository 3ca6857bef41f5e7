package service

import (
	"context"
	"errors"
	"net/http"

	"bashaway_backend/internal/model"
	"bashaway_backend/internal/util"

	"gorm.io/gorm"
)

// SubmissionRepository is the full persistence surface for submissions.
type SubmissionRepository interface {
	SubmissionReader
	Create(submission *model.Submission) error
	FindByID(id uint) (*model.Submission, error)
	Update(submission *model.Submission) error
}

// QuestionReader is the slice of the question repository the submission flow
// needs: visibility-checked lookup and the max_score read used for grading.
type QuestionReader interface {
	GetQuestionByID(id uint, userID uint, filterFields bool) ([]model.Question, error)
	GetMaxScore(questionID uint) (int, error)
}

// ScoreUpdater recomputes and publishes a user's total score after grading.
type ScoreUpdater interface {
	RecomputeScore(ctx context.Context, userID uint) (int, error)
}

type SubmissionService struct {
	Submissions SubmissionRepository
	Questions   QuestionReader
	Scores      ScoreUpdater
}

func NewSubmissionService(submissions SubmissionRepository, questions QuestionReader, scores ScoreUpdater) *SubmissionService {
	return &SubmissionService{
		Submissions: submissions,
		Questions:   questions,
		Scores:      scores,
	}
}

type SubmissionRequest struct {
	QuestionID uint   `json:"question" binding:"required"`
	Link       string `json:"link" binding:"required,url"`
}

// CreateSubmission records an answer against a question the caller can see.
// Disabled questions do not accept submissions.
func (s *SubmissionService) CreateSubmission(req SubmissionRequest, user *util.Claims) (*model.Submission, error) {
	questions, err := s.Questions.GetQuestionByID(req.QuestionID, user.UserID, true)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.NewAPIError(http.StatusBadRequest, "Question doesn't exist or you do not have permission to view this question")
	}
	if !questions[0].Enabled {
		return nil, util.NewAPIError(http.StatusBadRequest, "Question is not accepting submissions")
	}

	submission := &model.Submission{
		QuestionID: req.QuestionID,
		UserID:     user.UserID,
		Link:       req.Link,
	}
	if err := s.Submissions.Create(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// ListSubmissions pages through submissions. Admins see everything;
// everyone else sees only their own.
func (s *SubmissionService) ListSubmissions(user *util.Claims, questionID uint, page, limit int) ([]model.Submission, int64, error) {
	filter := map[string]interface{}{}
	if user.Role != model.RoleAdmin {
		filter["user_id"] = user.UserID
	}
	if questionID != 0 {
		filter["question_id"] = questionID
	}
	return s.Submissions.GetSubmissions(filter, page, limit)
}

type GradeRequest struct {
	Score int `json:"score" binding:"min=0"`
}

// GradeSubmission scores a submission, capped by the question's max_score,
// then recomputes the submitter's total.
func (s *SubmissionService) GradeSubmission(ctx context.Context, id uint, req GradeRequest) (*model.Submission, error) {
	submission, err := s.Submissions.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewAPIError(http.StatusBadRequest, "Submission doesn't exist to grade")
		}
		return nil, err
	}

	maxScore, err := s.Questions.GetMaxScore(submission.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewAPIError(http.StatusBadRequest, "Question doesn't exist")
		}
		return nil, err
	}
	if req.Score > maxScore {
		return nil, util.NewAPIError(http.StatusBadRequest, "Score exceeds the question's maximum score")
	}

	submission.Score = req.Score
	submission.Graded = true
	if err := s.Submissions.Update(submission); err != nil {
		return nil, err
	}

	if _, err := s.Scores.RecomputeScore(ctx, submission.UserID); err != nil {
		return nil, err
	}

	return submission, nil
}
