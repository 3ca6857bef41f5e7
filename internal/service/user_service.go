package service

import (
	"context"
	"errors"
	"net/http"

	"bashaway_backend/internal/model"
	"bashaway_backend/internal/util"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type UserService struct {
	Users  UserRepository
	Scores ScoreUpdater
}

func NewUserService(users UserRepository, scores ScoreUpdater) *UserService {
	return &UserService{Users: users, Scores: scores}
}

func (s *UserService) ListUsers(page, limit int) ([]model.User, int64, error) {
	return s.Users.FindAll(page, limit)
}

func (s *UserService) GetUser(id uint) (*model.User, error) {
	user, err := s.Users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewAPIError(http.StatusBadRequest, "User doesn't exist")
		}
		return nil, err
	}
	return user, nil
}

// RecomputeUserScore recalculates one user's total from graded submissions.
func (s *UserService) RecomputeUserScore(ctx context.Context, id uint) (int, error) {
	if _, err := s.GetUser(id); err != nil {
		return 0, err
	}
	return s.Scores.RecomputeScore(ctx, id)
}

// RecomputeAllScores walks every user and recalculates their totals, pages at
// a time, the recomputations within a page running concurrently. The walk
// pages in id order; the score ordering would shift users across page
// boundaries as their totals change.
func (s *UserService) RecomputeAllScores(ctx context.Context) (int, error) {
	const pageSize = 100

	updated := 0
	for page := 1; ; page++ {
		users, err := s.Users.FindAllByID(page, pageSize)
		if err != nil {
			return updated, err
		}
		if len(users) == 0 {
			break
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, user := range users {
			userID := user.ID
			g.Go(func() error {
				_, err := s.Scores.RecomputeScore(gctx, userID)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return updated, err
		}

		updated += len(users)
		if len(users) < pageSize {
			break
		}
	}
	return updated, nil
}
