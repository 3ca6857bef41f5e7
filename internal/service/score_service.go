package service

import (
	"context"
	"strconv"

	"bashaway_backend/internal/model"

	"github.com/go-redis/redis/v8"
)

const leaderboardKey = "bashaway:leaderboard"

// ScoreRepository is the user-score persistence the score service needs.
type ScoreRepository interface {
	FindByID(id uint) (*model.User, error)
	UpdateScore(userID uint, score int) error
	SumSubmissionScores(userID uint) (int, error)
	FindTopByScore(limit int) ([]model.User, error)
}

// ScoreService keeps user totals in sync with graded submissions and mirrors
// them into a redis sorted set for cheap leaderboard reads.
// QuestionIDLister exposes the id pluck used to report how many questions a
// leaderboard total is measured against.
type QuestionIDLister interface {
	GetAllQuestionIDs(filter map[string]interface{}) ([]uint, error)
}

type ScoreService struct {
	Users     ScoreRepository
	Questions QuestionIDLister
	Redis     *redis.Client
}

func NewScoreService(users ScoreRepository, questions QuestionIDLister, rdb *redis.Client) *ScoreService {
	return &ScoreService{Users: users, Questions: questions, Redis: rdb}
}

// RecomputeScore sums a user's graded submissions, stores the total, and
// updates the leaderboard entry.
func (s *ScoreService) RecomputeScore(ctx context.Context, userID uint) (int, error) {
	total, err := s.Users.SumSubmissionScores(userID)
	if err != nil {
		return 0, err
	}

	if err := s.Users.UpdateScore(userID, total); err != nil {
		return 0, err
	}

	if s.Redis != nil {
		err = s.Redis.ZAdd(ctx, leaderboardKey, &redis.Z{
			Score:  float64(total),
			Member: strconv.FormatUint(uint64(userID), 10),
		}).Err()
		if err != nil {
			return 0, err
		}
	}

	return total, nil
}

// EnabledQuestionCount reports how many questions currently accept
// submissions, shown alongside the leaderboard.
func (s *ScoreService) EnabledQuestionCount() (int, error) {
	ids, err := s.Questions.GetAllQuestionIDs(map[string]interface{}{"enabled": true})
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

type LeaderboardEntry struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
}

// Leaderboard reads the top entries from redis, falling back to the database
// (and backfilling the sorted set) when the set is empty.
func (s *ScoreService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 25
	}

	if s.Redis != nil {
		members, err := s.Redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
		if err != nil && err != redis.Nil {
			return nil, err
		}
		if len(members) > 0 {
			entries := make([]LeaderboardEntry, 0, len(members))
			for _, m := range members {
				id, err := strconv.ParseUint(m.Member.(string), 10, 32)
				if err != nil {
					continue
				}
				user, err := s.Users.FindByID(uint(id))
				if err != nil {
					continue
				}
				entries = append(entries, LeaderboardEntry{
					UserID: user.ID,
					Name:   user.Name,
					Score:  int(m.Score),
				})
			}
			return entries, nil
		}
	}

	users, err := s.Users.FindTopByScore(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = LeaderboardEntry{UserID: user.ID, Name: user.Name, Score: user.Score}
		if s.Redis != nil {
			s.Redis.ZAdd(ctx, leaderboardKey, &redis.Z{
				Score:  float64(user.Score),
				Member: strconv.FormatUint(uint64(user.ID), 10),
			})
		}
	}
	return entries, nil
}
