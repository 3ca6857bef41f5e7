package service

import (
	"context"
	"testing"

	"bashaway_backend/internal/model"

	"gorm.io/gorm"
)

type fakeScoreRepo struct {
	users  map[uint]*model.User
	sums   map[uint]int
	stored map[uint]int
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{
		users:  map[uint]*model.User{},
		sums:   map[uint]int{},
		stored: map[uint]int{},
	}
}

func (f *fakeScoreRepo) FindByID(id uint) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeScoreRepo) UpdateScore(userID uint, score int) error {
	f.stored[userID] = score
	if u, ok := f.users[userID]; ok {
		u.Score = score
	}
	return nil
}

func (f *fakeScoreRepo) SumSubmissionScores(userID uint) (int, error) {
	return f.sums[userID], nil
}

func (f *fakeScoreRepo) FindTopByScore(limit int) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Score > out[i].Score {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func TestRecomputeScoreStoresSum(t *testing.T) {
	repo := newFakeScoreRepo()
	user := &model.User{Name: "Team Rocket"}
	user.ID = 2
	repo.users[2] = user
	repo.sums[2] = 175

	svc := NewScoreService(repo, &fakeQuestionRepo{}, nil)

	total, err := svc.RecomputeScore(context.Background(), 2)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if total != 175 {
		t.Fatalf("expected 175, got %d", total)
	}
	if repo.stored[2] != 175 {
		t.Fatalf("total not persisted, stored %v", repo.stored)
	}
}

func TestLeaderboardFallsBackToDatabase(t *testing.T) {
	repo := newFakeScoreRepo()
	for i, score := range []int{40, 90, 10} {
		u := &model.User{Name: string(rune('a' + i)), Score: score}
		u.ID = uint(i + 1)
		repo.users[u.ID] = u
	}

	svc := NewScoreService(repo, &fakeQuestionRepo{}, nil)

	entries, err := svc.Leaderboard(context.Background(), 2)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Score != 90 || entries[1].Score != 40 {
		t.Fatalf("expected descending scores, got %+v", entries)
	}
}

func TestEnabledQuestionCount(t *testing.T) {
	questions := &fakeQuestionRepo{}
	questions.InsertQuestion(&model.Question{Name: "on", Enabled: true})
	questions.InsertQuestion(&model.Question{Name: "off"})

	svc := NewScoreService(newFakeScoreRepo(), questions, nil)

	n, err := svc.EnabledQuestionCount()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 enabled question, got %d", n)
	}
}
