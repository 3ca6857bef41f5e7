package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"bashaway_backend/internal/model"
)

func TestGetUser(t *testing.T) {
	users := &fakeUserRepo{}
	users.Create(&model.User{Name: "Team Rocket", Email: "rocket@example.com"})
	svc := NewUserService(users, &recordingScoreUpdater{})

	got, err := svc.GetUser(1)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Email != "rocket@example.com" {
		t.Fatalf("unexpected user %+v", got)
	}

	_, err = svc.GetUser(999)
	expectAPIError(t, err, 400, "User doesn't exist")
}

func TestRecomputeUserScore(t *testing.T) {
	users := &fakeUserRepo{}
	users.Create(&model.User{Name: "Team Rocket", Email: "rocket@example.com"})
	scores := &recordingScoreUpdater{total: 150}
	svc := NewUserService(users, scores)

	total, err := svc.RecomputeUserScore(context.Background(), 1)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if total != 150 {
		t.Fatalf("expected total 150, got %d", total)
	}

	_, err = svc.RecomputeUserScore(context.Background(), 999)
	expectAPIError(t, err, 400, "User doesn't exist")
	if calls := scores.calls(); len(calls) != 1 {
		t.Fatalf("missing user must not reach the updater, calls %v", calls)
	}
}

func TestRecomputeAllScores(t *testing.T) {
	users := &fakeUserRepo{}
	// Spread across two pages of the internal page size.
	for i := 0; i < 130; i++ {
		users.Create(&model.User{Name: fmt.Sprintf("u%d", i), Email: fmt.Sprintf("u%d@example.com", i)})
	}
	scores := &recordingScoreUpdater{}
	svc := NewUserService(users, scores)

	updated, err := svc.RecomputeAllScores(context.Background())
	if err != nil {
		t.Fatalf("recompute all: %v", err)
	}
	if updated != 130 {
		t.Fatalf("expected 130 users updated, got %d", updated)
	}

	calls := scores.calls()
	if len(calls) != 130 {
		t.Fatalf("expected 130 recomputations, got %d", len(calls))
	}
	seen := map[uint]bool{}
	for _, id := range calls {
		if seen[id] {
			t.Fatalf("user %d recomputed twice", id)
		}
		seen[id] = true
	}
}

// zeroingScoreUpdater rewrites stored scores to zero as it goes, so a walk
// paged on the score ordering would shift users across page boundaries.
type zeroingScoreUpdater struct {
	mu         sync.Mutex
	repo       *fakeUserRepo
	recomputed map[uint]int
}

func (z *zeroingScoreUpdater) RecomputeScore(_ context.Context, userID uint) (int, error) {
	z.mu.Lock()
	defer z.mu.Unlock()
	for _, u := range z.repo.users {
		if u.ID == userID {
			u.Score = 0
		}
	}
	z.recomputed[userID]++
	return 0, nil
}

func TestRecomputeAllScoresSurvivesShiftingScores(t *testing.T) {
	users := &fakeUserRepo{}
	// Descending stored scores across two pages: every recomputation drops a
	// user to zero, reshuffling any score-ordered listing mid-walk.
	for i := 0; i < 130; i++ {
		users.Create(&model.User{
			Name:  fmt.Sprintf("u%d", i),
			Email: fmt.Sprintf("u%d@example.com", i),
			Score: 1000 - i,
		})
	}
	scores := &zeroingScoreUpdater{repo: users, recomputed: map[uint]int{}}
	svc := NewUserService(users, scores)

	updated, err := svc.RecomputeAllScores(context.Background())
	if err != nil {
		t.Fatalf("recompute all: %v", err)
	}
	if updated != 130 {
		t.Fatalf("expected 130 users updated, got %d", updated)
	}
	if len(scores.recomputed) != 130 {
		t.Fatalf("expected every user recomputed, got %d", len(scores.recomputed))
	}
	for id, n := range scores.recomputed {
		if n != 1 {
			t.Fatalf("user %d recomputed %d times", id, n)
		}
	}
}

func TestRecomputeAllScoresPropagatesFailure(t *testing.T) {
	users := &fakeUserRepo{}
	users.Create(&model.User{Name: "u", Email: "u@example.com"})
	scores := &recordingScoreUpdater{err: errors.New("redis down")}
	svc := NewUserService(users, scores)

	if _, err := svc.RecomputeAllScores(context.Background()); err == nil {
		t.Fatal("updater failure must surface")
	}
}
