package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestAsAPIError(t *testing.T) {
	base := NewAPIError(http.StatusForbidden, "You are not authorized to update this question")

	got, ok := AsAPIError(base)
	if !ok || got.Status != http.StatusForbidden {
		t.Fatalf("expected direct match, got %v %v", got, ok)
	}

	wrapped := fmt.Errorf("update question: %w", base)
	got, ok = AsAPIError(wrapped)
	if !ok || got.Message != base.Message {
		t.Fatalf("expected unwrap through fmt.Errorf, got %v %v", got, ok)
	}

	if _, ok := AsAPIError(errors.New("disk on fire")); ok {
		t.Fatal("plain errors must not match")
	}
}

func TestTranslateDuplicateKey(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{
			name:    "question name index",
			err:     &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'two-sum' for key 'questions.idx_questions_name'"},
			message: "The name is already taken",
		},
		{
			name:    "user email index",
			err:     &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'users.idx_users_email'"},
			message: "The email is already taken",
		},
		{
			name:    "unparseable message",
			err:     &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x'"},
			message: "A record with these details already exists",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateDuplicateKey(fmt.Errorf("insert: %w", tt.err))
			if got == nil {
				t.Fatal("expected a translated error")
			}
			if got.Status != http.StatusBadRequest || got.Message != tt.message {
				t.Fatalf("got %+v", got)
			}
		})
	}
}

func TestTranslateDuplicateKeyIgnoresOtherErrors(t *testing.T) {
	if got := TranslateDuplicateKey(errors.New("connection refused")); got != nil {
		t.Fatalf("plain error translated: %+v", got)
	}
	if got := TranslateDuplicateKey(&mysql.MySQLError{Number: 1452, Message: "foreign key fails"}); got != nil {
		t.Fatalf("non-duplicate mysql error translated: %+v", got)
	}
	if got := TranslateDuplicateKey(nil); got != nil {
		t.Fatalf("nil error translated: %+v", got)
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	if err != nil || id != 42 {
		t.Fatalf("ParseID(42) = %d, %v", id, err)
	}

	for _, bad := range []string{"", "0", "-1", "abc", "12.5", "64d0c3f2a1b2c3d4e5f6a7b8"} {
		if _, err := ParseID(bad); err == nil {
			t.Errorf("ParseID(%q) should fail", bad)
		} else if apiErr, ok := AsAPIError(err); !ok || apiErr.Status != http.StatusBadRequest || apiErr.Message != "invalid id" {
			t.Errorf("ParseID(%q) = %v, want 400 invalid id", bad, err)
		}
	}
}
