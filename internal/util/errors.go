package util

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Masked message returned for unexpected failures.
const maskedErrorMessage = "Just patching things up. This'll be over in a jiffy!"

// APIError is a domain or authorization violation carried as a value from the
// service layer to the HTTP boundary. It is expected and recoverable, unlike
// infrastructure failures which stay plain errors.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

const mysqlDuplicateEntry = 1062

// TranslateDuplicateKey turns a MySQL duplicate-key violation into a
// descriptive 400 so the caller learns which field collided. Returns nil for
// anything else.
func TranslateDuplicateKey(err error) *APIError {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != mysqlDuplicateEntry {
		return nil
	}

	field := duplicateKeyField(mysqlErr.Message)
	if field == "" {
		return NewAPIError(http.StatusBadRequest, "A record with these details already exists")
	}
	return NewAPIError(http.StatusBadRequest, fmt.Sprintf("The %s is already taken", field))
}

// duplicateKeyField digs the column name out of a message like
// "Duplicate entry 'foo' for key 'questions.idx_questions_name'".
func duplicateKeyField(message string) string {
	idx := strings.LastIndex(message, "for key '")
	if idx < 0 {
		return ""
	}
	key := strings.TrimSuffix(message[idx+len("for key '"):], "'")
	if dot := strings.LastIndex(key, "."); dot >= 0 {
		key = key[dot+1:]
	}
	key = strings.TrimPrefix(key, "idx_")
	if us := strings.LastIndex(key, "_"); us >= 0 {
		key = key[us+1:]
	}
	return key
}
