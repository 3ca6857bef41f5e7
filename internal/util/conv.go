package util

import (
	"strconv"
)

// ParseID validates a path identifier before it ever reaches the store.
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, NewAPIError(400, "invalid id")
	}
	return uint(id), nil
}
