package utils

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidID = errors.New("invalid id")

// FormatID renders a database identity the way it is exposed over the API.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ParseID accepts the string form produced by FormatID, surrounding
// whitespace is ignored.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}
