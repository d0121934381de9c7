package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// UserIDHeader: заголовок, в котором шлюз аутентификации передает пользователя
const UserIDHeader = "X-User-ID"

var ErrUnauthenticated = errors.New("no authenticated user")

// VerifyUser возвращает ID пользователя, проверенного шлюзом аутентификации
func VerifyUser(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.Header.Get(UserIDHeader))
	if raw == "" {
		return 0, ErrUnauthenticated
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("%w: invalid %s header", ErrUnauthenticated, UserIDHeader)
	}
	return userID, nil
}
