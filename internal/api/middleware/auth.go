package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ClassroomService/internal/api/handlers"
	"github.com/m04kA/SMC-ClassroomService/internal/domain"
)

// Заголовки идентификации, проставляемые API-шлюзом после аутентификации
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserName  = "X-User-Name"
	HeaderUserEmail = "X-User-Email"
	HeaderUserRole  = "X-User-Role"
)

const (
	msgMissingIdentity = "отсутствуют заголовки идентификации пользователя"
	msgInvalidIdentity = "некорректные заголовки идентификации пользователя"
)

type userContextKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth извлекает пользователя из заголовков шлюза и кладет его в контекст.
// Запросы без корректной идентификации отклоняются
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawID := r.Header.Get(HeaderUserID)
			if rawID == "" {
				logger.Warn("auth: missing %s header for %s %s", HeaderUserID, r.Method, r.URL.Path)
				handlers.RespondError(w, http.StatusUnauthorized, msgMissingIdentity)
				return
			}

			userID, err := strconv.ParseInt(rawID, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("auth: invalid %s header %q for %s %s", HeaderUserID, rawID, r.Method, r.URL.Path)
				handlers.RespondError(w, http.StatusUnauthorized, msgInvalidIdentity)
				return
			}

			role := domain.UserRole(r.Header.Get(HeaderUserRole))
			if role == "" {
				role = domain.RoleStudent
			}
			if !role.IsValid() {
				logger.Warn("auth: unknown role %q for user=%d", role, userID)
				handlers.RespondError(w, http.StatusUnauthorized, msgInvalidIdentity)
				return
			}

			user := domain.User{
				ID:          userID,
				DisplayName: r.Header.Get(HeaderUserName),
				Email:       r.Header.Get(HeaderUserEmail),
				Role:        role,
			}

			ctx := context.WithValue(r.Context(), userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext возвращает пользователя, положенного Auth middleware
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(domain.User)
	return user, ok
}
