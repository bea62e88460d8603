package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/api/handlers"
)

type contextKey string

const draftTokenKey contextKey = "draftToken"

// SessionTokenHeader заголовок, которым клиент подтверждает владение токеном
const SessionTokenHeader = "X-Session-Token"

// SessionToken проверяет формат токена черновика в пути запроса,
// сверяет его с заголовком X-Session-Token и кладёт токен в контекст.
// Токен выдаётся при создании черновика, угадать чужой токен перебором
// нельзя: это UUIDv4
func SessionToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := mux.Vars(r)["token"]

		if _, err := uuid.Parse(token); err != nil {
			handlers.RespondBadRequest(w, "invalid draft token")
			return
		}

		// Токен должен прийти и в пути, и в заголовке: защита от подстановки
		// чужого токена в URL сторонней страницей
		if r.Header.Get(SessionTokenHeader) != token {
			handlers.RespondUnauthorized(w, "session token mismatch")
			return
		}

		ctx := context.WithValue(r.Context(), draftTokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetDraftToken извлекает токен черновика из контекста
func GetDraftToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(draftTokenKey).(string)
	return token, ok
}
