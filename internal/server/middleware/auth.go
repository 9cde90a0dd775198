// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// identityKey — ключ контекста, под которым хранится email аутентифицированного пользователя.
const identityKey ctxKey = "identity"

// sessionIDKey — ключ контекста с id серверной записи сессии (jti токена).
const sessionIDKey ctxKey = "session_id"

// SessionChecker — минимально нужное от репозитория сессий:
// проверка, что сессия существует, не истекла и не отозвана.
type SessionChecker interface {
	GetByID(ctx context.Context, id uuid.UUID) (email string, expiresAt time.Time, revokedAt *time.Time, err error)
}

// SessionVerifier инкапсулирует проверку сессионных токенов.
//
// Используется в HTTP middleware для:
//   - проверки подписи токена из cookie (или Bearer-заголовка для JSON API)
//   - валидации issuer и audience
//   - проверки серверной записи сессии по claims.ID (jti)
//   - извлечения идентичности (email) из claims.Subject
type SessionVerifier struct {
	SigningKey string // симметричный ключ для подписи (HS256)
	Issuer     string // ожидаемый issuer (опционально)
	Audience   string // ожидаемая audience (опционально)
	CookieName string // имя сессионного cookie

	Sessions SessionChecker
}

// NewSessionVerifier создаёт новый SessionVerifier с заданными параметрами.
func NewSessionVerifier(signingKey, issuer, audience, cookieName string, sessions SessionChecker) *SessionVerifier {
	return &SessionVerifier{
		SigningKey: signingKey,
		Issuer:     issuer,
		Audience:   audience,
		CookieName: cookieName,
		Sessions:   sessions,
	}
}

// IdentityFromContext извлекает email аутентифицированного пользователя из контекста.
//
// Возвращает:
//   - email
//   - false, если пользователь не аутентифицирован
func IdentityFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(identityKey)
	s, ok := v.(string)
	return s, ok
}

// SessionIDFromContext извлекает id текущей сессии из контекста.
func SessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v := ctx.Value(sessionIDKey)
	id, ok := v.(uuid.UUID)
	return id, ok
}

// PageAuth возвращает middleware для браузерных маршрутов.
//
// Отсутствие валидной сессии — это переход в Anonymous:
// пользователь отправляется на /login редиректом, а не получает 401.
func (v *SessionVerifier) PageAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, sessionID, _, ok := v.verify(r)
			if !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), email, sessionID)))
		})
	}
}

// APIAuth возвращает middleware для JSON-маршрутов (CLI-клиент).
//
// В случае ошибки возвращает HTTP 401 Unauthorized.
func (v *SessionVerifier) APIAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, sessionID, msg, ok := v.verify(r)
			if !ok {
				http.Error(w, msg, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), email, sessionID)))
		})
	}
}

// Optional возвращает middleware, которое проставляет идентичность в контекст,
// если токен валиден, и молча пропускает запрос дальше, если нет.
//
// Нужно маршрутам вроде /download_pdf и /logout: они читают email сессии,
// но не требуют её наличия.
func (v *SessionVerifier) Optional() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if email, sessionID, _, ok := v.verify(r); ok {
				r = r.WithContext(withSession(r.Context(), email, sessionID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func withSession(ctx context.Context, email string, sessionID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, identityKey, email)
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// verify выполняет полную проверку токена запроса.
//
// Возвращает email, id сессии, сообщение об ошибке для клиента и флаг успеха.
func (v *SessionVerifier) verify(r *http.Request) (string, uuid.UUID, string, bool) {
	tokenStr := v.extractToken(r)
	if tokenStr == "" {
		return "", uuid.Nil, "missing session token", false
	}

	claims := &jwt.RegisteredClaims{}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	_, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(v.SigningKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", uuid.Nil, "session expired", false
		}
		return "", uuid.Nil, "invalid session token", false
	}

	if v.Issuer != "" && claims.Issuer != v.Issuer {
		return "", uuid.Nil, "invalid token issuer", false
	}

	if v.Audience != "" {
		ok := false
		for _, aud := range claims.Audience {
			if aud == v.Audience {
				ok = true
				break
			}
		}
		if !ok {
			return "", uuid.Nil, "invalid token audience", false
		}
	}

	email := strings.TrimSpace(claims.Subject)
	if email == "" {
		return "", uuid.Nil, "invalid token subject", false
	}

	sessionID, err := uuid.Parse(claims.ID)
	if err != nil {
		return "", uuid.Nil, "invalid token id", false
	}

	// сверяем с серверной записью: logout отзывает сессию раньше exp токена
	_, expiresAt, revokedAt, err := v.Sessions.GetByID(r.Context(), sessionID)
	if err != nil {
		return "", uuid.Nil, "unknown session", false
	}
	if revokedAt != nil || expiresAt.Before(time.Now()) {
		return "", uuid.Nil, "session expired", false
	}

	return email, sessionID, "", true
}

// extractToken читает токен из cookie либо из заголовка Authorization.
func (v *SessionVerifier) extractToken(r *http.Request) string {
	if c, err := r.Cookie(v.CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return ExtractBearer(r.Header.Get("Authorization"))
}

// ExtractBearer извлекает токен из заголовка Authorization.
//
// Ожидаемый формат:
//
//	Authorization: Bearer <token>
//
// Возвращает пустую строку, если формат некорректен.
func ExtractBearer(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
