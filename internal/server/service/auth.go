package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/config"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/crypto"
	serr "github.com/Ruthu543/Pneumonia-Prediction/internal/shared/errors"
)

// AuthService реализует бизнес-логику аутентификации и браузерных сессий.
//
// Ответственность:
//   - регистрация пользователей (с проверкой подтверждения пароля)
//   - аутентификация (логин)
//   - выпуск подписанного сессионного токена (cookie)
//   - отзыв сессии при logout
type AuthService struct {
	users    UsersRepo
	sessions SessionsRepo

	pass crypto.Argon2Params
	jwt  crypto.JWTConfig

	sessionTTL time.Duration
}

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, sessions SessionsRepo, cfg *config.Config) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,

		pass: crypto.Argon2Params{
			Time:      cfg.Password.Argon2.Time,
			MemoryKiB: cfg.Password.Argon2.MemoryKiB,
			Threads:   cfg.Password.Argon2.Threads,
			KeyLen:    cfg.Password.Argon2.KeyLen,
			SaltLen:   cfg.Password.Argon2.SaltLen,
		},
		jwt: crypto.JWTConfig{
			Issuer:     cfg.Auth.Issuer,
			Audience:   cfg.Auth.Audience,
			SigningKey: cfg.Auth.JWT.SigningKey,
			SessionTTL: cfg.Auth.SessionTTL,
		},

		sessionTTL: cfg.Auth.SessionTTL,
	}
}

// Register регистрирует нового пользователя.
//
// Валидация:
//   - email обязателен и должен быть валидным
//   - пароль обязателен и длиной >= 8 символов
//   - password и confirm должны совпадать — проверяется ДО любой записи в хранилище
//
// Возвращает:
//   - id пользователя
//   - ErrPasswordMismatch при несовпадении подтверждения
//   - ErrInvalidInput при некорректных данных или ErrAlreadyExists если email уже зарегистрирован
func (s *AuthService) Register(ctx context.Context, name, email, password, confirm string) (uuid.UUID, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	confirm = strings.TrimSpace(confirm)

	if name == "" || email == "" || password == "" || !regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`).MatchString(email) || len(password) < 8 {
		return uuid.Nil, serr.ErrInvalidInput
	}
	if password != confirm {
		return uuid.Nil, serr.ErrPasswordMismatch
	}

	// проверяем занятость email до хеширования
	exists, err := s.users.Exists(ctx, email)
	if err != nil {
		return uuid.Nil, err
	}
	if exists {
		return uuid.Nil, serr.ErrAlreadyExists
	}

	hash, err := crypto.HashPassword(password, s.pass)
	if err != nil {
		return uuid.Nil, serr.ErrInternal
	}
	// 23505 в репозитории всё равно маппится в ErrAlreadyExists:
	// Exists выше не закрывает гонку двух одновременных регистраций
	return s.users.Create(ctx, name, email, hash)
}

// Login аутентифицирует пользователя и выдаёт сессионный токен.
//
// Поведение:
//   - не раскрывает факт существования email
//   - при успехе создаёт серверную запись сессии и подписывает токен с её id в jti
//
// Ошибки:
//   - ErrInvalidInput
//   - ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return "", serr.ErrInvalidInput
	}
	// получаем юзера по email
	userID, _, hash, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// не палим существование email
		if errors.Is(err, serr.ErrNotFound) {
			return "", serr.ErrInvalidCredentials
		}
		return "", err
	}
	// проверяем пароль
	ok, err := crypto.VerifyPassword(password, hash)
	if err != nil {
		return "", serr.ErrInternal
	}
	if !ok {
		return "", serr.ErrInvalidCredentials
	}
	// создаём серверную запись сессии
	sessionID, err := s.sessions.Create(ctx, userID, email, time.Now().Add(s.sessionTTL))
	if err != nil {
		return "", err
	}
	// подписываем токен с jti = id сессии
	token, err := crypto.NewSessionToken(email, sessionID, s.jwt)
	if err != nil {
		return "", serr.ErrInternal
	}

	return token, nil
}

// Logout отзывает серверную запись сессии.
//
// Повторный logout той же сессии не ошибка.
func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	return s.sessions.Revoke(ctx, sessionID)
}
