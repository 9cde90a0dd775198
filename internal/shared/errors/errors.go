// Package errors содержит общие доменные ошибки приложения.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы либо на inline-сообщения форм в api слое.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Форма пришла битой и не распарсилась
	ErrBadForm = errors.New("bad form")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
)

var (
	// Пароль и подтверждение не совпали при регистрации
	ErrPasswordMismatch = errors.New("passwords do not match")
	// Файл не передан или имя файла пустое
	ErrEmptyUpload = errors.New("empty upload")
	// Классификация не удалась (битая картинка, модель недоступна и т.п.)
	ErrInference = errors.New("inference failed")
)

// только для тестов
var (
	// Ожидалась ошибка, но её не было
	ErrExpectedError = errors.New("expected error")
	// Получена непредвиденная ошибка
	ErrUnexpectedError = errors.New("unexpected error")
)
