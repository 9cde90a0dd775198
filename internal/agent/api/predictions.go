// В этом файле описаны методы клиента для работы
// с эндпоинтами предсказаний: загрузка снимка и просмотр журнала.
package api

import "io"

// UploadResponse описывает ответ сервера после классификации снимка.
type UploadResponse struct {
	Filename   string  `json:"filename"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Record — одна запись журнала предсказаний.
type Record struct {
	Filename   string  `json:"filename"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Timestamp  string  `json:"timestamp"`
}

// RecordsResponse описывает ответ сервера со списком записей пользователя.
type RecordsResponse struct {
	Records []Record `json:"records"`
}

// Upload отправляет снимок на классификацию.
//
// Метод отправляет multipart POST-запрос на /api/upload (файловое поле "image")
// и возвращает метку с уверенностью. Требует сессионный токен.
func (c *Client) Upload(filename string, file io.Reader, token string) (UploadResponse, error) {
	var resp UploadResponse
	err := c.PostMultipart("/api/upload", "image", filename, file, &resp, token)
	return resp, err
}

// Records запрашивает журнал предсказаний текущего пользователя.
//
// Метод отправляет GET-запрос на /api/records. Требует сессионный токен.
// Записи возвращаются в порядке добавления.
func (c *Client) Records(token string) (RecordsResponse, error) {
	var resp RecordsResponse
	err := c.GetJSON("/api/records", &resp, token)
	return resp, err
}
