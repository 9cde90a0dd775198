package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStore — файловое хранилище в пределах одной директории.
//
// baseURL — префикс, под которым директория раздаётся как static
// (например "/static/uploads").
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore создаёт хранилище и саму директорию, если её ещё нет.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir, baseURL: baseURL}, nil
}

// Dir возвращает директорию хранилища (нужна роутеру для FileServer).
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save пишет объект на диск, затирая существующий файл с тем же именем.
func (s *LocalStore) Save(_ context.Context, name string, r io.Reader) error {
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Open открывает сохранённый объект.
func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.dir, name))
}

// URL возвращает static-путь объекта относительно корня сервера.
func (s *LocalStore) URL(_ context.Context, name string) (string, error) {
	return s.baseURL + "/" + name, nil
}
