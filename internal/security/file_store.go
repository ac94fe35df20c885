package security

import (
	"docs-portal/internal/model"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// FileStore : долгоживущее хранилище сессии для терминального клиента (аналог localStorage)
type FileStore struct {
	path string
}

type fileSession struct {
	Token         string      `json:"token,omitempty"`
	User          *model.User `json:"user,omitempty"`
	RegisterEmail string      `json:"registerEmail,omitempty"`
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultSessionPath : ~/.config/docs-portal/session.json
func DefaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "docs-portal", "session.json")
}

// Token : реализует TokenScope
func (s *FileStore) Token() string {
	return s.load().Token
}

func (s *FileStore) User() *model.User {
	return s.load().User
}

func (s *FileStore) RegisterEmail() string {
	return s.load().RegisterEmail
}

func (s *FileStore) Save(token string, user *model.User) error {
	session := s.load()
	if token != "" {
		session.Token = token
	}
	if user != nil {
		session.User = user
	}
	return s.write(session)
}

func (s *FileStore) SetRegisterEmail(email string) error {
	session := s.load()
	session.RegisterEmail = email
	return s.write(session)
}

func (s *FileStore) ClearRegisterEmail() error {
	session := s.load()
	session.RegisterEmail = ""
	return s.write(session)
}

// Clear : удаляет файл сессии, отсутствие файла не ошибка
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && errors.Is(err, fs.ErrNotExist) == false {
		return fmt.Errorf("ошибка удаления файла сессии: %w", err)
	}
	return nil
}

// load : отсутствующий или поврежденный файл означает пустую сессию
func (s *FileStore) load() fileSession {
	var session fileSession

	data, err := os.ReadFile(s.path)
	if err != nil {
		return session
	}
	if err := json.Unmarshal(data, &session); err != nil {
		log.Printf("[FileStore] файл сессии поврежден: %v", err)
		return fileSession{}
	}
	return session
}

func (s *FileStore) write(session fileSession) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("ошибка создания директории: %w", err)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("ошибка сериализации сессии: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("ошибка записи файла сессии: %w", err)
	}
	return nil
}
