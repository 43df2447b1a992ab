// Package storage provides the durable key-value storage backing the
// application stores. Keys are plain strings, values are strings (structured
// values are serialized JSON). Each store owns one key namespace exclusively
// and funnels every read and write through its own operations.
package storage

import (
	"errors"

	"github.com/mvaldez/projecttracker/internal/models"
	"gorm.io/gorm"
)

// Well-known storage keys.
const (
	KeyProjects        = "projects"
	KeyUser            = "user"
	KeyIsAuthenticated = "isAuthenticated"
	KeyTheme           = "theme"
	KeyColorTheme      = "colorTheme"
	KeyFontSize        = "fontSize"
)

// ErrKeyNotFound is returned by Get when the key has never been set or has
// been deleted.
var ErrKeyNotFound = errors.New("storage: key not found")

// Storage is a string-valued key-value store. Implementations must make a
// completed Set visible to the very next Get.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

type dbStorage struct {
	db *gorm.DB
}

// NewDB returns a Storage backed by the storage_entries table.
func NewDB(db *gorm.DB) Storage {
	return &dbStorage{db: db}
}

func (s *dbStorage) Get(key string) (string, error) {
	var entry models.StorageEntry
	if err := s.db.Where("`key` = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrKeyNotFound
		}
		return "", err
	}
	return entry.Value, nil
}

func (s *dbStorage) Set(key, value string) error {
	var entry models.StorageEntry
	err := s.db.Where("`key` = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = models.StorageEntry{
			Key:   key,
			Value: value,
		}
		return s.db.Create(&entry).Error
	}
	if err != nil {
		return err
	}
	return s.db.Model(&entry).Update("value", value).Error
}

func (s *dbStorage) Delete(key string) error {
	return s.db.Where("`key` = ?", key).Delete(&models.StorageEntry{}).Error
}
