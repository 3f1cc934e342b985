//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=../mocks/mock_repository.go -package=mocks

package repository

import (
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

type Client struct {
	DB *gorm.DB
}

func NewRepository(connectionURL string) (Repository, error) {
	db, err := gorm.Open(postgres.Open(connectionURL), &gorm.Config{})

	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	if err := db.AutoMigrate(&Session{}, &Execution{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return Client{DB: db}, nil
}

type Repository interface {
	InsertSession(session *Session) error
	GetSession(id string) (*Session, error)
	ListSessions(page, limit int) ([]Session, int64, error)
	UpdateSession(id string, userID string, columns Session) (*Session, error)

	InsertExecution(execution *Execution) error
	GetExecution(id string) (*Execution, error)
	UpdateExecution(id string, columns Execution) (bool, error)
}
