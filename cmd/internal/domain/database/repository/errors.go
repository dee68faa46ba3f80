package repository

import (
	"errors"
	"strings"

	"bizdirectory/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

// mapWriteError normalizes unique violations into entity.ErrDuplicate.
// Drivers without error translation are matched on their message.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return entity.ErrDuplicate
	}

	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") {
		return entity.ErrDuplicate
	}
	return err
}

func findOne[T any](q *gorm.DB) (*T, error) {
	var out T
	err := q.First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &out, nil
}
