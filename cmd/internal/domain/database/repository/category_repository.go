package repository

import (
	"bizdirectory/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultCategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *DefaultCategoryRepository {
	return &DefaultCategoryRepository{db: db}
}

func (c *DefaultCategoryRepository) FindByID(id int64) (*entity.Category, error) {
	return findOne[entity.Category](c.db.Where("id = ?", id))
}

func (c *DefaultCategoryRepository) Create(category *entity.Category) error {
	return mapWriteError(c.db.Create(category).Error)
}
