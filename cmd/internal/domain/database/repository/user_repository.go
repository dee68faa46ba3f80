package repository

import (
	"bizdirectory/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{db: db}
}

func (u *DefaultUserRepository) FindAllInIDs(ids []int64) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}

	var users []*entity.User
	err := u.db.Where("id IN ?", ids).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (u *DefaultUserRepository) FindByID(id int64) (*entity.User, error) {
	return findOne[entity.User](u.db.Where("id = ?", id))
}

// FindActiveByID ignores deactivated accounts. Suspended users are still
// returned so callers can answer with a 403 instead of a 401.
func (u *DefaultUserRepository) FindActiveByID(id int64) (*entity.User, error) {
	return findOne[entity.User](u.db.Where("id = ? AND active = ?", id, true))
}

func (u *DefaultUserRepository) FindByEmail(email string) (*entity.User, error) {
	return findOne[entity.User](u.db.Where("email = ?", email))
}

func (u *DefaultUserRepository) Save(user *entity.User) error {
	return mapWriteError(u.db.Save(user).Error)
}
