package service

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/restudy-app/restudy-back/internal/db"
)

func (s *General) TagList() ([]db.Tag, error) {
	tags := make([]db.Tag, 0)
	res := s.db.Order("name").Find(&tags)
	if res.Error != nil {
		return nil, res.Error
	}
	return tags, nil
}

func (s *General) TagCreate(name string, isPublic bool) (*db.Tag, error) {
	return s.tagGetOrCreate(s.db, name, isPublic)
}

func (s *General) TagDelete(id uint64) error {
	tag := db.Tag{}
	res := s.db.First(&tag, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return res.Error
	}
	// clause.Associations drops the join-table rows, not the
	// studies/questions themselves
	res = s.db.Select(clause.Associations).Delete(&tag)
	return res.Error
}

// tagGetOrCreate resolves a tag name to its single shared row. Two
// requests racing to introduce the same name are both answered with the
// winner's row: the insert runs in a savepoint, and a unique violation
// means the row exists now and is re-read.
func (s *General) tagGetOrCreate(tx *gorm.DB, name string, isPublic bool) (*db.Tag, error) {
	tag := db.Tag{}
	err := tx.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "find tag")
	}

	tag = db.Tag{Name: name, IsPublic: isPublic}
	createErr := tx.Transaction(func(inner *gorm.DB) error {
		return inner.Create(&tag).Error
	})
	if createErr == nil {
		return &tag, nil
	}
	if !isUniqueViolation(createErr) {
		return nil, errors.Wrap(createErr, "create tag")
	}

	tag = db.Tag{}
	if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, errors.Wrap(err, "refetch tag after unique violation")
	}
	return &tag, nil
}

func (s *General) resolveTags(tx *gorm.DB, names []string, isPublic bool) ([]db.Tag, error) {
	tags := make([]db.Tag, 0, len(names))
	for _, name := range names {
		tag, err := s.tagGetOrCreate(tx, name, isPublic)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}
