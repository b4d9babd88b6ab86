package service

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/restudy-app/restudy-back/internal/db"
)

type (
	StudyCreateParams struct {
		Title               string
		Body                string
		ReviewCycleInMinute *int
		NotificationEnabled bool
		IsPublic            bool
		Tags                []string
	}

	// Nil fields are left at their current value. Tags is a pointer so
	// "absent" (tag set untouched) and "empty list" (detach all) stay
	// distinguishable.
	StudyUpdateParams struct {
		Title               *string
		Body                *string
		ReviewCycleInMinute *int
		NotificationEnabled *bool
		IsPublic            *bool
		Tags                *[]string
	}
)

func (s *General) StudyCreate(user *db.User, p StudyCreateParams) (*db.Study, error) {
	model := db.Study{
		Title:               p.Title,
		Body:                p.Body,
		ReviewCycleInMinute: p.ReviewCycleInMinute,
		NotificationEnabled: p.NotificationEnabled,
		IsPublic:            p.IsPublic,
		RegisteredDate:      time.Now(),
	}
	if user != nil {
		model.UserID = &user.ID
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		tags, err := s.resolveTags(tx, p.Tags, p.IsPublic)
		if err != nil {
			return err
		}
		return tx.Model(&model).Association("Tags").Replace(tags)
	})
	if err != nil {
		return nil, errors.Wrap(err, "create study")
	}

	return s.StudyGet(model.ID)
}

func (s *General) StudyGet(id uint64) (*db.Study, error) {
	model := db.Study{}
	res := s.db.
		Preload("User").
		Preload("Tags").
		Preload("Comments").
		Preload("Comments.User").
		First(&model, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, res.Error
	}
	return &model, nil
}

func (s *General) StudyUpdate(id uint64, p StudyUpdateParams) (*db.Study, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		model := db.Study{}
		if err := tx.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if p.Title != nil {
			model.Title = *p.Title
		}
		if p.Body != nil {
			model.Body = *p.Body
		}
		if p.ReviewCycleInMinute != nil {
			model.ReviewCycleInMinute = p.ReviewCycleInMinute
		}
		if p.NotificationEnabled != nil {
			model.NotificationEnabled = *p.NotificationEnabled
		}
		if p.IsPublic != nil {
			model.IsPublic = *p.IsPublic
		}

		if err := tx.Save(&model).Error; err != nil {
			return err
		}

		if p.Tags != nil {
			tags, err := s.resolveTags(tx, *p.Tags, model.IsPublic)
			if err != nil {
				return err
			}
			if err := tx.Model(&model).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "update study")
	}

	return s.StudyGet(id)
}

func (s *General) StudyDelete(id uint64) error {
	model := db.Study{}
	res := s.db.First(&model, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return res.Error
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("study_id = ?", id).Delete(&db.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("study_id = ?", id).Delete(&db.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model).Error
	})
}

// StudyMarkReviewed stamps last_review_date; registered_date never moves.
func (s *General) StudyMarkReviewed(id uint64) (*db.Study, error) {
	model := db.Study{}
	res := s.db.First(&model, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, res.Error
	}
	now := time.Now()
	if err := s.db.Model(&model).Update("last_review_date", &now).Error; err != nil {
		return nil, errors.Wrap(err, "update last review date")
	}
	return s.StudyGet(id)
}

func (s *General) StudyList(search, tag string) ([]db.Study, error) {
	ids, err := s.filteredIDs("studies", "study_tags", "study_id", search, tag)
	if err != nil {
		return nil, err
	}
	return s.studiesByIDs(ids)
}

func (s *General) StudyLast(userID uint64, search, tag string) (*db.Study, error) {
	ids, err := s.filteredIDs("studies", "study_tags", "study_id", search, tag)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	model := db.Study{}
	res := s.db.
		Where("id IN ?", ids).
		Where("user_id = ?", userID).
		Order("registered_date DESC").
		First(&model)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}
	return s.StudyGet(model.ID)
}

func (s *General) StudyLatest(search, tag string) (*db.Study, error) {
	ids, err := s.filteredIDs("studies", "study_tags", "study_id", search, tag)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.StudyGet(ids[0])
}

func (s *General) StudyRecent(search, tag string, page int) ([]db.Study, int, error) {
	ids, err := s.filteredIDs("studies", "study_tags", "study_id", search, tag)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.studiesByIDs(s.pageOf(ids, page))
	if err != nil {
		return nil, 0, err
	}
	return items, len(ids), nil
}

func (s *General) studiesByIDs(ids []uint64) ([]db.Study, error) {
	studies := make([]db.Study, 0)
	if len(ids) == 0 {
		return studies, nil
	}
	res := s.db.
		Preload("User").
		Preload("Tags").
		Where("id IN ?", ids).
		Order("registered_date DESC").
		Find(&studies)
	if res.Error != nil {
		return nil, res.Error
	}
	return studies, nil
}
