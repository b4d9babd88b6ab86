package service

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/restudy-app/restudy-back/internal/db"
)

type (
	QuestionCreateParams struct {
		Title string
		Body  string
		Tags  []string
	}

	QuestionUpdateParams struct {
		Title *string
		Body  *string
		Tags  *[]string
	}
)

func (s *General) QuestionCreate(user *db.User, p QuestionCreateParams) (*db.Question, error) {
	model := db.Question{
		Title:          p.Title,
		Body:           p.Body,
		RegisteredDate: time.Now(),
	}
	if user != nil {
		model.UserID = &user.ID
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		// questions carry no visibility flag; new tags default to public
		tags, err := s.resolveTags(tx, p.Tags, true)
		if err != nil {
			return err
		}
		return tx.Model(&model).Association("Tags").Replace(tags)
	})
	if err != nil {
		return nil, errors.Wrap(err, "create question")
	}

	return s.QuestionGet(model.ID)
}

func (s *General) QuestionGet(id uint64) (*db.Question, error) {
	model := db.Question{}
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

func (s *General) QuestionUpdate(id uint64, p QuestionUpdateParams) (*db.Question, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		model := db.Question{}
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

		if err := tx.Save(&model).Error; err != nil {
			return err
		}

		if p.Tags != nil {
			tags, err := s.resolveTags(tx, *p.Tags, true)
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
		return nil, errors.Wrap(err, "update question")
	}

	return s.QuestionGet(id)
}

func (s *General) QuestionDelete(id uint64) error {
	model := db.Question{}
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
		if err := tx.Where("question_id = ?", id).Delete(&db.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&db.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model).Error
	})
}

func (s *General) QuestionList(search, tag string) ([]db.Question, error) {
	ids, err := s.filteredIDs("questions", "question_tags", "question_id", search, tag)
	if err != nil {
		return nil, err
	}
	return s.questionsByIDs(ids)
}

// QuestionLast returns the requesting user's most recent question within
// the filtered set; nil without error when there is none.
func (s *General) QuestionLast(userID uint64, search, tag string) (*db.Question, error) {
	ids, err := s.filteredIDs("questions", "question_tags", "question_id", search, tag)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	model := db.Question{}
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
	return s.QuestionGet(model.ID)
}

func (s *General) QuestionLatest(search, tag string) (*db.Question, error) {
	ids, err := s.filteredIDs("questions", "question_tags", "question_id", search, tag)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.QuestionGet(ids[0])
}

func (s *General) QuestionRecent(search, tag string, page int) ([]db.Question, int, error) {
	ids, err := s.filteredIDs("questions", "question_tags", "question_id", search, tag)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.questionsByIDs(s.pageOf(ids, page))
	if err != nil {
		return nil, 0, err
	}
	return items, len(ids), nil
}

func (s *General) questionsByIDs(ids []uint64) ([]db.Question, error) {
	questions := make([]db.Question, 0)
	if len(ids) == 0 {
		return questions, nil
	}
	res := s.db.
		Preload("User").
		Preload("Tags").
		Where("id IN ?", ids).
		Order("registered_date DESC").
		Find(&questions)
	if res.Error != nil {
		return nil, res.Error
	}
	return questions, nil
}
