package service

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/restudy-app/restudy-back/internal/db"
)

func (s *General) CommentCreate(user *db.User, body string, studyID, questionID *uint64) (*db.Comment, error) {
	if (studyID == nil) == (questionID == nil) {
		return nil, ErrInvalidParent
	}

	model := db.Comment{
		Body:           body,
		StudyID:        studyID,
		QuestionID:     questionID,
		RegisteredDate: time.Now(),
	}
	if user != nil {
		model.UserID = &user.ID
	}

	res := s.db.Create(&model)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "create comment")
	}
	return s.CommentGet(model.ID)
}

func (s *General) CommentGet(id uint64) (*db.Comment, error) {
	model := db.Comment{}
	res := s.db.Preload("User").First(&model, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, res.Error
	}
	return &model, nil
}

func (s *General) CommentList(studyID, questionID *uint64) ([]db.Comment, error) {
	q := s.db.Preload("User").Order("registered_date DESC")
	if studyID != nil {
		q = q.Where("study_id = ?", *studyID)
	}
	if questionID != nil {
		q = q.Where("question_id = ?", *questionID)
	}
	comments := make([]db.Comment, 0)
	res := q.Find(&comments)
	if res.Error != nil {
		return nil, res.Error
	}
	return comments, nil
}

func (s *General) CommentUpdate(id uint64, body string) (*db.Comment, error) {
	model := db.Comment{}
	res := s.db.First(&model, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, res.Error
	}
	if err := s.db.Model(&model).Update("body", body).Error; err != nil {
		return nil, errors.Wrap(err, "update comment")
	}
	return s.CommentGet(id)
}

func (s *General) CommentDelete(id uint64) error {
	model := db.Comment{}
	res := s.db.First(&model, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return res.Error
	}
	return s.db.Delete(&model).Error
}
