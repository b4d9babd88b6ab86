package service

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/restudy-app/restudy-back/internal/db"
)

func (s *General) ImageCreate(name, contentType string, data []byte, studyID, questionID *uint64) (*db.Image, error) {
	if (studyID == nil) == (questionID == nil) {
		return nil, ErrInvalidParent
	}

	model := db.Image{
		Name:           name,
		ContentType:    contentType,
		Data:           data,
		StudyID:        studyID,
		QuestionID:     questionID,
		RegisteredDate: time.Now(),
	}
	res := s.db.Create(&model)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "create image")
	}
	return &model, nil
}

func (s *General) ImageGet(id uint64) (*db.Image, error) {
	model := db.Image{}
	res := s.db.First(&model, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, res.Error
	}
	return &model, nil
}

// ImageList returns metadata only; the blob is served by ImageGet.
func (s *General) ImageList(studyID, questionID *uint64) ([]db.Image, error) {
	q := s.db.Omit("data").Order("registered_date DESC")
	if studyID != nil {
		q = q.Where("study_id = ?", *studyID)
	}
	if questionID != nil {
		q = q.Where("question_id = ?", *questionID)
	}
	images := make([]db.Image, 0)
	res := q.Find(&images)
	if res.Error != nil {
		return nil, res.Error
	}
	return images, nil
}

func (s *General) ImageDelete(id uint64) error {
	model := db.Image{}
	res := s.db.Select("id").First(&model, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return res.Error
	}
	return s.db.Delete(&model).Error
}
