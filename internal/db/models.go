package db

import (
	"time"
)

type (
	// GormForkedModel is gorm.Model with a uint64 primary key.
	GormForkedModel struct {
		ID        uint64 `gorm:"primarykey"`
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	User struct {
		GormForkedModel
		Email     string `gorm:"unique;not null"`
		Password  string `gorm:"not null"`
		Name      string
		Studies   []Study
		Questions []Question
		Comments  []Comment
	}

	// Tag names are globally unique; the row pool is shared across
	// studies and questions and survives entity deletes.
	Tag struct {
		GormForkedModel
		Name      string `gorm:"not null;uniqueIndex:uidx_tag_name"`
		IsPublic  bool
		Studies   []Study    `gorm:"many2many:study_tags;"`
		Questions []Question `gorm:"many2many:question_tags;"`
	}

	Study struct {
		GormForkedModel
		Title               string `gorm:"not null"`
		Body                string
		ReviewCycleInMinute *int
		NotificationEnabled bool
		IsPublic            bool
		UserID              *uint64
		User                *User
		Tags                []Tag     `gorm:"many2many:study_tags;"`
		Comments            []Comment `gorm:"constraint:OnDelete:CASCADE;"`
		Images              []Image   `gorm:"constraint:OnDelete:CASCADE;"`
		RegisteredDate      time.Time `gorm:"not null"`
		LastReviewDate      *time.Time
	}

	Question struct {
		GormForkedModel
		Title          string `gorm:"not null"`
		Body           string
		UserID         *uint64
		User           *User
		Tags           []Tag     `gorm:"many2many:question_tags;"`
		Comments       []Comment `gorm:"constraint:OnDelete:CASCADE;"`
		Images         []Image   `gorm:"constraint:OnDelete:CASCADE;"`
		RegisteredDate time.Time `gorm:"not null"`
	}

	// Comment belongs to exactly one of Study or Question.
	Comment struct {
		GormForkedModel
		Body           string `gorm:"not null"`
		UserID         *uint64
		User           *User
		StudyID        *uint64
		QuestionID     *uint64
		RegisteredDate time.Time `gorm:"not null"`
	}

	Image struct {
		GormForkedModel
		Name           string `gorm:"not null"`
		ContentType    string
		Data           []byte `gorm:"not null"`
		StudyID        *uint64
		QuestionID     *uint64
		RegisteredDate time.Time `gorm:"not null"`
	}
)
