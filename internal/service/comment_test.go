package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRequiresExactlyOneParent(t *testing.T) {
	s := newTestService(t)
	user := seedUser(t, s, "comment@example.com")

	study, err := s.StudyCreate(user, StudyCreateParams{
		Title: "t", Body: "b", NotificationEnabled: true, IsPublic: true,
	})
	require.NoError(t, err)
	question, err := s.QuestionCreate(user, QuestionCreateParams{Title: "t", Body: "b"})
	require.NoError(t, err)

	_, err = s.CommentCreate(user, "no parent", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidParent)

	_, err = s.CommentCreate(user, "two parents", &study.ID, &question.ID)
	assert.ErrorIs(t, err, ErrInvalidParent)

	comment, err := s.CommentCreate(user, "fine", &study.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, comment.User)
	assert.Equal(t, user.ID, comment.User.ID)
}

func TestCommentListFiltersByParent(t *testing.T) {
	s := newTestService(t)
	user := seedUser(t, s, "clist@example.com")

	study, err := s.StudyCreate(user, StudyCreateParams{
		Title: "t", Body: "b", NotificationEnabled: true, IsPublic: true,
	})
	require.NoError(t, err)
	question, err := s.QuestionCreate(user, QuestionCreateParams{Title: "t", Body: "b"})
	require.NoError(t, err)

	_, err = s.CommentCreate(user, "on study", &study.ID, nil)
	require.NoError(t, err)
	_, err = s.CommentCreate(user, "on question", nil, &question.ID)
	require.NoError(t, err)

	forStudy, err := s.CommentList(&study.ID, nil)
	require.NoError(t, err)
	require.Len(t, forStudy, 1)
	assert.Equal(t, "on study", forStudy[0].Body)

	all, err := s.CommentList(nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCommentUpdateAndDelete(t *testing.T) {
	s := newTestService(t)
	user := seedUser(t, s, "cupd@example.com")

	study, err := s.StudyCreate(user, StudyCreateParams{
		Title: "t", Body: "b", NotificationEnabled: true, IsPublic: true,
	})
	require.NoError(t, err)

	comment, err := s.CommentCreate(user, "before", &study.ID, nil)
	require.NoError(t, err)
	registered := comment.RegisteredDate

	updated, err := s.CommentUpdate(comment.ID, "after")
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Body)
	assert.Equal(t, registered.Unix(), updated.RegisteredDate.Unix())

	require.NoError(t, s.CommentDelete(comment.ID))
	_, err = s.CommentGet(comment.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.CommentDelete(comment.ID), ErrNotFound)
}

func TestImageCrud(t *testing.T) {
	s := newTestService(t)
	user := seedUser(t, s, "image@example.com")

	study, err := s.StudyCreate(user, StudyCreateParams{
		Title: "t", Body: "b", NotificationEnabled: true, IsPublic: true,
	})
	require.NoError(t, err)

	_, err = s.ImageCreate("x.png", "image/png", []byte{1}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidParent)

	image, err := s.ImageCreate("x.png", "image/png", []byte{0xff, 0xd8}, &study.ID, nil)
	require.NoError(t, err)

	got, err := s.ImageGet(image.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8}, got.Data)
	assert.Equal(t, "image/png", got.ContentType)

	listed, err := s.ImageList(&study.ID, nil)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Empty(t, listed[0].Data)

	require.NoError(t, s.ImageDelete(image.ID))
	_, err = s.ImageGet(image.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
