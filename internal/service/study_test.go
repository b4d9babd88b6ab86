package service

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restudy-app/restudy-back/internal/db"
)

func sortedTagNames(tags []db.Tag) []string {
	names := make([]string, len(tags))
	for i := range tags {
		names[i] = tags[i].Name
	}
	sort.Strings(names)
	return names
}

func TestStudyCreateWithTags(t *testing.T) {
	s := newTestService(t)
	user := seedUser(t, s, "study@example.com")

	cycle := 90
	study, err := s.StudyCreate(user, StudyCreateParams{
		Title:               "spaced repetition",
		Body:                "review notes regularly",
		ReviewCycleInMinute: &cycle,
		NotificationEnabled: true,
		IsPublic:            true,
		Tags:                []string{"memory", "habits"},
	})
	require.NoError(t, err)

	got, err := s.StudyGet(study.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"habits", "memory"}, sortedTagNames(got.Tags))
	require.NotNil(t, got.User)
	assert.Equal(t, user.ID, got.User.ID)
	require.NotNil(t, got.ReviewCycleInMinute)
	assert.Equal(t, 90, *got.ReviewCycleInMinute)
	assert.False(t, got.RegisteredDate.IsZero())
	assert.Nil(t, got.LastReviewDate)
}

func TestStudyCreateSharesTagRows(t *testing.T) {
	s := newTestService(t)
	user := seedUser(t, s, "share@example.com")

	first, err := s.StudyCreate(user, StudyCreateParams{
		Title: "a", Body: "b", NotificationEnabled: true, IsPublic: true,
		Tags: []string{"memory", "habits"},
	})
	require.NoError(t, err)

	second, err := s.StudyCreate(user, StudyCreateParams{
		Title: "c", Body: "d", NotificationEnabled: false, IsPublic: false,
		Tags: []string{"memory"},
	})
	require.NoError(t, err)

	var firstMemory, secondMemory db.Tag
	for _, tag := range first.Tags {
		if tag.Name == "memory" {
			firstMemory = tag
		}
	}
	for _, tag := range second.Tags {
		if tag.Name == "memory" {
			secondMemory = tag
		}
	}
	// identical row, not just equal name
	assert.Equal(t, firstMemory.ID, secondMemory.ID)

	count := int64(0)
	require.NoError(t, s.db.Model(&db.Tag{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestStudyUpdatePartial(t *testing.T) {
	s := newTestService(t)
	user := seedUser(t, s, "partial@example.com")

	study, err := s.StudyCreate(user, StudyCreateParams{
		Title: "original title", Body: "original body",
		NotificationEnabled: true, IsPublic: true,
		Tags: []string{"keep"},
	})
	require.NoError(t, err)
	registered := study.RegisteredDate

	newBody := "rewritten body"
	updated, err := s.StudyUpdate(study.ID, StudyUpdateParams{Body: &newBody})
	require.NoError(t, err)

	assert.Equal(t, "original title", updated.Title)
	assert.Equal(t, "rewritten body", updated.Body)
	assert.True(t, updated.NotificationEnabled)
	assert.True(t, updated.IsPublic)
	assert.Equal(t, registered.Unix(), updated.RegisteredDate.Unix())
	// tags field absent: tag set untouched
	assert.Equal(t, []string{"keep"}, sortedTagNames(updated.Tags))
}

func TestStudyUpdateReplacesTagSet(t *testing.T) {
	s := newTestService(t)
	user := seedUser(t, s, "replace@example.com")

	study, err := s.StudyCreate(user, StudyCreateParams{
		Title: "t", Body: "b", NotificationEnabled: true, IsPublic: true,
		Tags: []string{"old", "shared"},
	})
	require.NoError(t, err)

	newTags := []string{"shared", "new"}
	updated, err := s.StudyUpdate(study.ID, StudyUpdateParams{Tags: &newTags})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "shared"}, sortedTagNames(updated.Tags))

	// detached, not deleted: "old" stays in the global pool
	count := int64(0)
	require.NoError(t, s.db.Model(&db.Tag{}).Where("name = ?", "old").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestStudyUpdateEmptyTagListClears(t *testing.T) {
	s := newTestService(t)
	user := seedUser(t, s, "clear@example.com")

	study, err := s.StudyCreate(user, StudyCreateParams{
		Title: "t", Body: "b", NotificationEnabled: true, IsPublic: true,
		Tags: []string{"a", "b"},
	})
	require.NoError(t, err)

	empty := []string{}
	updated, err := s.StudyUpdate(study.ID, StudyUpdateParams{Tags: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Tags)
}

func TestStudyUpdateUnknownID(t *testing.T) {
	s := newTestService(t)
	title := "x"
	_, err := s.StudyUpdate(999, StudyUpdateParams{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStudyDeleteCascades(t *testing.T) {
	s := newTestService(t)
	user := seedUser(t, s, "cascade@example.com")

	study, err := s.StudyCreate(user, StudyCreateParams{
		Title: "t", Body: "b", NotificationEnabled: true, IsPublic: true,
		Tags: []string{"survivor"},
	})
	require.NoError(t, err)

	_, err = s.CommentCreate(user, "a comment", &study.ID, nil)
	require.NoError(t, err)
	_, err = s.ImageCreate("pic.png", "image/png", []byte{1, 2, 3}, &study.ID, nil)
	require.NoError(t, err)

	require.NoError(t, s.StudyDelete(study.ID))

	_, err = s.StudyGet(study.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	comments, err := s.CommentList(&study.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, comments)

	images, err := s.ImageList(&study.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, images)

	// the tag pool is shared and survives the delete
	count := int64(0)
	require.NoError(t, s.db.Model(&db.Tag{}).Where("name = ?", "survivor").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestStudyMarkReviewed(t *testing.T) {
	s := newTestService(t)
	user := seedUser(t, s, "review@example.com")

	study, err := s.StudyCreate(user, StudyCreateParams{
		Title: "t", Body: "b", NotificationEnabled: true, IsPublic: true,
	})
	require.NoError(t, err)
	registered := study.RegisteredDate

	reviewed, err := s.StudyMarkReviewed(study.ID)
	require.NoError(t, err)
	require.NotNil(t, reviewed.LastReviewDate)
	assert.Equal(t, registered.Unix(), reviewed.RegisteredDate.Unix())
}

func TestStudyListFiltersAndOrders(t *testing.T) {
	s := newTestService(t)
	user := seedUser(t, s, "list@example.com")

	older, err := s.StudyCreate(user, StudyCreateParams{
		Title: "Graph Theory Primer", Body: "vertices and edges",
		NotificationEnabled: true, IsPublic: true, Tags: []string{"math"},
	})
	require.NoError(t, err)
	backdate(t, s, older, time.Now().Add(-time.Hour))

	newer, err := s.StudyCreate(user, StudyCreateParams{
		Title: "Cooking", Body: "includes a graph of oven temperatures",
		NotificationEnabled: true, IsPublic: true, Tags: []string{"kitchen"},
	})
	require.NoError(t, err)

	all, err := s.StudyList("", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
	assert.Equal(t, older.ID, all[1].ID)

	// substring match over title or body, case-insensitive
	matched, err := s.StudyList("GRAPH", "")
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	// combined with tag equality
	matched, err = s.StudyList("graph", "math")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, older.ID, matched[0].ID)
}
