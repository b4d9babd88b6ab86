package transport

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/restudy-app/restudy-back/internal/db"
)

const dateTimeLayout = "2006-01-02 15:04:05"

// DateTime renders as "YYYY-MM-DD HH:MM:SS" on the wire.
type DateTime time.Time

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(time.Time(d).Format(dateTimeLayout))), nil
}

type (
	UserResp struct {
		ID    uint64 `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name,omitempty"`
	}

	TagResp struct {
		ID       uint64 `json:"id"`
		Name     string `json:"name"`
		IsPublic bool   `json:"is_public"`
	}

	CommentResp struct {
		ID             uint64    `json:"id"`
		User           *UserResp `json:"user"`
		Body           string    `json:"body"`
		Study          *uint64   `json:"study,omitempty"`
		Question       *uint64   `json:"question,omitempty"`
		RegisteredDate DateTime  `json:"registered_date"`
	}

	StudyResp struct {
		ID                  uint64        `json:"id"`
		URL                 string        `json:"url"`
		User                *UserResp     `json:"user"`
		Title               string        `json:"title"`
		Body                string        `json:"body"`
		Tags                []string      `json:"tags"`
		ReviewCycleInMinute *int          `json:"review_cycle_in_minute"`
		NotificationEnabled bool          `json:"notification_enabled"`
		IsPublic            bool          `json:"is_public"`
		Comment             []CommentResp `json:"comment"`
		RegisteredDate      DateTime      `json:"registered_date"`
		LastReviewDate      *DateTime     `json:"last_review_date"`
	}

	StudySummaryResp struct {
		ID             uint64    `json:"id"`
		URL            string    `json:"url"`
		User           *UserResp `json:"user"`
		Title          string    `json:"title"`
		Tags           []string  `json:"tags"`
		IsPublic       bool      `json:"is_public"`
		RegisteredDate DateTime  `json:"registered_date"`
	}

	QuestionResp struct {
		ID             uint64        `json:"id"`
		URL            string        `json:"url"`
		User           *UserResp     `json:"user"`
		Title          string        `json:"title"`
		Body           string        `json:"body"`
		Tags           []string      `json:"tags"`
		Comment        []CommentResp `json:"comment"`
		RegisteredDate DateTime      `json:"registered_date"`
	}

	QuestionSummaryResp struct {
		ID             uint64    `json:"id"`
		URL            string    `json:"url"`
		User           *UserResp `json:"user"`
		Title          string    `json:"title"`
		Tags           []string  `json:"tags"`
		RegisteredDate DateTime  `json:"registered_date"`
	}

	ImageResp struct {
		ID             uint64   `json:"id"`
		URL            string   `json:"url"`
		Name           string   `json:"name"`
		ContentType    string   `json:"content_type"`
		Study          *uint64  `json:"study,omitempty"`
		Question       *uint64  `json:"question,omitempty"`
		RegisteredDate DateTime `json:"registered_date"`
	}

	PageResp struct {
		Count    int         `json:"count"`
		Next     *string     `json:"next"`
		Previous *string     `json:"previous"`
		Results  interface{} `json:"results"`
	}
)

// resourceURL derives the canonical URL of a record from the incoming
// request; it is read-only on the wire.
func resourceURL(c echo.Context, kind string, id uint64) string {
	scheme := c.Scheme()
	host := c.Request().Host
	return fmt.Sprintf("%s://%s/%s/%d/", scheme, host, kind, id)
}

func serializeUser(u *db.User) *UserResp {
	if u == nil {
		return nil
	}
	return &UserResp{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

func serializeTag(t *db.Tag) TagResp {
	return TagResp{
		ID:       t.ID,
		Name:     t.Name,
		IsPublic: t.IsPublic,
	}
}

func tagNames(tags []db.Tag) []string {
	names := make([]string, len(tags))
	for i := range tags {
		names[i] = tags[i].Name
	}
	return names
}

func serializeComment(m *db.Comment) CommentResp {
	return CommentResp{
		ID:             m.ID,
		User:           serializeUser(m.User),
		Body:           m.Body,
		Study:          m.StudyID,
		Question:       m.QuestionID,
		RegisteredDate: DateTime(m.RegisteredDate),
	}
}

func serializeComments(comments []db.Comment) []CommentResp {
	resp := make([]CommentResp, len(comments))
	for i := range comments {
		resp[i] = serializeComment(&comments[i])
	}
	return resp
}

func serializeStudy(c echo.Context, m *db.Study) StudyResp {
	resp := StudyResp{
		ID:                  m.ID,
		URL:                 resourceURL(c, "study", m.ID),
		User:                serializeUser(m.User),
		Title:               m.Title,
		Body:                m.Body,
		Tags:                tagNames(m.Tags),
		ReviewCycleInMinute: m.ReviewCycleInMinute,
		NotificationEnabled: m.NotificationEnabled,
		IsPublic:            m.IsPublic,
		Comment:             serializeComments(m.Comments),
		RegisteredDate:      DateTime(m.RegisteredDate),
	}
	if m.LastReviewDate != nil {
		d := DateTime(*m.LastReviewDate)
		resp.LastReviewDate = &d
	}
	return resp
}

func serializeStudySummary(c echo.Context, m *db.Study) StudySummaryResp {
	return StudySummaryResp{
		ID:             m.ID,
		URL:            resourceURL(c, "study", m.ID),
		User:           serializeUser(m.User),
		Title:          m.Title,
		Tags:           tagNames(m.Tags),
		IsPublic:       m.IsPublic,
		RegisteredDate: DateTime(m.RegisteredDate),
	}
}

func serializeQuestion(c echo.Context, m *db.Question) QuestionResp {
	return QuestionResp{
		ID:             m.ID,
		URL:            resourceURL(c, "question", m.ID),
		User:           serializeUser(m.User),
		Title:          m.Title,
		Body:           m.Body,
		Tags:           tagNames(m.Tags),
		Comment:        serializeComments(m.Comments),
		RegisteredDate: DateTime(m.RegisteredDate),
	}
}

func serializeQuestionSummary(c echo.Context, m *db.Question) QuestionSummaryResp {
	return QuestionSummaryResp{
		ID:             m.ID,
		URL:            resourceURL(c, "question", m.ID),
		User:           serializeUser(m.User),
		Title:          m.Title,
		Tags:           tagNames(m.Tags),
		RegisteredDate: DateTime(m.RegisteredDate),
	}
}

func serializeImage(c echo.Context, m *db.Image) ImageResp {
	return ImageResp{
		ID:             m.ID,
		URL:            resourceURL(c, "image", m.ID),
		Name:           m.Name,
		ContentType:    m.ContentType,
		Study:          m.StudyID,
		Question:       m.QuestionID,
		RegisteredDate: DateTime(m.RegisteredDate),
	}
}

// paginate wraps a result page in the count/next/previous envelope. The
// next and previous links reuse the request URL with the page param
// swapped, null at either edge.
func paginate(c echo.Context, count, page, pageSize int, results interface{}) PageResp {
	resp := PageResp{
		Count:   count,
		Results: results,
	}

	lastPage := (count + pageSize - 1) / pageSize
	if page < lastPage {
		resp.Next = pageLink(c, page+1)
	}
	if page > 1 {
		resp.Previous = pageLink(c, page-1)
	}
	return resp
}

func pageLink(c echo.Context, page int) *string {
	u := url.URL{
		Scheme:   c.Scheme(),
		Host:     c.Request().Host,
		Path:     c.Request().URL.Path,
		RawQuery: c.Request().URL.Query().Encode(),
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}
