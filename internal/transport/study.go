package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/restudy-app/restudy-back/internal/service"
)

type (
	StudyCreateReq struct {
		Title               string   `json:"title" validate:"required"`
		Body                string   `json:"body" validate:"required"`
		ReviewCycleInMinute *int     `json:"review_cycle_in_minute"`
		NotificationEnabled *bool    `json:"notification_enabled" validate:"required"`
		IsPublic            *bool    `json:"is_public" validate:"required"`
		Tags                []string `json:"tags"`
	}

	StudyUpdateReq struct {
		Title               *string   `json:"title"`
		Body                *string   `json:"body"`
		ReviewCycleInMinute *int      `json:"review_cycle_in_minute"`
		NotificationEnabled *bool     `json:"notification_enabled"`
		IsPublic            *bool     `json:"is_public"`
		Tags                *[]string `json:"tags"`
	}
)

func (s *HTTPServer) StudyList(c echo.Context) error {
	studies, err := s.svc.StudyList(c.QueryParam("search"), c.QueryParam("tag"))
	if err != nil {
		return err
	}

	resp := make([]StudySummaryResp, len(studies))
	for i := range studies {
		resp[i] = serializeStudySummary(c, &studies[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) StudyLast(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	study, err := s.svc.StudyLast(user.ID, c.QueryParam("search"), c.QueryParam("tag"))
	if err != nil {
		return err
	}
	if study == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, serializeStudy(c, study))
}

func (s *HTTPServer) StudyLatest(c echo.Context) error {
	study, err := s.svc.StudyLatest(c.QueryParam("search"), c.QueryParam("tag"))
	if err != nil {
		return err
	}
	if study == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, serializeStudy(c, study))
}

func (s *HTTPServer) StudyRecent(c echo.Context) error {
	page := pageParam(c)
	studies, count, err := s.svc.StudyRecent(c.QueryParam("search"), c.QueryParam("tag"), page)
	if err != nil {
		return err
	}

	results := make([]StudySummaryResp, len(studies))
	for i := range studies {
		results[i] = serializeStudySummary(c, &studies[i])
	}
	return c.JSON(http.StatusOK, paginate(c, count, page, s.cfg.PageSize, results))
}

func (s *HTTPServer) StudyCreate(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := StudyCreateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	study, err := s.svc.StudyCreate(user, service.StudyCreateParams{
		Title:               req.Title,
		Body:                req.Body,
		ReviewCycleInMinute: req.ReviewCycleInMinute,
		NotificationEnabled: *req.NotificationEnabled,
		IsPublic:            *req.IsPublic,
		Tags:                req.Tags,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, serializeStudy(c, study))
}

func (s *HTTPServer) StudyRetrieve(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	study, err := s.svc.StudyGet(id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, serializeStudy(c, study))
}

func (s *HTTPServer) StudyUpdate(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	req := StudyUpdateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	study, err := s.svc.StudyUpdate(id, service.StudyUpdateParams{
		Title:               req.Title,
		Body:                req.Body,
		ReviewCycleInMinute: req.ReviewCycleInMinute,
		NotificationEnabled: req.NotificationEnabled,
		IsPublic:            req.IsPublic,
		Tags:                req.Tags,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, serializeStudy(c, study))
}

func (s *HTTPServer) StudyDelete(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.svc.StudyDelete(id); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) StudyReview(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	study, err := s.svc.StudyMarkReviewed(id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, serializeStudy(c, study))
}
