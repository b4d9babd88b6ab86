package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/restudy-app/restudy-back/internal/service"
)

type (
	QuestionCreateReq struct {
		Title string   `json:"title" validate:"required"`
		Body  string   `json:"body" validate:"required"`
		Tags  []string `json:"tags"`
	}

	QuestionUpdateReq struct {
		Title *string   `json:"title"`
		Body  *string   `json:"body"`
		Tags  *[]string `json:"tags"`
	}
)

func (s *HTTPServer) QuestionList(c echo.Context) error {
	questions, err := s.svc.QuestionList(c.QueryParam("search"), c.QueryParam("tag"))
	if err != nil {
		return err
	}

	resp := make([]QuestionSummaryResp, len(questions))
	for i := range questions {
		resp[i] = serializeQuestionSummary(c, &questions[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) QuestionLast(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	question, err := s.svc.QuestionLast(user.ID, c.QueryParam("search"), c.QueryParam("tag"))
	if err != nil {
		return err
	}
	if question == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, serializeQuestion(c, question))
}

func (s *HTTPServer) QuestionLatest(c echo.Context) error {
	question, err := s.svc.QuestionLatest(c.QueryParam("search"), c.QueryParam("tag"))
	if err != nil {
		return err
	}
	if question == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, serializeQuestion(c, question))
}

func (s *HTTPServer) QuestionRecent(c echo.Context) error {
	page := pageParam(c)
	questions, count, err := s.svc.QuestionRecent(c.QueryParam("search"), c.QueryParam("tag"), page)
	if err != nil {
		return err
	}

	results := make([]QuestionSummaryResp, len(questions))
	for i := range questions {
		results[i] = serializeQuestionSummary(c, &questions[i])
	}
	return c.JSON(http.StatusOK, paginate(c, count, page, s.cfg.PageSize, results))
}

func (s *HTTPServer) QuestionCreate(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := QuestionCreateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	question, err := s.svc.QuestionCreate(user, service.QuestionCreateParams{
		Title: req.Title,
		Body:  req.Body,
		Tags:  req.Tags,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, serializeQuestion(c, question))
}

func (s *HTTPServer) QuestionRetrieve(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	question, err := s.svc.QuestionGet(id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, serializeQuestion(c, question))
}

func (s *HTTPServer) QuestionUpdate(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	req := QuestionUpdateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	question, err := s.svc.QuestionUpdate(id, service.QuestionUpdateParams{
		Title: req.Title,
		Body:  req.Body,
		Tags:  req.Tags,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, serializeQuestion(c, question))
}

func (s *HTTPServer) QuestionDelete(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.svc.QuestionDelete(id); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
