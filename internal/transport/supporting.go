package transport

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type (
	CommentCreateReq struct {
		Body     string  `json:"body" validate:"required"`
		Study    *uint64 `json:"study"`
		Question *uint64 `json:"question"`
	}

	CommentUpdateReq struct {
		Body string `json:"body" validate:"required"`
	}

	TagCreateReq struct {
		Name     string `json:"name" validate:"required"`
		IsPublic bool   `json:"is_public"`
	}
)

func (s *HTTPServer) CommentList(c echo.Context) error {
	studyID, err := queryID(c, "study")
	if err != nil {
		return err
	}
	questionID, err := queryID(c, "question")
	if err != nil {
		return err
	}

	comments, err := s.svc.CommentList(studyID, questionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serializeComments(comments))
}

func (s *HTTPServer) CommentCreate(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := CommentCreateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := s.svc.CommentCreate(user, req.Body, req.Study, req.Question)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, serializeComment(comment))
}

func (s *HTTPServer) CommentRetrieve(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	comment, err := s.svc.CommentGet(id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, serializeComment(comment))
}

func (s *HTTPServer) CommentUpdate(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	req := CommentUpdateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := s.svc.CommentUpdate(id, req.Body)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, serializeComment(comment))
}

func (s *HTTPServer) CommentDelete(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.svc.CommentDelete(id); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) TagList(c echo.Context) error {
	tags, err := s.svc.TagList()
	if err != nil {
		return err
	}

	resp := make([]TagResp, len(tags))
	for i := range tags {
		resp[i] = serializeTag(&tags[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) TagCreate(c echo.Context) error {
	if _, err := GetUserFromContext(c); err != nil {
		return err
	}

	req := TagCreateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	tag, err := s.svc.TagCreate(req.Name, req.IsPublic)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, serializeTag(tag))
}

func (s *HTTPServer) TagDelete(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.svc.TagDelete(id); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) ImageList(c echo.Context) error {
	studyID, err := queryID(c, "study")
	if err != nil {
		return err
	}
	questionID, err := queryID(c, "question")
	if err != nil {
		return err
	}

	images, err := s.svc.ImageList(studyID, questionID)
	if err != nil {
		return err
	}

	resp := make([]ImageResp, len(images))
	for i := range images {
		resp[i] = serializeImage(c, &images[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) ImageCreate(c echo.Context) error {
	if _, err := GetUserFromContext(c); err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing form file 'file'")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	studyID, err := formID(c, "study")
	if err != nil {
		return err
	}
	questionID, err := formID(c, "question")
	if err != nil {
		return err
	}

	image, err := s.svc.ImageCreate(fh.Filename, fh.Header.Get("Content-Type"), data, studyID, questionID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, serializeImage(c, image))
}

func (s *HTTPServer) ImageRetrieve(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	image, err := s.svc.ImageGet(id)
	if err != nil {
		return serviceError(err)
	}

	contentType := image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Blob(http.StatusOK, contentType, image.Data)
}

func (s *HTTPServer) ImageDelete(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.svc.ImageDelete(id); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func queryID(c echo.Context, name string) (*uint64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid query param '"+name+"'")
	}
	return &id, nil
}

func formID(c echo.Context, name string) (*uint64, error) {
	raw := c.FormValue(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form value '"+name+"'")
	}
	return &id, nil
}
