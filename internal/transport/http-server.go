package transport

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/restudy-app/restudy-back/internal/config"
	"github.com/restudy-app/restudy-back/internal/db"
	"github.com/restudy-app/restudy-back/internal/service"
)

type (
	RegisterReq struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Name     string `json:"name"`
	}

	LoginReq struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	TokenResp struct {
		Token string `json:"token"`
	}

	CustomValidator struct {
		validator *validator.Validate
	}

	HTTPServer struct {
		svc    *service.General
		cfg    *config.Config
		logger *zap.SugaredLogger
	}
)

func NewHTTPServer(lc fx.Lifecycle, cfg *config.Config, svc *service.General, logger *zap.SugaredLogger) *HTTPServer {
	instance := HTTPServer{
		svc:    svc,
		cfg:    cfg,
		logger: logger,
	}

	e := echo.New()
	instance.RegisterRoutes(e)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				listen := cfg.Host + ":" + cfg.Port
				if err := e.Start(listen); err != nil && err != http.ErrServerClosed {
					e.Logger.Fatal("shutting down the server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return e.Shutdown(ctx)
		},
	})

	return &instance
}

// RegisterRoutes is separate from the constructor so handler tests can
// mount the routes on their own echo instance.
func (s *HTTPServer) RegisterRoutes(e *echo.Echo) {
	e.POST("/auth/register", s.Register)
	e.POST("/auth/login", s.Login)

	studyG := e.Group("/study")
	studyG.GET("/", s.StudyList)
	studyG.GET("/last/", s.StudyLast)
	studyG.GET("/latest/", s.StudyLatest)
	studyG.GET("/recent/", s.StudyRecent)
	studyG.POST("/", s.StudyCreate)
	studyG.GET("/:id/", s.StudyRetrieve)
	studyG.PUT("/:id/", s.StudyUpdate)
	studyG.PATCH("/:id/", s.StudyUpdate)
	studyG.DELETE("/:id/", s.StudyDelete)
	studyG.POST("/:id/review/", s.StudyReview)

	questionG := e.Group("/question")
	questionG.GET("/", s.QuestionList)
	questionG.GET("/last/", s.QuestionLast)
	questionG.GET("/latest/", s.QuestionLatest)
	questionG.GET("/recent/", s.QuestionRecent)
	questionG.POST("/", s.QuestionCreate)
	questionG.GET("/:id/", s.QuestionRetrieve)
	questionG.PUT("/:id/", s.QuestionUpdate)
	questionG.PATCH("/:id/", s.QuestionUpdate)
	questionG.DELETE("/:id/", s.QuestionDelete)

	commentG := e.Group("/comment")
	commentG.GET("/", s.CommentList)
	commentG.POST("/", s.CommentCreate)
	commentG.GET("/:id/", s.CommentRetrieve)
	commentG.PATCH("/:id/", s.CommentUpdate)
	commentG.DELETE("/:id/", s.CommentDelete)

	tagG := e.Group("/tag")
	tagG.GET("/", s.TagList)
	tagG.POST("/", s.TagCreate)
	tagG.DELETE("/:id/", s.TagDelete)

	imageG := e.Group("/image")
	imageG.GET("/", s.ImageList)
	imageG.POST("/", s.ImageCreate)
	imageG.GET("/:id/", s.ImageRetrieve)
	imageG.DELETE("/:id/", s.ImageDelete)

	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Use(s.AuthMiddleware)

	e.Validator = &CustomValidator{validator: validator.New()}

	echo.NotFoundHandler = func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	}
}

func (s *HTTPServer) Register(c echo.Context) error {
	req := RegisterReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := s.svc.Register(req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusBadRequest, "email already registered")
		}
		return err
	}
	return c.JSON(http.StatusOK, &TokenResp{Token: token})
}

func (s *HTTPServer) Login(c echo.Context) error {
	req := LoginReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := s.svc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrLoginUserNotFound) || errors.Is(err, service.ErrLoginPasswordDoesNotMatch) {
			return c.NoContent(http.StatusUnauthorized)
		}
		return err
	}
	return c.JSON(http.StatusOK, &TokenResp{Token: token})
}

// AuthMiddleware resolves the bearer token when present. Requests
// without a valid identity may still use safe methods; writes are
// rejected before any handler query runs.
func (s *HTTPServer) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Path() == "/auth/register" || c.Path() == "/auth/login" || c.Path() == "/ping" {
			return next(c)
		}

		token := ""
		for key, values := range c.Request().Header {
			if strings.ToLower(key) == "authorization" && len(values) > 0 {
				token = strings.TrimPrefix(values[0], "Bearer ")
				token = strings.TrimSpace(token)
				break
			}
		}

		if token != "" {
			user, err := s.svc.Authenticate(token)
			if err != nil {
				if errors.Is(err, service.ErrInvalidToken) {
					return c.NoContent(http.StatusUnauthorized)
				}
				return err
			}
			c.Set("user", user)
			return next(c)
		}

		switch c.Request().Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return next(c)
		}
		return c.NoContent(http.StatusUnauthorized)
	}
}

////////

func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	fields := map[string]string{}
	for _, fe := range fieldErrs {
		fields[strings.ToLower(fe.Field())] = "failed on '" + fe.Tag() + "'"
	}
	return echo.NewHTTPError(http.StatusBadRequest, fields)
}

func BindAndValidate(c echo.Context, v interface{}) error {
	var err error
	if err = c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err = c.Validate(v); err != nil {
		return err
	}
	return nil
}

func GetUserFromContext(c echo.Context) (*db.User, error) {
	user, ok := c.Get("user").(*db.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "no user found in context")
	}
	return user, nil
}

func GetParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if value == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid path param '"+name+"'")
	}
	return value, nil
}

func GetAndParseParam(c echo.Context, name string) (uint64, error) {
	v, e := GetParam(c, name)
	if e != nil {
		return 0, e
	}
	vv, e := strconv.ParseUint(v, 10, 64)
	if e != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid path param '"+name+"'")
	}
	return vv, nil
}

func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func serviceError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidParent):
		return echo.NewHTTPError(http.StatusBadRequest, "exactly one of 'study' or 'question' must be set")
	}
	return err
}
