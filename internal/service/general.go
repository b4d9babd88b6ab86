package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/restudy-app/restudy-back/internal/config"
	"github.com/restudy-app/restudy-back/internal/db"
)

var (
	ErrLoginUserNotFound         = errors.New("user not found")
	ErrLoginPasswordDoesNotMatch = errors.New("password does not match")
	ErrEmailTaken                = errors.New("email already registered")
	ErrNotFound                  = errors.New("record not found")
	ErrInvalidToken              = errors.New("invalid token")
	ErrInvalidParent             = errors.New("exactly one of study or question parent must be set")
)

const tokenTTL = 24 * time.Hour

type General struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
	cfg    *config.Config
}

func NewGeneral(db *gorm.DB, l *zap.SugaredLogger, cfg *config.Config) *General {
	return &General{
		db:     db,
		logger: l,
		cfg:    cfg,
	}
}

func (s *General) Register(email, pass, name string) (string, error) {
	hash, err := s.bcryptGen(pass)
	if err != nil {
		return "", errors.Wrap(err, "bcryptGen")
	}
	user := db.User{
		Email:    email,
		Password: hash,
		Name:     name,
	}
	res := s.db.Create(&user)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return "", ErrEmailTaken
		}
		return "", res.Error
	}
	return s.issueToken(&user)
}

func (s *General) Login(email, pass string) (string, error) {
	user := db.User{}
	res := s.db.Where("email = ?", email).First(&user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return "", ErrLoginUserNotFound
		}
		return "", res.Error
	}

	if err := s.bcryptCheck(user.Password, pass); err != nil {
		return "", ErrLoginPasswordDoesNotMatch
	}

	return s.issueToken(&user)
}

// Authenticate resolves a bearer token to the user it was issued for.
func (s *General) Authenticate(token string) (*db.User, error) {
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user := db.User{}
	res := s.db.First(&user, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, res.Error
	}
	return &user, nil
}

func (s *General) issueToken(u *db.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(u.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		ID:        uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

func (s *General) bcryptGen(pass string) (string, error) {
	passwordHashB, err := bcrypt.GenerateFromPassword([]byte(pass), 14)
	if err != nil {
		return "", errors.Wrap(err, "generate password hash")
	}
	return string(passwordHashB), nil
}

func (s *General) bcryptCheck(hash, pass string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass))
}

// isUniqueViolation reports whether err is a unique-constraint failure,
// for Postgres (SQLSTATE 23505) and the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
