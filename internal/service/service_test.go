package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/restudy-app/restudy-back/internal/config"
	"github.com/restudy-app/restudy-back/internal/db"
)

func newTestService(t *testing.T) *General {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	cfg := &config.Config{
		PageSize:  8,
		JWTSecret: "test-secret",
	}
	return NewGeneral(gdb, zap.NewNop().Sugar(), cfg)
}

func seedUser(t *testing.T, s *General, email string) *db.User {
	t.Helper()
	user := db.User{
		Email:    email,
		Password: "not-a-real-hash",
		Name:     "tester",
	}
	require.NoError(t, s.db.Create(&user).Error)
	return &user
}

// backdate moves registered_date directly in the store; the service
// itself never rewrites it after creation.
func backdate(t *testing.T, s *General, model interface{}, when time.Time) {
	t.Helper()
	require.NoError(t, s.db.Model(model).Update("registered_date", when).Error)
}
