package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/types"
)

func newTestLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// newTestDB opens a private in-memory sqlite database migrated with the
// full schema. cache=shared keeps the database alive across the pooled
// connections gorm opens.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&types.User{},
		&types.LearningModule{},
		&types.LearningProgress{},
		&types.CreditTransaction{},
		&types.Skill{},
		&types.UserSkill{},
		&types.Gig{},
		&types.GigApplication{},
		&types.LegalTopic{},
		&types.LegalQuery{},
		&types.SystemMetric{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *types.User {
	t.Helper()
	now := time.Now()
	user := &types.User{
		ID:                 uuid.New(),
		DeviceFingerprint:  uuid.NewString(),
		LanguagePreference: "hi",
		IsActive:           true,
		LastActive:         now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}
