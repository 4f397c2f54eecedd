package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/teamboard/core/internal/adapters/preferences"
	"github.com/teamboard/core/internal/adapters/repository"
	"github.com/teamboard/core/internal/adapters/storage"
	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/infrastructure/logger"
)

// Wednesday
var testNow = time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	clock     TeamClock
	uploadDir string
	logs      *observer.ObservedLogs

	members  *MemberService
	session  *SessionService
	tasks    *TaskService
	kpis     *KPIService
	reels    *ReelService
	meetings *MeetingService
	ideas    *IdeaService
	board    *DashboardService
	calendar *CalendarService
	reports  *ReportService
}

func setupTestEnv(t *testing.T, fallback ...string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store, err := repository.NewSQLiteStore(db, repository.NewClock())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	uploadDir := filepath.Join(dir, "uploads")
	files, err := storage.NewLocalStore(uploadDir, "/files")
	require.NoError(t, err)

	core, logs := observer.New(zapcore.InfoLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}
	clock := NewTeamClock(func() time.Time { return testNow }, time.UTC)

	members := NewMemberService(repository.NewCollection[entities.Member](store, entities.CollectionMembers), fallback, log)
	tasks := NewTaskService(
		repository.NewCollection[entities.Task](store, entities.CollectionTasks),
		repository.NewCollection[entities.Comment](store, entities.CollectionComments),
		repository.NewCollection[entities.ActivityLog](store, entities.CollectionActivityLogs),
		files, clock, log,
	)
	kpis := NewKPIService(repository.NewCollection[entities.KPI](store, entities.CollectionKPIs), clock, log)
	reels := NewReelService(repository.NewCollection[entities.InstagramReel](store, entities.CollectionInstagramReels), log)

	return &testEnv{
		clock:     clock,
		uploadDir: uploadDir,
		logs:      logs,
		members:   members,
		session:   NewSessionService(preferences.NewFileStore(filepath.Join(dir, "prefs.yaml")), members, log),
		tasks:     tasks,
		kpis:      kpis,
		reels:     reels,
		meetings: NewMeetingService(
			repository.NewCollection[entities.MeetingMinutes](store, entities.CollectionMeetingMinutes),
			repository.NewCollection[entities.MeetingAgenda](store, entities.CollectionMeetingAgendas),
			time.Wednesday, clock, log,
		),
		ideas: NewIdeaService(
			repository.NewCollection[entities.Idea](store, entities.CollectionIdeas),
			repository.NewCollection[entities.IdeaComment](store, entities.CollectionIdeaComments),
			files, clock, log,
		),
		board:    NewDashboardService(tasks, kpis, members, clock),
		calendar: NewCalendarService(tasks, clock),
		reports:  NewReportService("Marketing Team", tasks, kpis, reels, members, clock),
	}
}

func strPtr(s string) *string { return &s }
