// Package app wires the record store, file store and preference store into the board
// services shared by the HTTP server and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/teamboard/core/internal/adapters/preferences"
	"github.com/teamboard/core/internal/adapters/repository"
	"github.com/teamboard/core/internal/adapters/storage"
	"github.com/teamboard/core/internal/application/services"
	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/infrastructure/config"
	"github.com/teamboard/core/internal/infrastructure/database"
	"github.com/teamboard/core/internal/infrastructure/logger"
	"github.com/teamboard/core/internal/ports"
)

// Preference drivers
const (
	PrefsFile  = "file"
	PrefsRedis = "redis"
)

// Services holds every board service together with the backends they share
type Services struct {
	Store ports.RecordStore
	Files *storage.LocalStore
	Prefs ports.PreferenceStore
	Clock services.TeamClock

	Members   *services.MemberService
	Session   *services.SessionService
	Tasks     *services.TaskService
	KPIs      *services.KPIService
	Reels     *services.ReelService
	Meetings  *services.MeetingService
	Ideas     *services.IdeaService
	Dashboard *services.DashboardService
	Calendar  *services.CalendarService
	Reports   *services.ReportService
}

// Build opens the configured backends and constructs the services
func Build(cfg *config.Config, log *logger.Logger) (*Services, error) {
	loc, err := cfg.Team.Location()
	if err != nil {
		return nil, err
	}
	weekday, err := cfg.Team.Weekday()
	if err != nil {
		return nil, err
	}

	store, err := database.NewRecordStore(cfg.Database)
	if err != nil {
		return nil, err
	}

	files, err := storage.NewLocalStore(cfg.Storage.UploadDir, cfg.Storage.PublicBaseURL)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	prefs, err := NewPreferenceStore(cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return New(store, files, prefs, services.NewTeamClock(time.Now, loc), weekday, cfg.Team, log), nil
}

// New constructs the services over already opened backends
func New(
	store ports.RecordStore,
	files *storage.LocalStore,
	prefs ports.PreferenceStore,
	clock services.TeamClock,
	meetingDay time.Weekday,
	team config.TeamConfig,
	log *logger.Logger,
) *Services {
	members := services.NewMemberService(repository.NewCollection[entities.Member](store, entities.CollectionMembers), team.Members, log)
	tasks := services.NewTaskService(
		repository.NewCollection[entities.Task](store, entities.CollectionTasks),
		repository.NewCollection[entities.Comment](store, entities.CollectionComments),
		repository.NewCollection[entities.ActivityLog](store, entities.CollectionActivityLogs),
		files, clock, log.WithComponent("tasks"),
	)
	kpis := services.NewKPIService(repository.NewCollection[entities.KPI](store, entities.CollectionKPIs), clock, log.WithComponent("kpis"))
	reels := services.NewReelService(repository.NewCollection[entities.InstagramReel](store, entities.CollectionInstagramReels), log.WithComponent("reels"))

	return &Services{
		Store: store,
		Files: files,
		Prefs: prefs,
		Clock: clock,

		Members: members,
		Session: services.NewSessionService(prefs, members, log.WithComponent("session")),
		Tasks:   tasks,
		KPIs:    kpis,
		Reels:   reels,
		Meetings: services.NewMeetingService(
			repository.NewCollection[entities.MeetingMinutes](store, entities.CollectionMeetingMinutes),
			repository.NewCollection[entities.MeetingAgenda](store, entities.CollectionMeetingAgendas),
			meetingDay, clock, log.WithComponent("meetings"),
		),
		Ideas: services.NewIdeaService(
			repository.NewCollection[entities.Idea](store, entities.CollectionIdeas),
			repository.NewCollection[entities.IdeaComment](store, entities.CollectionIdeaComments),
			files, clock, log.WithComponent("ideas"),
		),
		Dashboard: services.NewDashboardService(tasks, kpis, members, clock),
		Calendar:  services.NewCalendarService(tasks, clock),
		Reports:   services.NewReportService(team.Name, tasks, kpis, reels, members, clock),
	}
}

// NewPreferenceStore opens the preference backend named by cfg.Preferences.Driver
func NewPreferenceStore(cfg *config.Config) (ports.PreferenceStore, error) {
	switch cfg.Preferences.Driver {
	case PrefsFile, "":
		return preferences.NewFileStore(cfg.Preferences.File), nil
	case PrefsRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := preferences.NewRedisStore(client, cfg.Preferences.KeyPrefix)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported preferences driver %q", cfg.Preferences.Driver)
	}
}

// Close releases the record and preference stores
func (s *Services) Close() error {
	return errors.Join(s.Prefs.Close(), s.Store.Close())
}
