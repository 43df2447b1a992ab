package main

import (
	"github.com/mvaldez/projecttracker/internal/config"
	"github.com/mvaldez/projecttracker/internal/handlers"
	"github.com/mvaldez/projecttracker/internal/models"
	"github.com/mvaldez/projecttracker/internal/seed"
	"github.com/mvaldez/projecttracker/internal/services"
	"github.com/mvaldez/projecttracker/internal/storage"
	"github.com/mvaldez/projecttracker/internal/store"
	"github.com/mvaldez/projecttracker/internal/utils"
	"github.com/mvaldez/projecttracker/pkg/logger"
)

// appServices holds all initialized stores, services and handlers.
type appServices struct {
	projects *store.ProjectStore
	identity *store.IdentityStore
	prefs    *store.PreferenceStore
	activity *services.ActivityService

	authHandler      *handlers.AuthHandler
	projectHandler   *handlers.ProjectHandler
	dashboardHandler *handlers.DashboardHandler
	settingsHandler  *handlers.SettingsHandler
	activityHandler  *handlers.ActivityHandler
}

// bootstrap initializes all application dependencies: database, durable
// storage, the stores (loading persisted state), services and schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	st := storage.NewDB(models.GetDB())

	passwordHash, err := utils.HashPassword(cfg.Auth.MockPassword)
	if err != nil {
		logger.Fatalf("Failed to hash mock password: %v", err)
	}

	prefs := store.NewPreferenceStore(st)
	prefs.Load()

	identity := store.NewIdentityStore(st, passwordHash)
	identity.Load()
	// Logout resets the theme preference to default
	identity.OnLogout(prefs.ResetTheme)

	projects := store.NewProjectStore(st, seed.Projects())
	projects.Load()
	if loadErr := projects.LoadError(); loadErr != "" {
		logger.Warn().Str("error", loadErr).Msg("project load fell back to seed data")
	}
	projects.Subscribe(func() {
		logger.Debug().Int("projects", projects.Len()).Msg("project collection changed")
	})

	activity := services.NewActivityService(models.GetDB(), cfg.Activity.RetentionDays)
	activity.StartCleanupScheduler()

	deadlines := services.NewDeadlineService(cfg.Deadline.Country)
	dashboard := services.NewDashboardService(projects, deadlines)

	return &appServices{
		projects: projects,
		identity: identity,
		prefs:    prefs,
		activity: activity,

		authHandler:      handlers.NewAuthHandler(identity, activity, &cfg.JWT),
		projectHandler:   handlers.NewProjectHandler(projects, identity, activity),
		dashboardHandler: handlers.NewDashboardHandler(dashboard),
		settingsHandler:  handlers.NewSettingsHandler(prefs),
		activityHandler:  handlers.NewActivityHandler(activity),
	}
}

// shutdown gracefully stops background schedulers.
func (s *appServices) shutdown() {
	s.activity.StopCleanupScheduler()
	logger.Info().Msg("Schedulers stopped")
}
