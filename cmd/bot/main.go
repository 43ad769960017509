package main

import (
	"context"
	"os/signal"
	"syscall"

	"class-attendance-bot/internal/attendance"
	"class-attendance-bot/internal/config"
	"class-attendance-bot/internal/handler"
	"class-attendance-bot/internal/repository"
	"class-attendance-bot/internal/service"
	"class-attendance-bot/internal/timetable"
	"class-attendance-bot/pkg/telegram"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetBotConfig()
	logrus.Info("Config initialized...")

	db, err := openDatabase(cfg)
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	userRepo, err := repository.NewGormUserRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create user repository")
	}
	attendanceRepo, err := repository.NewGormAttendanceRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create attendance repository")
	}
	holidayRepo, err := repository.NewGormHolidayRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create holiday repository")
	}

	catalog := loadCatalog(cfg)
	engine := attendance.NewEngine(catalog, cfg.TermStart)

	userService := service.NewUserService(userRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo, holidayRepo, engine)
	holidayService := service.NewHolidayService(holidayRepo, cfg.TermStart)

	// Инициализируем администратора из конфига
	if err := userService.InitializeAdmin(cfg.BaseAdminChatID); err != nil {
		logrus.Infof("Warning: Failed to initialize admin: %v", err)
	} else if cfg.BaseAdminChatID != 0 {
		logrus.Infof("Admin initialized with chat ID: %d", cfg.BaseAdminChatID)
	}

	client, err := telegram.NewClient(cfg.TelegramToken, cfg.TelegramDebug)
	if err != nil {
		logrus.Fatal("Failed to create Telegram client:", err)
	}
	logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)

	botHandler := handler.NewHandler(client, userService, attendanceService, holidayService, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.ReminderTime != "" {
		reminders, err := service.NewReminderService(userRepo, attendanceService, client, cfg.ReminderTime, cfg.Location)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to create reminder service")
		}
		go reminders.Run(ctx)
	}

	updates := client.Bot.GetUpdatesChan(client.UpdateConfig)
	done := make(chan struct{})
	go func() {
		botHandler.HandleUpdates(updates)
		close(done)
	}()

	logrus.WithFields(logrus.Fields{
		"term_start": cfg.TermStart.String(),
		"subjects":   len(catalog.Subjects()),
	}).Info("Bot started. Press Ctrl+C to stop.")
	<-ctx.Done()

	// Канал обновлений закрывается, обработчик дочитывает оставшееся
	client.Bot.StopReceivingUpdates()
	<-done

	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Bot stopped gracefully")
}

func openDatabase(cfg *config.BotConfig) (*gorm.DB, error) {
	if cfg.DatabaseDriver == config.DriverPostgres {
		return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true, // SQLite ограничения
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Включаем поддержку внешних ключей (требуется для SQLite)
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logrus.Infof("Warning: Failed to enable foreign keys: %v", err)
	}
	return db, nil
}

func loadCatalog(cfg *config.BotConfig) *timetable.Catalog {
	catalog := timetable.Default()
	if cfg.TimetablePath != "" {
		loaded, err := timetable.LoadFile(cfg.TimetablePath)
		if err != nil {
			logrus.WithError(err).WithField("path", cfg.TimetablePath).Fatal("Failed to load timetable")
		}
		catalog = loaded
		logrus.WithField("path", cfg.TimetablePath).Info("Timetable loaded from file")
	}

	if orphans := catalog.UnknownSubjectSlots(); len(orphans) > 0 {
		logrus.WithField("slots", orphans).Warn("Slots reference unknown subjects and will be ignored")
	}
	return catalog
}
