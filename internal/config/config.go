package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"class-attendance-bot/internal/timetable"
	"class-attendance-bot/pkg/dateutil"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type BotConfig struct {
	TelegramToken   string
	TelegramDebug   bool
	BaseAdminChatID int64

	DatabaseDriver string
	DatabaseURL    string

	TermStart           dateutil.Date
	TimetablePath       string // пусто - встроенное расписание
	HolidayCalendarPath string
	Location            *time.Location
	ReminderTime        string // HH:MM, пусто - без напоминаний
}

var instance *BotConfig
var once sync.Once

func GetBotConfig() *BotConfig {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.Warnf("no .env file loaded: %s", err.Error())
		}

		cfg, err := Load()
		if err != nil {
			logrus.Fatalf("invalid config: %s", err.Error())
		}
		instance = cfg
	})

	return instance
}

// Load читает конфиг из переменных окружения
func Load() (*BotConfig, error) {
	cfg := &BotConfig{}

	cfg.TelegramToken = getEnv("TELEGRAM_BOT_TOKEN", "")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("could not get bot token")
	}
	cfg.TelegramDebug = getEnvAsBool("TELEGRAM_DEBUG", false)

	adminID, err := getEnvAsInt("BASE_ADMIN_CHAT_ID", 0)
	if err != nil {
		return nil, fmt.Errorf("BASE_ADMIN_CHAT_ID: %w", err)
	}
	cfg.BaseAdminChatID = adminID

	cfg.DatabaseDriver = strings.ToLower(getEnv("DATABASE_DRIVER", DriverSQLite))
	if cfg.DatabaseDriver != DriverSQLite && cfg.DatabaseDriver != DriverPostgres {
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	cfg.DatabaseURL = getEnv("DATABASE_URL", "attendance.db")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("could not get db url")
	}

	cfg.TermStart, err = dateutil.Parse(getEnv("TERM_START_DATE", timetable.DefaultTermStart))
	if err != nil {
		return nil, fmt.Errorf("TERM_START_DATE: %w", err)
	}

	cfg.TimetablePath = getEnv("TIMETABLE_PATH", "")
	cfg.HolidayCalendarPath = getEnv("HOLIDAY_CALENDAR_PATH", "")

	cfg.Location, err = time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}

	cfg.ReminderTime = getEnv("REMINDER_TIME", "")
	if cfg.ReminderTime != "" {
		if _, err := time.Parse("15:04", cfg.ReminderTime); err != nil {
			return nil, fmt.Errorf("REMINDER_TIME must be HH:MM: %w", err)
		}
	}

	return cfg, nil
}

// Today - текущая дата в часовом поясе бота
func (c *BotConfig) Today() dateutil.Date {
	return dateutil.Today(time.Now(), c.Location)
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.TrimSpace(value)
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) (int64, error) {
	valStr := getEnv(name, "")
	if valStr == "" {
		return defaultVal, nil
	}
	return strconv.ParseInt(valStr, 10, 64)
}
