package weekends

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"class-attendance-bot/pkg/dateutil"
)

// CalendarJSON - структура производственного календаря
type CalendarJSON struct {
	Year   int             `json:"year"`
	Months []MonthWeekends `json:"months"`
}

type MonthWeekends struct {
	Month int    `json:"month"`
	Days  string `json:"days"`
}

// ParseFile читает календарь из файла
func ParseFile(filePath string) ([]dateutil.Date, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar file: %w", err)
	}
	return Parse(data)
}

// Parse разбирает JSON календаря и возвращает отсортированный список выходных дней
func Parse(data []byte) ([]dateutil.Date, error) {
	var calendar CalendarJSON
	if err := json.Unmarshal(data, &calendar); err != nil {
		return nil, fmt.Errorf("failed to unmarshal calendar JSON: %w", err)
	}

	days := []dateutil.Date{}
	for _, monthData := range calendar.Months {
		if monthData.Month < 1 || monthData.Month > 12 {
			return nil, fmt.Errorf("invalid month %d", monthData.Month)
		}

		for _, dayStr := range strings.Split(monthData.Days, ",") {
			// Убираем пометки сокращенных (*) и перенесенных (+) дней
			dayStr = strings.TrimSpace(dayStr)
			dayStr = strings.TrimSuffix(dayStr, "+")
			dayStr = strings.TrimSuffix(dayStr, "*")
			if dayStr == "" {
				continue
			}

			day, err := strconv.Atoi(dayStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse day '%s' in month %d: %w",
					dayStr, monthData.Month, err)
			}
			if day < 1 || day > dateutil.DaysInMonth(calendar.Year, time.Month(monthData.Month)) {
				return nil, fmt.Errorf("day %d out of range for month %d", day, monthData.Month)
			}

			days = append(days, dateutil.New(calendar.Year, time.Month(monthData.Month), day))
		}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days, nil
}

// Contains проверяет, есть ли дата в списке
func Contains(days []dateutil.Date, date dateutil.Date) bool {
	for _, day := range days {
		if day.Equal(date) {
			return true
		}
	}
	return false
}
