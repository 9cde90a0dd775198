// Утилитарные функции общего назначения
package utils

import (
	"math"
	"time"
)

// TimestampLayout — формат времени записей и отчётов: "YYYY-MM-DD HH:MM:SS".
const TimestampLayout = "2006-01-02 15:04:05"

// Round2 округляет значение до двух знаков после запятой.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatTimestamp форматирует время в строку вида "2006-01-02 15:04:05".
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
