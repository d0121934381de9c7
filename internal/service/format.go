package service

import (
	"math/big"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultDateLayout: формат дат в ответах по умолчанию
const DefaultDateLayout = "02. Jan. 2006, 15:04"

// FormatSize переводит точное количество байт в десятичные единицы (1 kB = 1000 B).
// Хранимое значение не меняется; нераспознанная строка возвращается как есть.
func FormatSize(raw string) string {
	n, ok := new(big.Int).SetString(strings.TrimSpace(raw), 10)
	if !ok || n.Sign() < 0 {
		return raw
	}
	return humanize.BigBytes(n)
}

// FormatDate форматирует время для отображения
func FormatDate(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout)
}
