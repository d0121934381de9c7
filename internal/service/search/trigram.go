package search

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

const (
	ngramSize      = 3
	ngramSeparator = " "
)

// Trigrams возвращает все подстроки длины 3 со сдвигом 1.
// Для строки короче трех символов результат пустой.
func Trigrams(s string) []string {
	chars := []rune(s)
	if len(chars) < ngramSize {
		return []string{}
	}

	grams := make([]string, 0, len(chars)-ngramSize+1)
	for i := 0; i+ngramSize <= len(chars); i++ {
		grams = append(grams, string(chars[i:i+ngramSize]))
	}
	return grams
}

// TrigramBlob склеивает триграммы строки через пробел
func TrigramBlob(s string) string {
	return strings.Join(Trigrams(s), ngramSeparator)
}

// LegacyEncode перекодирует строку так, как этого ожидает индекс:
// каждый байт читается как символ ISO-8859-1 и записывается в UTF-8.
// Для байтов вне ASCII это искажает текст; формат индекса зависит именно от такого поведения.
func LegacyEncode(s string) string {
	out, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return out
}
