// Package search строит документы для внешнего поискового индекса:
// нормализация имени, триграммы и перекодировка в однобайтовый формат индекса.
package search

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// wordSeparator разделяет слова в нормализованном имени
const wordSeparator = " "

func newFolder() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Slug нормализует имя: снимает диакритику, приводит к нижнему регистру,
// удаляет пунктуацию и схлопывает пробелы в один.
// Остальные буквы (кириллица, греческий, CJK) транслитерируются в ASCII.
// Дефисы становятся разделителями, "@" превращается в слово "at".
func Slug(name string) string {
	if name == "" {
		return ""
	}

	folded, _, err := transform.String(newFolder(), name)
	if err != nil {
		folded = name
	}
	folded = unidecode.Unidecode(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r == '-' || unicode.IsSpace(r):
			b.WriteString(wordSeparator)
		case r == '@':
			b.WriteString(wordSeparator + "at" + wordSeparator)
		case r > unicode.MaxASCII:
			// транслитерации нет
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		}
	}

	return strings.Join(strings.Fields(b.String()), wordSeparator)
}
