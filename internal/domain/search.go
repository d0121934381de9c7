package domain

// SearchDocument: документ для внешнего поискового индекса.
// Набор полей зафиксирован схемой индекса: id, name, nameNgrams.
type SearchDocument struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	NameNgrams string `json:"nameNgrams"`
}
