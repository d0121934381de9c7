package search

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"filemanager/internal/domain"
)

const defaultWorkers = 8

var documentsBuiltTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "filemanager_search_documents_built_total",
	Help: "Total number of search documents built.",
})

// BuildDocument строит документ индекса для записи с идентификатором id и именем name.
// Пустое имя дает пустой, но корректный документ.
func BuildDocument(id int64, name string) domain.SearchDocument {
	slug := Slug(name)
	return domain.SearchDocument{
		ID:         id,
		Name:       slug,
		NameNgrams: LegacyEncode(TrigramBlob(slug)),
	}
}

// Indexer строит документы для одной записи или пачки записей
type Indexer struct {
	workers int
	logger  *zap.Logger
}

// NewIndexer создает Indexer; workers ограничивает параллелизм пакетной индексации
func NewIndexer(workers int, logger *zap.Logger) *Indexer {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Indexer{
		workers: workers,
		logger:  logger.With(zap.String("component", "search_indexer")),
	}
}

// Index строит документ для записи
func (i *Indexer) Index(record domain.FileRecord) domain.SearchDocument {
	documentsBuiltTotal.Inc()
	return BuildDocument(record.ID, record.DisplayName())
}

// IndexBatch строит документы параллельно. Порядок результата совпадает с порядком records.
func (i *Indexer) IndexBatch(ctx context.Context, records []domain.FileRecord) ([]domain.SearchDocument, error) {
	docs := make([]domain.SearchDocument, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.workers)

	for idx := range records {
		idx := idx
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			docs[idx] = i.Index(records[idx])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch indexing interrupted: %w", err)
	}

	i.logger.Debug("batch indexed", zap.Int("documents", len(docs)))
	return docs, nil
}
