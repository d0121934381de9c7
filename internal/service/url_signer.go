package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"filemanager/internal/domain"
	"filemanager/internal/service/s3"
)

const (
	// ObjectKeyPrefix: префикс ключей файлов и миниатюр в хранилище
	ObjectKeyPrefix = "file-manager/"
	// SignedURLTTL: срок жизни подписанной ссылки
	SignedURLTTL = 24 * time.Hour
	// previewRangeEnd: последний байт диапазона для частичного предпросмотра
	previewRangeEnd = 600

	fileRoute      = "/file/"
	thumbnailRoute = "/thumbnail/"
	publicSegment  = "/public/"
)

// URLSigner вычисляет внешние ссылки на файл и его миниатюру.
// Состояния между вызовами не хранит: все входные данные передаются явно.
type URLSigner struct {
	baseURL string
	signer  s3.Signer
}

// NewURLSigner создает URLSigner. signer нужен только для BackendObjectStore и может быть nil для локального хранилища.
func NewURLSigner(baseURL string, signer s3.Signer) *URLSigner {
	return &URLSigner{
		baseURL: strings.TrimRight(baseURL, "/"),
		signer:  signer,
	}
}

// FileURL возвращает ссылку на содержимое файла
func (u *URLSigner) FileURL(ctx context.Context, backend BackendKind, view domain.FileView) (string, error) {
	record := view.Record()

	switch backend {
	case BackendObjectStore:
		signed, err := u.sign(ctx, s3.SignRequest{
			Key:       ObjectKeyPrefix + record.StorageKey(),
			Expires:   SignedURLTTL,
			Overrides: FileResponseOverrides(record),
		})
		if err != nil {
			return "", err
		}
		return signed.URL, nil

	case BackendLocal:
		token, _ := view.PublicToken()
		return LocalRoute(u.baseURL, fileRoute, record.StorageKey(), token), nil

	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownDriver, backend)
	}
}

// ThumbnailURL возвращает ссылку на миниатюру или nil, если миниатюры нет
func (u *URLSigner) ThumbnailURL(ctx context.Context, backend BackendKind, view domain.FileView) (*string, error) {
	record := view.Record()
	if !record.HasThumbnail() {
		return nil, nil
	}

	switch backend {
	case BackendObjectStore:
		signed, err := u.sign(ctx, s3.SignRequest{
			Key:     ObjectKeyPrefix + record.ThumbnailKey(),
			Expires: SignedURLTTL,
		})
		if err != nil {
			return nil, err
		}
		return &signed.URL, nil

	case BackendLocal:
		token, _ := view.PublicToken()
		route := LocalRoute(u.baseURL, thumbnailRoute, record.ThumbnailKey(), token)
		return &route, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, backend)
	}
}

func (u *URLSigner) sign(ctx context.Context, req s3.SignRequest) (s3.SignedURL, error) {
	if u.signer == nil {
		return s3.SignedURL{}, fmt.Errorf("%w: object storage client is not configured", s3.ErrSigningFailed)
	}
	return u.signer.PresignGet(ctx, req)
}

// FileResponseOverrides собирает заголовки ответа для подписанной ссылки на файл:
// тип, длина, диапазон предпросмотра 0-600 и принудительное скачивание.
func FileResponseOverrides(record domain.FileRecord) *s3.ResponseOverrides {
	return &s3.ResponseOverrides{
		AcceptRanges:       "bytes",
		ContentType:        record.MimeType(),
		ContentLength:      record.Filesize,
		ContentRange:       fmt.Sprintf("bytes 0-%d/%s", previewRangeEnd, record.Filesize),
		ContentDisposition: "attachment; filename=" + record.DisplayName() + "." + record.MimeType(),
	}
}

// LocalRoute строит маршрут приложения: <base><route><key>[/public/<token>]
func LocalRoute(baseURL, route, key, token string) string {
	link := baseURL + route + url.PathEscape(key)
	if token != "" {
		link += publicSegment + url.PathEscape(token)
	}
	return link
}
