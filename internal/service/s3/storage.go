// storage.go
package s3

import (
	"context"
	"errors"
	"time"
)

// ErrSigningFailed возвращается, когда подписать URL не удалось (в том числе после всех повторов)
var ErrSigningFailed = errors.New("failed to sign object url")

// ResponseOverrides задает заголовки ответа, которые хранилище подставит при скачивании по подписанной ссылке
type ResponseOverrides struct {
	ContentType        string
	ContentLength      string
	ContentRange       string
	AcceptRanges       string
	ContentDisposition string
}

// SignRequest описывает запрос на подпись GET-ссылки
type SignRequest struct {
	Key       string
	Expires   time.Duration
	Overrides *ResponseOverrides
}

// SignedURL: подписанная ссылка и момент, не позже которого она истекает
type SignedURL struct {
	URL       string
	ExpiresAt time.Time
}

// Signer определяет интерфейс подписи ссылок S3-совместимого хранилища
type Signer interface {
	PresignGet(ctx context.Context, req SignRequest) (SignedURL, error)
}
