package s3

import (
	"context"
	"errors"
	"net"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// transientCodes: коды ошибок провайдера, после которых запрос можно повторить
var transientCodes = map[string]bool{
	"RequestTimeout":     true,
	"SlowDown":           true,
	"InternalError":      true,
	"ServiceUnavailable": true,
	"Throttling":         true,
}

// IsTransient классифицирует ошибку хранилища.
// Таймауты сети и ответы 5xx временные, ошибки запроса и учетных данных постоянные.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode() >= 500
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if transientCodes[apiErr.ErrorCode()] {
			return true
		}
		return apiErr.ErrorFault() == smithy.FaultServer
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}
