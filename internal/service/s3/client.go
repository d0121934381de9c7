package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const (
	defaultTimeout       = 30 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = 200 * time.Millisecond
	maxRetryInterval     = 5 * time.Second
)

// presignAPI: часть s3.PresignClient, которой пользуется Client
type presignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Client подписывает ссылки на объекты S3-совместимого хранилища
type Client struct {
	client     *s3.Client
	presign    presignAPI
	bucket     string
	maxRetries int
	interval   time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewClient создает новый экземпляр клиента S3.
// Сетевых запросов не делает, доступность бакета проверяет Ping.
func NewClient(conf *Config, logger *zap.Logger) (*Client, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid s3 configuration: %w", err)
	}
	conf.applyDefaults()

	creds := aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
		conf.AccessKeyID,
		conf.SecretAccessKey,
		"",
	))

	opts := s3.Options{
		Region:           conf.Region,
		Credentials:      creds,
		UsePathStyle:     conf.UsePathStyle,
		RetryMode:        aws.RetryModeAdaptive,
		RetryMaxAttempts: 3,
	}
	if conf.Endpoint != "" {
		opts.BaseEndpoint = aws.String(conf.Endpoint)
	}
	client := s3.New(opts)

	return &Client{
		client:     client,
		presign:    s3.NewPresignClient(client),
		bucket:     conf.Bucket,
		maxRetries: conf.MaxRetries,
		interval:   conf.RetryInterval,
		logger:     logger.With(zap.String("component", "s3_client")),
		now:        time.Now,
	}, nil
}

// Ping проверяет доступ к бакету
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := c.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucket),
	})
	if err != nil {
		return fmt.Errorf("unable to access bucket %s: %w", c.bucket, err)
	}
	return nil
}

// PresignGet подписывает GET-ссылку на объект.
// Временные ошибки провайдера повторяются с экспоненциальной задержкой,
// постоянные возвращаются сразу.
func (c *Client) PresignGet(ctx context.Context, req SignRequest) (SignedURL, error) {
	if req.Key == "" {
		return SignedURL{}, fmt.Errorf("%w: key is required", ErrSigningFailed)
	}

	start := time.Now()
	signRequestsTotal.Inc()
	defer func() { signDuration.Observe(time.Since(start).Seconds()) }()

	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(req.Key),
	}
	optFns := []func(*s3.PresignOptions){s3.WithPresignExpires(req.Expires)}

	if o := req.Overrides; o != nil {
		if o.ContentType != "" {
			input.ResponseContentType = aws.String(o.ContentType)
		}
		if o.ContentDisposition != "" {
			input.ResponseContentDisposition = aws.String(o.ContentDisposition)
		}
		if params := o.extraQuery(); len(params) > 0 {
			optFns = append(optFns, func(po *s3.PresignOptions) {
				po.ClientOptions = append(po.ClientOptions, func(opts *s3.Options) {
					opts.APIOptions = append(opts.APIOptions, addQueryParams(params))
				})
			})
		}
	}

	var signedURL string
	operation := func() error {
		out, err := c.presign.PresignGetObject(ctx, input, optFns...)
		if err != nil {
			if IsTransient(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		signedURL = out.URL
		return nil
	}

	policy := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(c.interval),
		backoff.WithMaxInterval(maxRetryInterval),
	)
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("transient signing error, retrying",
			zap.String("key", req.Key),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	err := backoff.RetryNotify(operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.maxRetries)), ctx),
		notify,
	)
	if err != nil {
		signFailuresTotal.Inc()
		c.logger.Error("failed to sign object url", zap.String("key", req.Key), zap.Error(err))
		return SignedURL{}, fmt.Errorf("%w: %s: %w", ErrSigningFailed, req.Key, err)
	}

	// Момент берется после подписи: реальный срок ссылки не превышает ExpiresAt.
	return SignedURL{
		URL:       signedURL,
		ExpiresAt: c.now().Add(req.Expires),
	}, nil
}

// extraQuery возвращает переопределения, для которых у GetObjectInput нет отдельных полей
func (o *ResponseOverrides) extraQuery() map[string]string {
	params := make(map[string]string)
	if o.ContentLength != "" {
		params["response-content-length"] = o.ContentLength
	}
	if o.ContentRange != "" {
		params["response-content-range"] = o.ContentRange
	}
	if o.AcceptRanges != "" {
		params["response-accept-ranges"] = o.AcceptRanges
	}
	return params
}

// addQueryParams добавляет параметры в query до шага подписи, чтобы они вошли в подпись
func addQueryParams(params map[string]string) func(*middleware.Stack) error {
	return func(stack *middleware.Stack) error {
		return stack.Build.Add(middleware.BuildMiddlewareFunc("ResponseOverrideParams",
			func(ctx context.Context, in middleware.BuildInput, next middleware.BuildHandler) (
				middleware.BuildOutput, middleware.Metadata, error,
			) {
				if req, ok := in.Request.(*smithyhttp.Request); ok {
					query := req.URL.Query()
					for k, v := range params {
						query.Set(k, v)
					}
					req.URL.RawQuery = query.Encode()
				}
				return next.HandleBuild(ctx, in)
			}), middleware.After)
	}
}
