package s3

import (
	"fmt"
	"time"
)

// Config описывает подключение к S3-совместимому хранилищу (AWS S3, DigitalOcean Spaces).
type Config struct {
	AccessKeyID     string        `mapstructure:"AccessKeyID"`
	SecretAccessKey string        `mapstructure:"SecretAccessKey"`
	Bucket          string        `mapstructure:"Bucket"`
	Region          string        `mapstructure:"Region"`
	Endpoint        string        `mapstructure:"Endpoint"`
	UsePathStyle    bool          `mapstructure:"UsePathStyle"`
	MaxRetries      int           `mapstructure:"MaxRetries"`
	RetryInterval   time.Duration `mapstructure:"RetryInterval"`
}

// Validate проверяет, что все необходимые поля заполнены
func (c *Config) Validate() error {
	if c.AccessKeyID == "" {
		return fmt.Errorf("AccessKeyID is required")
	}
	if c.SecretAccessKey == "" {
		return fmt.Errorf("SecretAccessKey is required")
	}
	if c.Bucket == "" {
		return fmt.Errorf("Bucket is required")
	}
	if c.Region == "" {
		return fmt.Errorf("Region is required")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.RetryInterval <= 0 {
		c.RetryInterval = defaultRetryInterval
	}
}
