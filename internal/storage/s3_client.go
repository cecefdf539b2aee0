package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	disol_errors "github.com/pr-poehali-dev/ai-programmer-disol/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string
	// CDNBase is the public host objects are served from.
	CDNBase string
}

type Client struct {
	cfg S3Config
	s3  *s3.Client
}

func NewClient(ctx context.Context, cfg S3Config) (*Client, error) {
	if cfg.Region == "" || cfg.Bucket == "" {
		return nil, errors.New("s3 region and bucket are required")
	}

	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	endpoint := ""
	if cfg.Endpoint != "" {
		endpoint = cfg.Endpoint
		if parsed, err := url.Parse(endpoint); err == nil {
			endpoint = parsed.String()
		}
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{
		cfg: cfg,
		s3:  s3Client,
	}, nil
}

// Configured reports missing credentials as a configuration error.
func (c *Client) Configured() error {
	if c == nil || c.s3 == nil {
		return disol_errors.Configuration("object storage is not configured")
	}
	if c.cfg.AccessKey == "" || c.cfg.SecretKey == "" {
		return disol_errors.Configuration("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are required")
	}
	return nil
}

func (c *Client) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	if err := c.Configured(); err != nil {
		return err
	}
	if key == "" {
		return errors.New("object key is required")
	}
	if contentType == "" {
		return errors.New("content type is required")
	}

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// FileURL returns the public CDN address of key. The path embeds the
// access key id, which is how the CDN maps requests to a bucket owner.
func (c *Client) FileURL(key string) string {
	if c == nil || key == "" {
		return ""
	}
	return PublicURL(c.cfg.CDNBase, c.cfg.AccessKey, key)
}

func PublicURL(cdnBase, accessKey, key string) string {
	base := strings.TrimRight(cdnBase, "/")
	return fmt.Sprintf("%s/projects/%s/bucket/%s", base, accessKey, strings.TrimLeft(key, "/"))
}
