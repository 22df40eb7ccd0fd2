package minio

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Config struct {
	IsEnabled       bool   `yaml:"is-enable"`
	BucketName      string `yaml:"bucket-name"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

type MinIO struct {
	S3Client      *s3.Client
	PresignClient *s3.PresignClient
	Config        *Config
	logger        *zap.Logger
}

// Option 配置选项函数类型
type Option func(*MinIO)

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(m *MinIO) {
		m.logger = logger
	}
}

var clients = make(map[string]*MinIO)

// NewClient creates a MinIO storage instance using the S3-compatible API
// NewClient 通过 S3 兼容接口创建 MinIO 存储实例
func NewClient(conf *Config, opts ...Option) (*MinIO, error) {
	if clients[conf.AccessKeyID] != nil {
		for _, opt := range opts {
			opt(clients[conf.AccessKeyID])
		}
		return clients[conf.AccessKeyID], nil
	}

	region := conf.Region
	if region == "" {
		region = "us-east-1"
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, errors.Wrap(err, "minio")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(conf.Endpoint)
		// MinIO 需要 path-style 访问
		o.UsePathStyle = true
	})

	clients[conf.AccessKeyID] = &MinIO{
		S3Client:      client,
		PresignClient: s3.NewPresignClient(client),
		Config:        conf,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(clients[conf.AccessKeyID])
	}
	return clients[conf.AccessKeyID], nil
}
