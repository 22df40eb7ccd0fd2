package aws_s3

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Config struct {
	IsEnabled       bool   `yaml:"is-enable"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

type S3 struct {
	S3Client      *s3.Client
	PresignClient *s3.PresignClient
	Config        *Config
	logger        *zap.Logger
}

// Option 配置选项函数类型
type Option func(*S3)

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(s *S3) {
		s.logger = logger
	}
}

var clients = make(map[string]*S3)

// NewClient creates an S3 storage instance
// NewClient 创建 S3 存储实例
// opts 可选参数用于配置日志器等选项
func NewClient(conf *Config, opts ...Option) (*S3, error) {
	if clients[conf.AccessKeyID] != nil {
		for _, opt := range opts {
			opt(clients[conf.AccessKeyID])
		}
		return clients[conf.AccessKeyID], nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret, "")),
		config.WithRegion(conf.Region),
	)
	if err != nil {
		return nil, errors.Wrap(err, "aws_s3")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {})

	clients[conf.AccessKeyID] = &S3{
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
