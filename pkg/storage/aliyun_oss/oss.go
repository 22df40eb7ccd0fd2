package aliyun_oss

import (
	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Config struct {
	IsEnabled       bool   `yaml:"is-enable"`
	BucketName      string `yaml:"bucket-name"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

type OSS struct {
	Client *oss.Client
	Bucket *oss.Bucket
	Config *Config
	logger *zap.Logger
}

// Option 配置选项函数类型
type Option func(*OSS)

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(p *OSS) {
		p.logger = logger
	}
}

var clients = make(map[string]*OSS)

// NewClient creates an Aliyun OSS storage instance
// NewClient 创建阿里云 OSS 存储实例
func NewClient(conf *Config, opts ...Option) (*OSS, error) {
	if clients[conf.AccessKeyID] != nil {
		for _, opt := range opts {
			opt(clients[conf.AccessKeyID])
		}
		return clients[conf.AccessKeyID], nil
	}

	client, err := oss.New(conf.Endpoint, conf.AccessKeyID, conf.AccessKeySecret)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}

	clients[conf.AccessKeyID] = &OSS{
		Client: client,
		Config: conf,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(clients[conf.AccessKeyID])
	}
	return clients[conf.AccessKeyID], nil
}

// GetBucket lazily binds the bucket handle
// GetBucket 延迟绑定 bucket 句柄
func (p *OSS) GetBucket(bucketName string) error {
	if len(bucketName) <= 0 {
		bucketName = p.Config.BucketName
	}
	var err error
	p.Bucket, err = p.Client.Bucket(bucketName)
	return err
}
