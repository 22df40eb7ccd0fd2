package storage

import (
	"io"
	"time"

	"github.com/haierkeys/document-vault-service/pkg/code"
	"github.com/haierkeys/document-vault-service/pkg/storage/aliyun_oss"
	"github.com/haierkeys/document-vault-service/pkg/storage/aws_s3"
	"github.com/haierkeys/document-vault-service/pkg/storage/cloudflare_r2"
	"github.com/haierkeys/document-vault-service/pkg/storage/local_fs"
	"github.com/haierkeys/document-vault-service/pkg/storage/minio"
)

type Type = string
type CloudType = Type

const OSS CloudType = "oss"
const R2 CloudType = "r2"
const S3 CloudType = "s3"
const LOCAL Type = "localfs"
const MinIO CloudType = "minio"

var StorageTypeMap = map[Type]bool{
	OSS:   true,
	R2:    true,
	S3:    true,
	LOCAL: true,
	MinIO: true,
}

var CloudStorageTypeMap = map[Type]bool{
	OSS:   true,
	R2:    true,
	S3:    true,
	MinIO: true,
}

// Config Unified storage configuration
// Config 统一存储配置
type Config struct {
	Type Type `yaml:"type"`

	// Common settings
	IsEnabled  bool   `yaml:"is-enable"`
	CustomPath string `yaml:"custom-path"`

	// Cloud Storage (S3/OSS/MinIO/R2)
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	AccountID       string `yaml:"account-id"` // Cloudflare R2 specific

	// Local FS
	SavePath string `yaml:"save-path"`
}

// Storager is the object-store surface consumed by the services:
// upload, download, delete, existence check.
// Storager 是服务层消费的对象存储接口：上传、下载、删除、存在性检查
type Storager interface {
	SendFile(fileKey string, file io.Reader, cType string) (string, error)
	SendContent(fileKey string, content []byte) (string, error)
	GetFile(fileKey string) (io.ReadCloser, error)
	Delete(fileKey string) error
	IsExist(fileKey string) (bool, error)
}

// URLSigner is implemented by backends able to produce time-limited
// signed URLs for a stored object.
// URLSigner 由支持生成限时签名 URL 的存储后端实现
type URLSigner interface {
	SignURL(fileKey string, expiry time.Duration) (string, error)
}

func NewClient(config *Config) (Storager, error) {
	if config == nil {
		return nil, code.ErrorInvalidStorageType
	}

	cType := config.Type
	if cType == LOCAL {
		cfg := &local_fs.Config{
			IsEnabled:  config.IsEnabled,
			SavePath:   config.SavePath,
			CustomPath: config.CustomPath,
		}
		return local_fs.NewClient(cfg)
	} else if cType == OSS {
		cfg := &aliyun_oss.Config{
			IsEnabled:       config.IsEnabled,
			Endpoint:        config.Endpoint,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		}
		return aliyun_oss.NewClient(cfg)
	} else if cType == R2 {
		cfg := &cloudflare_r2.Config{
			IsEnabled:       config.IsEnabled,
			AccountID:       config.AccountID,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		}
		return cloudflare_r2.NewClient(cfg)
	} else if cType == S3 {
		cfg := &aws_s3.Config{
			IsEnabled:       config.IsEnabled,
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		}
		return aws_s3.NewClient(cfg)
	} else if cType == MinIO {
		cfg := &minio.Config{
			IsEnabled:       config.IsEnabled,
			Endpoint:        config.Endpoint,
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		}
		return minio.NewClient(cfg)
	}
	return nil, code.ErrorInvalidStorageType
}
