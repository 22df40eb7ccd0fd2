package aliyun_oss

import (
	"bytes"
	"io"
	"time"

	"github.com/haierkeys/document-vault-service/pkg/fileurl"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
)

// SendFile 上传文件
func (p *OSS) SendFile(fileKey string, file io.Reader, cType string) (string, error) {
	if p.Bucket == nil {
		if err := p.GetBucket(""); err != nil {
			return "", errors.Wrap(err, "aliyun_oss")
		}
	}
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	err := p.Bucket.PutObject(fileKey, file, oss.ContentType(cType))
	if err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return fileKey, nil
}

// SendContent 上传字节内容
func (p *OSS) SendContent(fileKey string, content []byte) (string, error) {
	if p.Bucket == nil {
		if err := p.GetBucket(""); err != nil {
			return "", errors.Wrap(err, "aliyun_oss")
		}
	}
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	err := p.Bucket.PutObject(fileKey, bytes.NewReader(content))
	if err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return fileKey, nil
}

// GetFile 下载对象，调用方负责 Close
func (p *OSS) GetFile(fileKey string) (io.ReadCloser, error) {
	if p.Bucket == nil {
		if err := p.GetBucket(""); err != nil {
			return nil, errors.Wrap(err, "aliyun_oss")
		}
	}
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	body, err := p.Bucket.GetObject(fileKey)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}
	return body, nil
}

func (p *OSS) IsExist(fileKey string) (bool, error) {
	if p.Bucket == nil {
		if err := p.GetBucket(""); err != nil {
			return false, errors.Wrap(err, "aliyun_oss")
		}
	}
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	exist, err := p.Bucket.IsObjectExist(fileKey)
	if err != nil {
		return false, errors.Wrap(err, "aliyun_oss")
	}
	return exist, nil
}

// SignURL generates a signed GET URL valid for the given duration
// SignURL 生成给定有效期的签名 GET URL
func (p *OSS) SignURL(fileKey string, expiry time.Duration) (string, error) {
	if p.Bucket == nil {
		if err := p.GetBucket(""); err != nil {
			return "", errors.Wrap(err, "aliyun_oss")
		}
	}
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	signedURL, err := p.Bucket.SignURL(fileKey, oss.HTTPGet, int64(expiry/time.Second))
	if err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return signedURL, nil
}
