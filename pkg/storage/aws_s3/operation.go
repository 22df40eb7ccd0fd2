package aws_s3

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/haierkeys/document-vault-service/pkg/fileurl"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
)

// SendFile 上传文件
func (p *S3) SendFile(fileKey string, file io.Reader, cType string) (string, error) {
	bucket := p.Config.BucketName
	ctx := context.Background()

	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	_, err := p.S3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(fileKey),
		Body:        file,
		ContentType: aws.String(cType),
	})
	if err != nil {
		return "", errors.Wrap(err, "aws_s3")
	}
	return fileKey, nil
}

// SendContent 上传字节内容
func (p *S3) SendContent(fileKey string, content []byte) (string, error) {
	ctx := context.Background()
	bucket := p.Config.BucketName

	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	_, err := p.S3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:            aws.String(bucket),
		Key:               aws.String(fileKey),
		Body:              bytes.NewReader(content),
		ChecksumAlgorithm: types.ChecksumAlgorithmSha256,
	})
	if err != nil {
		return "", errors.Wrap(err, "aws_s3")
	}
	return fileKey, nil
}

// GetFile 下载对象，调用方负责 Close
func (p *S3) GetFile(fileKey string) (io.ReadCloser, error) {
	ctx := context.Background()
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	out, err := p.S3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(fileKey),
	})
	if err != nil {
		return nil, errors.Wrap(err, "aws_s3")
	}
	return out.Body, nil
}

func (p *S3) IsExist(fileKey string) (bool, error) {
	ctx := context.Background()
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	_, err := p.S3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(fileKey),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, errors.Wrap(err, "aws_s3")
	}
	return true, nil
}

// SignURL generates a presigned GET URL valid for the given duration
// SignURL 生成给定有效期的预签名 GET URL
func (p *S3) SignURL(fileKey string, expiry time.Duration) (string, error) {
	ctx := context.Background()
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	req, err := p.PresignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(fileKey),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", errors.Wrap(err, "aws_s3")
	}
	return req.URL, nil
}
