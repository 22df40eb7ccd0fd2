package local_fs

import (
	"io"
	"os"

	"github.com/haierkeys/document-vault-service/pkg/fileurl"

	"github.com/pkg/errors"
)

// SendFile 保存文件到本地磁盘
func (p *LocalFS) SendFile(fileKey string, file io.Reader, cType string) (string, error) {
	dstFileKey := p.getSavePath() + fileKey

	if err := fileurl.CreatePath(dstFileKey, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	out, err := os.Create(dstFileKey)
	if err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	return fileKey, nil
}

// SendContent 保存字节内容到本地磁盘
func (p *LocalFS) SendContent(fileKey string, content []byte) (string, error) {
	dstFileKey := p.getSavePath() + fileKey

	if err := fileurl.CreatePath(dstFileKey, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	if err := os.WriteFile(dstFileKey, content, 0644); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	return fileKey, nil
}

// GetFile 打开本地文件，调用方负责 Close
func (p *LocalFS) GetFile(fileKey string) (io.ReadCloser, error) {
	f, err := os.Open(p.getSavePath() + fileKey)
	if err != nil {
		return nil, errors.Wrap(err, "local_fs")
	}
	return f, nil
}

func (p *LocalFS) IsExist(fileKey string) (bool, error) {
	return fileurl.IsExist(p.getSavePath() + fileKey), nil
}
