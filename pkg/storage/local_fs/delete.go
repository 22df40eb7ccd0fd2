package local_fs

import (
	"os"

	"github.com/haierkeys/document-vault-service/pkg/fileurl"
)

func (p *LocalFS) Delete(fileKey string) error {
	dstFileKey := p.getSavePath() + fileKey
	if fileurl.IsExist(dstFileKey) {
		return os.Remove(dstFileKey)
	}
	return nil
}
