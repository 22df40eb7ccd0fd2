package aliyun_oss

import (
	"github.com/haierkeys/document-vault-service/pkg/fileurl"

	"github.com/pkg/errors"
)

func (p *OSS) Delete(fileKey string) error {
	if p.Bucket == nil {
		if err := p.GetBucket(""); err != nil {
			return errors.Wrap(err, "aliyun_oss")
		}
	}
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	if err := p.Bucket.DeleteObject(fileKey); err != nil {
		return errors.Wrap(err, "aliyun_oss")
	}
	return nil
}
