package global

import (
	"github.com/haierkeys/document-vault-service/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT string
	Name string = "Document Vault Service"
)

func init() {

	filename := fileurl.GetExePath()
	ROOT = filename + "/"

}
