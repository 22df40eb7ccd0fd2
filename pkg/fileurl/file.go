package fileurl

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// IsDir determines if the given path is a directory
// IsDir 判断所给路径是否为文件夹
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// GetFileExt gets file extension
// GetFileExt 获取文件后缀
func GetFileExt(name string) string {
	return path.Ext(name)
}

// GetRandomBlobKey returns a unique object key preserving the original
// file extension.
// GetRandomBlobKey 生成保留原始后缀的唯一对象键
func GetRandomBlobKey(fileName string) string {
	return uuid.New().String() + GetFileExt(fileName)
}

// IsExist checks whether a file or directory exists
// IsExist 检查文件或目录是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates the parent directory of dst
// CreatePath 创建 dst 的父级目录
func CreatePath(dst string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(dst), perm)
}

// GetExePath gets the directory of the running executable
// GetExePath 获取可执行文件所在目录
func GetExePath() string {
	exePath, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exePath)
}

// PathSuffixCheckAdd appends suffix to path when missing (empty path kept empty)
// PathSuffixCheckAdd 当路径缺少后缀时补齐（空路径保持为空）
func PathSuffixCheckAdd(path string, suffix string) string {
	if path == "" {
		return path
	}
	if !strings.HasSuffix(path, suffix) {
		return path + suffix
	}
	return path
}
