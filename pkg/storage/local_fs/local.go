package local_fs

import (
	"github.com/haierkeys/document-vault-service/pkg/fileurl"
)

type Config struct {
	IsEnabled  bool   `yaml:"is-enable" default:"true"`
	SavePath   string `yaml:"save-path" default:"storage/uploads"`
	CustomPath string `yaml:"custom-path"`
}

type LocalFS struct {
	Config *Config
}

func NewClient(cf *Config) (*LocalFS, error) {
	return &LocalFS{
		Config: cf,
	}, nil
}

func (p *LocalFS) getSavePath() string {
	return fileurl.PathSuffixCheckAdd(p.Config.SavePath, "/") +
		fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/")
}
