// Package cdn produces time-limited download URLs for stored objects,
// optionally fronted by a CDN host.
// cdn 包为存储对象生成限时下载 URL，可选地经由 CDN 域名分发
package cdn

import (
	"net/url"
	"strings"
	"time"

	"github.com/haierkeys/document-vault-service/pkg/storage"

	"go.uber.org/zap"
)

type Config struct {
	IsEnabled bool   `yaml:"is-enable"`
	Endpoint  string `yaml:"endpoint"` // CDN 域名，回源到存储桶
}

type Signer struct {
	signer storage.URLSigner
	config *Config
	logger *zap.Logger
}

// Option 配置选项函数类型
type Option func(*Signer)

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(s *Signer) {
		s.logger = logger
	}
}

// NewSigner wraps a backend URL signer; signer may be nil when the
// configured storage cannot sign URLs.
// NewSigner 包装存储后端的签名器；后端不支持签名时 signer 可为 nil
func NewSigner(conf *Config, signer storage.URLSigner, opts ...Option) *Signer {
	s := &Signer{
		signer: signer,
		config: conf,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsEnabled reports whether signed CDN URLs can be produced at all.
// IsEnabled 返回是否具备生成签名 URL 的条件
func (s *Signer) IsEnabled() bool {
	return s != nil && s.signer != nil && s.config != nil && s.config.IsEnabled
}

// SignURL returns a signed URL for the object, rewritten to the CDN
// endpoint when one is configured. Returns "" when signing is
// unavailable or fails; it never errors.
// SignURL 返回对象的签名 URL，配置了 CDN 域名时改写为该域名；
// 不可用或失败时返回空串，不返回错误
func (s *Signer) SignURL(fileKey string, expiry time.Duration) string {
	if !s.IsEnabled() {
		return ""
	}
	signedURL, err := s.signer.SignURL(fileKey, expiry)
	if err != nil {
		s.logger.Warn("cdn: sign url failed",
			zap.String("fileKey", fileKey),
			zap.Error(err))
		return ""
	}
	if s.config.Endpoint != "" {
		if rewritten, err := rewriteHost(signedURL, s.config.Endpoint); err == nil {
			return rewritten
		}
	}
	return signedURL
}

// rewriteHost swaps the origin host for the CDN host while keeping the
// signed path and query intact.
// rewriteHost 将源站域名替换为 CDN 域名，保留签名的路径与查询参数
func rewriteHost(rawURL string, endpoint string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if strings.Contains(endpoint, "://") {
		e, err := url.Parse(endpoint)
		if err != nil {
			return "", err
		}
		u.Scheme = e.Scheme
		u.Host = e.Host
	} else {
		u.Host = endpoint
	}
	return u.String(), nil
}
