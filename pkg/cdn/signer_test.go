package cdn

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type stubSigner struct {
	url string
	err error
}

func (s *stubSigner) SignURL(fileKey string, expiry time.Duration) (string, error) {
	return s.url, s.err
}

func TestSignURL(t *testing.T) {
	conf := &Config{IsEnabled: true}
	signer := NewSigner(conf, &stubSigner{url: "https://bucket.s3.amazonaws.com/blob/a.pdf?X-Amz-Signature=abc"})

	got := signer.SignURL("blob/a.pdf", time.Hour)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/blob/a.pdf?X-Amz-Signature=abc", got)
}

func TestSignURLRewritesCdnHost(t *testing.T) {
	conf := &Config{IsEnabled: true, Endpoint: "cdn.example.com"}
	signer := NewSigner(conf, &stubSigner{url: "https://bucket.s3.amazonaws.com/blob/a.pdf?X-Amz-Signature=abc"})

	got := signer.SignURL("blob/a.pdf", time.Hour)
	assert.Equal(t, "https://cdn.example.com/blob/a.pdf?X-Amz-Signature=abc", got)
}

func TestSignURLRewritesCdnHostWithScheme(t *testing.T) {
	conf := &Config{IsEnabled: true, Endpoint: "http://cdn.example.com"}
	signer := NewSigner(conf, &stubSigner{url: "https://bucket.s3.amazonaws.com/blob/a.pdf"})

	got := signer.SignURL("blob/a.pdf", time.Hour)
	assert.Equal(t, "http://cdn.example.com/blob/a.pdf", got)
}

func TestSignURLFailureReturnsEmpty(t *testing.T) {
	conf := &Config{IsEnabled: true}
	signer := NewSigner(conf, &stubSigner{err: errors.New("credentials expired")})

	assert.Equal(t, "", signer.SignURL("blob/a.pdf", time.Hour))
}

func TestSignURLDisabled(t *testing.T) {
	t.Run("nil backend", func(t *testing.T) {
		signer := NewSigner(&Config{IsEnabled: true}, nil)
		assert.False(t, signer.IsEnabled())
		assert.Equal(t, "", signer.SignURL("blob/a.pdf", time.Hour))
	})
	t.Run("disabled config", func(t *testing.T) {
		signer := NewSigner(&Config{IsEnabled: false}, &stubSigner{url: "https://x/y"})
		assert.False(t, signer.IsEnabled())
		assert.Equal(t, "", signer.SignURL("blob/a.pdf", time.Hour))
	})
}
