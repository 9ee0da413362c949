// Package docstore keeps uploaded KYC documents. Callers only ever see the
// returned reference; bytes stay in the backing store.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrTooLarge = errors.New("document exceeds size limit")

type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

var allowedExt = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ObjectKey builds a collision-free key under the provider's prefix. The
// original file name only contributes its extension.
func ObjectKey(providerID int64, fileName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExt[ext] {
		return "", fmt.Errorf("unsupported document type %q", ext)
	}
	return path.Join("kyc", fmt.Sprintf("%d", providerID), uuid.NewString()+ext), nil
}

// limitReader fails instead of truncating when more than max bytes arrive.
type limitReader struct {
	r   io.Reader
	n   int64
	max int64
}

func newLimitReader(r io.Reader, max int64) *limitReader {
	return &limitReader{r: r, max: max}
}

func (l *limitReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.n += int64(n)
	if l.max > 0 && l.n > l.max {
		return n, ErrTooLarge
	}
	return n, err
}
