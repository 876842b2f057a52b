// Package media forwards uploaded files to the external media host.
//
// The Gateway spools the request body into a temporary file, hands the file
// to a Provider and always removes the file afterwards. The Provider decides
// the permanent URL, the media kind and the canonical file name.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"media-feed/internal/models"

	"github.com/gabriel-vasile/mimetype"
)

// ErrUploadFailed matches every *UploadError.
var ErrUploadFailed = errors.New("upload failed")

// UploadError is returned for any failure between receiving the bytes and
// getting a permanent URL back from the provider.
type UploadError struct {
	Op  string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed: %s: %v", e.Op, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

func (e *UploadError) Is(target error) bool { return target == ErrUploadFailed }

// Hint carries advisory data about the file. The provider may ignore it.
type Hint struct {
	FileName    string
	ContentType string
	Folder      string
	Tags        []string
}

// Result is the provider's answer for a stored file.
type Result struct {
	URL  string
	Kind string // provider-specific classifier, normalised by the Gateway
	Name string
}

// Provider stores a local file at a media host.
type Provider interface {
	Upload(ctx context.Context, path string, hint Hint) (*Result, error)
}

// Upload is what the Gateway reports back.
type Upload struct {
	URL  string
	Kind string
	Name string
}

type Gateway struct {
	provider Provider
	tempDir  string
	folder   string
	timeout  time.Duration
}

func NewGateway(provider Provider, tempDir, folder string, timeout time.Duration) *Gateway {
	return &Gateway{
		provider: provider,
		tempDir:  tempDir,
		folder:   folder,
		timeout:  timeout,
	}
}

const sniffLen = 3072

// Store forwards r to the provider. filenameHint and declaredType come from
// the client and are advisory only.
func (g *Gateway) Store(ctx context.Context, r io.Reader, filenameHint, declaredType string) (*Upload, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, &UploadError{Op: "read body", Err: err}
	}
	head = head[:n]
	if n == 0 {
		return nil, &UploadError{Op: "read body", Err: errors.New("empty file")}
	}

	detected := mimetype.Detect(head)
	contentType := declaredType
	if isMediaType(detected) {
		contentType = detected.String()
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	var res *Result
	err = withTempFile(g.tempDir, suffixFor(detected, filenameHint), io.MultiReader(bytes.NewReader(head), r), func(path string) error {
		var uerr error
		res, uerr = g.provider.Upload(ctx, path, Hint{
			FileName:    filenameHint,
			ContentType: contentType,
			Folder:      g.folder,
			Tags:        []string{"backend-upload"},
		})
		return uerr
	})
	if err != nil {
		var ue *UploadError
		if errors.As(err, &ue) {
			return nil, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &UploadError{Op: "provider", Err: fmt.Errorf("%w: %v", ctxErr, err)}
		}
		return nil, &UploadError{Op: "provider", Err: err}
	}
	if res == nil || res.URL == "" {
		return nil, &UploadError{Op: "provider", Err: errors.New("provider returned no url")}
	}

	name := res.Name
	if name == "" {
		name = filenameHint
	}
	return &Upload{
		URL:  res.URL,
		Kind: NormalizeKind(res.Kind, contentType),
		Name: name,
	}, nil
}

// NormalizeKind maps the provider's classifier onto image, video or other.
// contentType is consulted only when the provider's answer is not specific.
func NormalizeKind(providerKind, contentType string) string {
	switch strings.ToLower(providerKind) {
	case "image":
		return models.KindImage
	case "video":
		return models.KindVideo
	case "", "auto", "non-image", "raw", "file":
		switch {
		case strings.HasPrefix(contentType, "image/"):
			return models.KindImage
		case strings.HasPrefix(contentType, "video/"):
			return models.KindVideo
		}
	}
	return models.KindOther
}

// isMediaType reports whether sniffing found an image, video or audio format.
// Anything else (plain text, octet-stream) is not trusted over the client.
func isMediaType(m *mimetype.MIME) bool {
	s := m.String()
	return strings.HasPrefix(s, "image/") || strings.HasPrefix(s, "video/") || strings.HasPrefix(s, "audio/")
}

func suffixFor(detected *mimetype.MIME, filenameHint string) string {
	if ext := detected.Extension(); ext != "" && isMediaType(detected) {
		return ext
	}
	if ext := filepath.Ext(filenameHint); ext != "" {
		return ext
	}
	return ".jpg"
}
