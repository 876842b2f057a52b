package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"media-feed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for mimetype to recognise image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type fakeProvider struct {
	result *Result
	err    error
	panic  bool
	block  bool

	seenPath    string
	seenBody    []byte
	seenHint    Hint
	existedThen bool
}

func (f *fakeProvider) Upload(ctx context.Context, path string, hint Hint) (*Result, error) {
	f.seenPath = path
	f.seenHint = hint
	if b, err := os.ReadFile(path); err == nil {
		f.existedThen = true
		f.seenBody = b
	}
	if f.panic {
		panic("provider exploded")
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.result, f.err
}

func dirEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return entries
}

func TestStoreUsesProviderAnswerAndRemovesTempFile(t *testing.T) {
	dir := t.TempDir()
	p := &fakeProvider{result: &Result{URL: "https://cdn/x.jpg", Kind: "image", Name: "x.jpg"}}
	g := NewGateway(p, dir, "uploads", time.Second)

	payload := []byte("0123456789")
	up, err := g.Store(context.Background(), bytes.NewReader(payload), "photo.jpg", "video/mp4")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn/x.jpg", up.URL)
	assert.Equal(t, models.KindImage, up.Kind, "provider kind wins over declared type")
	assert.Equal(t, "x.jpg", up.Name)

	assert.True(t, p.existedThen)
	assert.Equal(t, payload, p.seenBody)
	assert.Equal(t, ".jpg", filepath.Ext(p.seenPath))
	assert.Equal(t, "uploads", p.seenHint.Folder)
	assert.Equal(t, []string{"backend-upload"}, p.seenHint.Tags)
	assert.Empty(t, dirEntries(t, dir))
}

func TestStoreSniffsExtension(t *testing.T) {
	dir := t.TempDir()
	p := &fakeProvider{result: &Result{URL: "https://cdn/a", Kind: "image"}}
	g := NewGateway(p, dir, "uploads", 0)

	_, err := g.Store(context.Background(), bytes.NewReader(pngHeader), "upload.bin", "")
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(p.seenPath))
	assert.Equal(t, "image/png", p.seenHint.ContentType)
}

func TestStoreFallsBackToJPGSuffix(t *testing.T) {
	dir := t.TempDir()
	p := &fakeProvider{result: &Result{URL: "https://cdn/a", Kind: "image"}}
	g := NewGateway(p, dir, "uploads", 0)

	_, err := g.Store(context.Background(), bytes.NewReader([]byte{0x00, 0x01, 0x02, 0x03}), "noext", "")
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(p.seenPath))
}

func TestStoreNameFallsBackToHint(t *testing.T) {
	p := &fakeProvider{result: &Result{URL: "https://cdn/a", Kind: "video"}}
	g := NewGateway(p, t.TempDir(), "uploads", 0)

	up, err := g.Store(context.Background(), strings.NewReader("some bytes"), "clip.mp4", "")
	require.NoError(t, err)
	assert.Equal(t, "clip.mp4", up.Name)
	assert.Equal(t, models.KindVideo, up.Kind)
}

func TestStoreProviderErrorIsUploadFailure(t *testing.T) {
	dir := t.TempDir()
	p := &fakeProvider{err: errors.New("rejected: bad format")}
	g := NewGateway(p, dir, "uploads", 0)

	_, err := g.Store(context.Background(), strings.NewReader("data"), "a.jpg", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Contains(t, err.Error(), "rejected: bad format")
	assert.Empty(t, dirEntries(t, dir))
}

func TestStoreMissingURLIsUploadFailure(t *testing.T) {
	p := &fakeProvider{result: &Result{Kind: "image"}}
	g := NewGateway(p, t.TempDir(), "uploads", 0)

	_, err := g.Store(context.Background(), strings.NewReader("data"), "a.jpg", "")
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestStoreTimeoutIsUploadFailure(t *testing.T) {
	dir := t.TempDir()
	p := &fakeProvider{block: true}
	g := NewGateway(p, dir, "uploads", 20*time.Millisecond)

	_, err := g.Store(context.Background(), strings.NewReader("data"), "a.jpg", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, dirEntries(t, dir))
}

func TestStoreRemovesTempFileOnPanic(t *testing.T) {
	dir := t.TempDir()
	p := &fakeProvider{panic: true}
	g := NewGateway(p, dir, "uploads", 0)

	assert.Panics(t, func() {
		_, _ = g.Store(context.Background(), strings.NewReader("data"), "a.jpg", "")
	})
	assert.True(t, p.existedThen)
	assert.Empty(t, dirEntries(t, dir))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestStoreReadErrorIsUploadFailure(t *testing.T) {
	p := &fakeProvider{result: &Result{URL: "https://cdn/a"}}
	g := NewGateway(p, t.TempDir(), "uploads", 0)

	_, err := g.Store(context.Background(), io.MultiReader(strings.NewReader("x"), failingReader{}), "a.jpg", "")
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Empty(t, p.seenPath)
}

func TestStoreEmptyBody(t *testing.T) {
	p := &fakeProvider{result: &Result{URL: "https://cdn/a"}}
	g := NewGateway(p, t.TempDir(), "uploads", 0)

	_, err := g.Store(context.Background(), strings.NewReader(""), "a.jpg", "")
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestNormalizeKind(t *testing.T) {
	cases := []struct {
		provider, contentType, want string
	}{
		{"image", "video/mp4", models.KindImage},
		{"video", "", models.KindVideo},
		{"non-image", "video/webm", models.KindVideo},
		{"non-image", "application/pdf", models.KindOther},
		{"", "image/gif", models.KindImage},
		{"raw", "", models.KindOther},
		{"audio", "image/png", models.KindOther},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeKind(tc.provider, tc.contentType), "%s/%s", tc.provider, tc.contentType)
	}
}
