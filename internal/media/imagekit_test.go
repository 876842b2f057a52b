package media

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.jpg")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImageKitUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/files/upload", r.URL.Path)
		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "private_key", user)

		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "cat.jpg", r.FormValue("fileName"))
		assert.Equal(t, "/uploads", r.FormValue("folder"))
		assert.Equal(t, "backend-upload", r.FormValue("tags"))

		if file, _, err := r.FormFile("file"); assert.NoError(t, err) {
			data, _ := io.ReadAll(file)
			assert.Equal(t, "meow", string(data))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"fileId":"f1","name":"cat_x1.jpg","url":"https://ik.example/uploads/cat_x1.jpg","fileType":"image"}`))
	}))
	defer srv.Close()

	p := NewImageKitProvider("private_key", srv.URL+"/")
	res, err := p.Upload(context.Background(), writeTemp(t, "meow"), Hint{
		FileName: "cat.jpg",
		Folder:   "uploads",
		Tags:     []string{"backend-upload"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://ik.example/uploads/cat_x1.jpg", res.URL)
	assert.Equal(t, "image", res.Kind)
	assert.Equal(t, "cat_x1.jpg", res.Name)
}

func TestImageKitNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Your account cannot be authenticated."}`))
	}))
	defer srv.Close()

	p := NewImageKitProvider("bad", srv.URL)
	_, err := p.Upload(context.Background(), writeTemp(t, "x"), Hint{FileName: "x.jpg"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Contains(t, err.Error(), "401")
}

func TestImageKitUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p := NewImageKitProvider("key", url)
	_, err := p.Upload(context.Background(), writeTemp(t, "x"), Hint{FileName: "x.jpg"})
	assert.ErrorIs(t, err, ErrUploadFailed)
}
