package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ImageKitProvider talks to the ImageKit upload API directly.
type ImageKitProvider struct {
	PrivateKey string
	UploadURL  string
	HTTPClient *http.Client
}

func NewImageKitProvider(privateKey, uploadURL string) *ImageKitProvider {
	return &ImageKitProvider{
		PrivateKey: privateKey,
		UploadURL:  strings.TrimRight(uploadURL, "/"),
		HTTPClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

type imageKitResponse struct {
	FileID   string `json:"fileId"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	FileType string `json:"fileType"`
	Message  string `json:"message"`
}

func (p *ImageKitProvider) Upload(ctx context.Context, path string, hint Hint) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &UploadError{Op: "open temp file", Err: err}
	}
	defer f.Close()

	fileName := hint.FileName
	if fileName == "" {
		fileName = filepath.Base(path)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, &UploadError{Op: "imagekit", Err: err}
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, &UploadError{Op: "imagekit", Err: err}
	}

	writer.WriteField("fileName", fileName)
	if hint.Folder != "" {
		writer.WriteField("folder", "/"+strings.TrimLeft(hint.Folder, "/"))
	}
	if len(hint.Tags) > 0 {
		writer.WriteField("tags", strings.Join(hint.Tags, ","))
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.UploadURL+"/api/v1/files/upload", body)
	if err != nil {
		return nil, &UploadError{Op: "imagekit", Err: err}
	}
	req.SetBasicAuth(p.PrivateKey, "")
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, &UploadError{Op: "imagekit", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UploadError{Op: "imagekit", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UploadError{Op: "imagekit", Err: fmt.Errorf("%s - %s", resp.Status, string(respBody))}
	}

	var ikResp imageKitResponse
	if err := json.Unmarshal(respBody, &ikResp); err != nil {
		return nil, &UploadError{Op: "imagekit", Err: fmt.Errorf("decode response: %w", err)}
	}

	return &Result{
		URL:  ikResp.URL,
		Kind: ikResp.FileType,
		Name: ikResp.Name,
	}, nil
}
