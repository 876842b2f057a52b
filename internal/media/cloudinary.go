package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryProvider uploads with resource_type=auto so that Cloudinary
// classifies the file itself.
type CloudinaryProvider struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryProvider prefers a CLOUDINARY_URL style url and falls back to
// the discrete credentials.
func NewCloudinaryProvider(url, cloudName, apiKey, apiSecret string) (*CloudinaryProvider, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if url != "" {
		cld, err = cloudinary.NewFromURL(url)
	} else {
		if cloudName == "" || apiKey == "" || apiSecret == "" {
			return nil, errors.New("cloudinary credentials not configured")
		}
		cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &CloudinaryProvider{cld: cld}, nil
}

func (p *CloudinaryProvider) Upload(ctx context.Context, path string, hint Hint) (*Result, error) {
	resp, err := p.cld.Upload.Upload(ctx, path, uploader.UploadParams{
		Folder:       hint.Folder,
		Tags:         api.CldAPIArray(hint.Tags),
		ResourceType: "auto",
	})
	if err != nil {
		return nil, &UploadError{Op: "cloudinary", Err: err}
	}
	if resp.Error.Message != "" {
		return nil, &UploadError{Op: "cloudinary", Err: errors.New(resp.Error.Message)}
	}

	name := resp.OriginalFilename
	if name == "" {
		name = hint.FileName
	}
	return &Result{
		URL:  resp.SecureURL,
		Kind: resp.ResourceType,
		Name: name,
	}, nil
}
