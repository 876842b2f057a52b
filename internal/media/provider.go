package media

import (
	"fmt"

	"media-feed/internal/config"
)

// NewProvider builds the provider named by cfg.MediaProvider.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.MediaProvider {
	case "cloudinary":
		return NewCloudinaryProvider(cfg.CloudinaryURL, cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	case "imagekit":
		if cfg.ImageKitPrivateKey == "" {
			return nil, fmt.Errorf("IMAGEKIT_PRIVATE_KEY not configured")
		}
		return NewImageKitProvider(cfg.ImageKitPrivateKey, cfg.ImageKitUploadURL), nil
	default:
		return nil, fmt.Errorf("unknown MEDIA_PROVIDER %q", cfg.MediaProvider)
	}
}
