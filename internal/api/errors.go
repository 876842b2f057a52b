package api

import (
	"errors"
	"log/slog"
	"net/http"

	"media-feed/internal/identity"
	"media-feed/internal/media"
	"media-feed/internal/posts"
	"media-feed/internal/store"

	"github.com/gin-gonic/gin"
)

// statusFor maps core errors onto HTTP status codes and client messages.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, posts.ErrNotFound):
		return http.StatusNotFound, "Post not found"
	case errors.Is(err, posts.ErrForbidden):
		return http.StatusForbidden, "You are not allowed to delete this post"
	case errors.Is(err, media.ErrUploadFailed):
		return http.StatusInternalServerError, err.Error()
	case errors.Is(err, store.ErrStoreFailed):
		return http.StatusInternalServerError, "Post could not be saved"
	case errors.Is(err, identity.ErrEmailTaken),
		errors.Is(err, identity.ErrInvalidCredentials),
		errors.Is(err, identity.ErrInvalidEmail),
		errors.Is(err, identity.ErrWeakPassword):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func abortWithError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
