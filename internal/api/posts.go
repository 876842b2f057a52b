package api

import (
	"context"
	"errors"
	"net/http"

	"media-feed/internal/identity"
	"media-feed/internal/models"
	"media-feed/internal/posts"
	feedmodels "media-feed/pkg/models"

	"github.com/gin-gonic/gin"
)

type PostService interface {
	Create(ctx context.Context, caller identity.Identity, in posts.CreateInput) (*models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	Delete(ctx context.Context, caller identity.Identity, id string) error
}

type FeedAssembler interface {
	Assemble(ctx context.Context, viewer identity.Identity) ([]feedmodels.FeedItem, error)
}

type PostHandler struct {
	Posts          PostService
	Feed           FeedAssembler
	MaxUploadBytes int64
}

func NewPostHandler(service PostService, feed FeedAssembler, maxUploadBytes int64) *PostHandler {
	return &PostHandler{Posts: service, Feed: feed, MaxUploadBytes: maxUploadBytes}
}

// GetFeed returns every post, newest first, annotated for the caller
func (h *PostHandler) GetFeed(c *gin.Context) {
	caller, _ := CurrentIdentity(c)
	items, err := h.Feed.Assemble(c.Request.Context(), caller)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Upload handles multipart "file" + "caption"
func (h *PostHandler) Upload(c *gin.Context) {
	caller, _ := CurrentIdentity(c)
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	defer file.Close()

	post, err := h.Posts.Create(c.Request.Context(), caller, posts.CreateInput{
		Caption:     c.PostForm("caption"),
		File:        file,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.Posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	caller, _ := CurrentIdentity(c)
	if err := h.Posts.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		status, msg := statusFor(err)
		if status >= http.StatusInternalServerError {
			abortWithError(c, err)
			return
		}
		c.JSON(status, feedmodels.DeleteResponse{Success: false, Message: msg})
		return
	}

	c.JSON(http.StatusOK, feedmodels.DeleteResponse{Success: true, Message: "Post Deleted successfully"})
}
