package api

import (
	"context"
	"net/http"

	"media-feed/internal/identity"
	"media-feed/internal/models"
	feedmodels "media-feed/pkg/models"

	"github.com/gin-gonic/gin"
)

type Accounts interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

type TokenIssuer interface {
	Issue(id identity.Identity) (string, error)
}

type AuthHandler struct {
	Accounts Accounts
	Tokens   TokenIssuer
}

func NewAuthHandler(accounts Accounts, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{Accounts: accounts, Tokens: tokens}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Accounts.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userRead(user))
}

// LoginRequest uses the OAuth2 password form field names.
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	token, err := h.Tokens.Issue(identity.Identity{ID: user.ID, Email: user.Email})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedmodels.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	caller, _ := CurrentIdentity(c)
	c.JSON(http.StatusOK, feedmodels.UserRead{ID: caller.ID, Email: caller.Email, IsActive: true})
}

func userRead(u *models.User) feedmodels.UserRead {
	return feedmodels.UserRead{ID: u.ID, Email: u.Email, IsActive: u.IsActive}
}
