package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handlers struct {
	Posts  *PostHandler
	Auth   *AuthHandler
	Tokens TokenVerifier
	Users  UserLookup
	// LiveFeed serves the websocket endpoint; nil disables it.
	LiveFeed    func(w http.ResponseWriter, r *http.Request)
	DB          *gorm.DB
	CORSOrigins []string
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()
	r.Use(CORS(h.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		if h.DB != nil {
			sqlDB, err := h.DB.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Request.Context())
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth Routes
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/jwt/login", h.Auth.Login)
		authGroup.GET("/me", RequireAuth(h.Tokens, h.Users), h.Auth.Me)
	}

	// Post Routes
	authed := r.Group("/", RequireAuth(h.Tokens, h.Users))
	{
		authed.GET("/feed", h.Posts.GetFeed)
		authed.POST("/upload", h.Posts.Upload)
		authed.GET("/posts/:id", h.Posts.GetPost)
		authed.DELETE("/posts/:id", h.Posts.DeletePost)

		if h.LiveFeed != nil {
			authed.GET("/ws", func(c *gin.Context) {
				h.LiveFeed(c.Writer, c.Request)
			})
		}
	}

	return r
}
