package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/memorylane/internal/handlers"
	"github.com/thereayou/memorylane/internal/middleware"
	"github.com/thereayou/memorylane/internal/session"
	"github.com/thereayou/memorylane/internal/storage"
	ws "github.com/thereayou/memorylane/internal/websocket"
	"github.com/thereayou/memorylane/pkg/auth"
)

type Dependencies struct {
	Store        storage.Storage
	JWTManager   *auth.JWTManager
	Revoker      session.Revoker
	Hub          *ws.Hub
	Limiter      *middleware.RateLimiter
	Uploads      *handlers.UploadHandler
	UploadDir    string
	CORSOrigin   string
	CookieSecure bool
	Logger       *slog.Logger
}

func NewRouter(d Dependencies) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = 32 << 20
	router.Use(
		middleware.RequestLogger(d.Logger),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			d.Logger.Error("panic recovered", "path", c.Request.URL.Path, "panic", recovered)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}),
		middleware.SecurityHeaders(),
		middleware.CORS(d.CORSOrigin),
	)
	if d.Limiter != nil {
		router.Use(d.Limiter.Middleware())
	}

	router.Static(handlers.UploadsPath, d.UploadDir)
	APIEndpoints(router, d)

	return router
}

func APIEndpoints(r *gin.Engine, d Dependencies) {
	authH := handlers.NewAuthHandler(d.Store, d.JWTManager, d.Revoker, d.CookieSecure)
	userH := handlers.NewUserHandler(d.Store)
	memoryH := handlers.NewMemoryHandler(d.Store)
	commentH := handlers.NewCommentHandler(d.Store)
	friendH := handlers.NewFriendHandler(d.Store)
	groupH := handlers.NewGroupHandler(d.Store)
	notificationH := handlers.NewNotificationHandler(d.Store)
	wsH := handlers.NewWebSocketHandler(d.Hub, d.CORSOrigin)

	requireAuth := middleware.AuthMiddleware(d.JWTManager, d.Revoker)

	api := r.Group("/api")
	api.GET("/health", handlers.Health)
	api.GET("/ws", middleware.WSAuthMiddleware(d.JWTManager, d.Revoker), wsH.HandleWebSocket)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/logout", requireAuth, authH.Logout)
		authGroup.GET("/me", requireAuth, authH.Me)
	}

	private := api.Group("", requireAuth)

	users := private.Group("/users")
	{
		users.GET("/search", userH.SearchUsers)
		users.PATCH("/me", userH.UpdateMe)
		users.GET("/:id", userH.GetUser)
	}

	memories := private.Group("/memories")
	{
		memories.GET("", memoryH.ListAccessible)
		memories.POST("", memoryH.Create)
		memories.GET("/mine", memoryH.ListMine)
		memories.GET("/calendar", memoryH.Calendar)
		memories.GET("/:id", memoryH.Get)
		memories.PATCH("/:id", memoryH.Update)
		memories.DELETE("/:id", memoryH.Delete)
		memories.GET("/:id/comments", memoryH.ListComments)
		memories.POST("/:id/comments", memoryH.CreateComment)
	}

	comments := private.Group("/comments")
	{
		comments.PATCH("/:id", commentH.Update)
		comments.DELETE("/:id", commentH.Delete)
	}

	friends := private.Group("/friends")
	{
		friends.GET("", friendH.List)
		friends.GET("/requests", friendH.ListRequests)
		friends.POST("/requests", friendH.SendRequest)
		friends.POST("/requests/:id/accept", friendH.Accept)
		friends.POST("/requests/:id/reject", friendH.Reject)
		friends.DELETE("/:id", friendH.Remove)
	}

	groups := private.Group("/groups")
	{
		groups.GET("", groupH.List)
		groups.POST("", groupH.Create)
		groups.GET("/:id", groupH.Get)
		groups.PATCH("/:id", groupH.Update)
		groups.DELETE("/:id", groupH.Delete)
		groups.GET("/:id/memories", groupH.Memories)
		groups.GET("/:id/members", groupH.Members)
		groups.POST("/:id/members", groupH.AddMember)
		groups.PATCH("/:id/members/:userId", groupH.UpdateMember)
		groups.DELETE("/:id/members/:userId", groupH.RemoveMember)
	}

	notifications := private.Group("/notifications")
	{
		notifications.GET("", notificationH.List)
		notifications.GET("/unread-count", notificationH.UnreadCount)
		notifications.POST("/read-all", notificationH.MarkAllRead)
		notifications.POST("/:id/read", notificationH.MarkRead)
		notifications.DELETE("/:id", notificationH.Delete)
	}

	if d.Uploads != nil {
		private.POST("/uploads", d.Uploads.Upload)
	}
}
