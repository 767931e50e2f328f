package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "user_backend/internal/feature/auth/transport/handler"
	userhandler "user_backend/internal/feature/users/transport/handler"
	jwtmw "user_backend/internal/platform/jwt"
	"user_backend/internal/platform/ratelimit"
)

func NewRouter(auth *authhandler.AuthHandler, users *userhandler.UserHandler,
	limiter *ratelimit.Limiter) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	grp := r.Group("/api")

	// 認証不要
	// 新規ユーザー登録
	grp.POST("/register", auth.Register)
	// ログイン（JWT 発行）
	grp.POST("/login", auth.Login)

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	// さらにクライアントIPごとのレートリミットを適用
	protected := grp.Group("/users")
	protected.Use(jwtmw.AuthRequired(), ratelimit.Middleware(limiter))
	{
		protected.GET("", users.List)
		protected.GET("/:id", users.Get)
		protected.POST("", users.Create)
		protected.PUT("/:id", users.Update)
		protected.DELETE("/:id", users.Delete)
	}

	// 未定義ルートはJSONの404を返す
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return r
}
