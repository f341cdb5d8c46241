package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/lynquer/lynquer-api/internal/transport/http/handler"
	"github.com/lynquer/lynquer-api/internal/transport/http/middleware"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	linkHandler *handler.LinkHandler,
	tokenSecret []byte,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(tokenSecret)

	v1 := r.Group("/api/v1")

	user := v1.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)
	user.POST("/validateToken", authMW, authHandler.ValidateToken)
	user.POST("/forgotPassword", authHandler.ForgotPassword)
	user.POST("/resetPassword/:resetToken", authHandler.ResetPassword)
	user.GET("/profile", authMW, userHandler.Profile)
	user.PATCH("/profile", authMW, userHandler.UpdateProfile)
	user.POST("/profile/upload", authMW, userHandler.UploadProfileImage)

	link := v1.Group("/link")
	link.POST("/create", authMW, linkHandler.Create)
	link.GET("/all", authMW, linkHandler.ListMine)
	link.DELETE("/delete/:id", authMW, linkHandler.Delete)
	link.PATCH("/update/:id", authMW, linkHandler.Update)
	link.PATCH("/visible/:id", authMW, linkHandler.SetVisibility)
	// No session middleware here: any caller can reposition any link by id.
	link.PUT("/positions", linkHandler.Reorder)
	link.GET("/user/:username", linkHandler.ListByUsername)

	return r
}
