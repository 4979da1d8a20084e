package routes

import (
	"github.com/Govind-619/ClipCraft/config"
	"github.com/Govind-619/ClipCraft/controllers"
	"github.com/gin-gonic/gin"
)

func initAuthRoutes(api *gin.RouterGroup, limited gin.HandlerFunc, cfg *config.Config) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", limited, controllers.RegisterUser)
		authGroup.POST("/callback/credentials", controllers.LoginUser)
		authGroup.POST("/login", controllers.LoginUser)
		authGroup.GET("/session", controllers.GetSession)
		authGroup.POST("/signout", controllers.Logout)
		authGroup.POST("/forgot-password", limited, controllers.ForgotPassword)
		authGroup.POST("/reset-password", controllers.ResetPassword)

		if cfg.GoogleEnabled() {
			authGroup.GET("/signin/google", controllers.GoogleLogin)
			authGroup.GET("/callback/google", controllers.GoogleCallback)
		}
	}
}
