package routes

import (
	"learnhub/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRouteHandler(c *gin.Context) {
	controllers.Register(c)
}

func LoginRouteHandler(c *gin.Context) {
	controllers.Login(c)
}

func ForgotPasswordRouteHandler(c *gin.Context) {
	controllers.ForgotPassword(c)
}

func ResetPasswordRouteHandler(c *gin.Context) {
	controllers.ResetPassword(c)
}
