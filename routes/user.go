package routes

import (
	"learnhub/controllers"

	"github.com/gin-gonic/gin"
)

func GetProfileRouteHandler(c *gin.Context) {
	controllers.GetUserProfile(c)
}

func UpdateProfileRouteHandler(c *gin.Context) {
	controllers.UpdateUserProfile(c)
}
