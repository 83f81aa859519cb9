package routes

import (
	"learnhub/controllers"

	"github.com/gin-gonic/gin"
)

func GetSystemStatsRouteHandler(c *gin.Context) {
	controllers.GetSystemStats(c)
}

func BroadcastAnnouncementRouteHandler(c *gin.Context) {
	controllers.BroadcastAnnouncement(c)
}
