package routes

import (
	"learnhub/controllers"

	"github.com/gin-gonic/gin"
)

func GetLeaderboardRouteHandler(c *gin.Context) {
	controllers.GetLeaderboard(c)
}

func GetUserRankRouteHandler(c *gin.Context) {
	controllers.GetUserRank(c)
}
