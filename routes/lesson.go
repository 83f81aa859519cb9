package routes

import (
	"learnhub/controllers"

	"github.com/gin-gonic/gin"
)

func CreateLessonRouteHandler(c *gin.Context) {
	controllers.CreateLesson(c)
}

func GetMyLessonsRouteHandler(c *gin.Context) {
	controllers.GetMyLessons(c)
}

func DeleteLessonRouteHandler(c *gin.Context) {
	controllers.DeleteLesson(c)
}

func CompleteLessonRouteHandler(c *gin.Context) {
	controllers.CompleteLesson(c)
}
