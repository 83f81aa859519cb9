package routes

import (
	"learnhub/controllers"

	"github.com/gin-gonic/gin"
)

func GetCountriesRouteHandler(c *gin.Context) {
	controllers.GetCountries(c)
}

func GetSchoolsByCountryRouteHandler(c *gin.Context) {
	controllers.GetSchoolsByCountry(c)
}

func AddCountryRouteHandler(c *gin.Context) {
	controllers.AddCountry(c)
}

func AddSchoolRouteHandler(c *gin.Context) {
	controllers.AddSchool(c)
}
