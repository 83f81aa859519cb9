package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"learnhub/models"

	"github.com/gin-gonic/gin"
)

// AddCountryRequest is the admin country payload
type AddCountryRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
	Flag string `json:"flag" binding:"required"`
}

// AddSchoolRequest is the admin school payload
type AddSchoolRequest struct {
	Name        string `json:"name" binding:"required"`
	CountryName string `json:"countryName" binding:"required"`
}

// GetCountries lists every country, alphabetical
func GetCountries(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	countries, err := locations.ListCountries(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching countries"})
		return
	}

	c.JSON(http.StatusOK, countries)
}

// GetSchoolsByCountry lists a country's schools, alphabetical
func GetSchoolsByCountry(c *gin.Context) {
	country := c.Param("country")
	if country == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Country is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	schools, err := locations.SchoolsByCountry(ctx, country)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching schools"})
		return
	}

	c.JSON(http.StatusOK, schools)
}

// AddCountry creates a country in the location directory
func AddCountry(c *gin.Context) {
	var req AddCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, code and flag are required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	country := &models.Country{
		Name:      strings.TrimSpace(req.Name),
		Code:      strings.ToUpper(strings.TrimSpace(req.Code)),
		Flag:      req.Flag,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := locations.InsertCountry(ctx, country)
	if err != nil {
		// Unique name index rejects duplicates
		log.Printf("Failed to insert country %q: %v", country.Name, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error creating country"})
		return
	}
	country.ID = id

	c.JSON(http.StatusCreated, country)
}

// AddSchool creates a school under a country
func AddSchool(c *gin.Context) {
	var req AddSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and countryName are required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	school := &models.School{
		Name:      strings.TrimSpace(req.Name),
		Country:   strings.TrimSpace(req.CountryName),
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := locations.InsertSchool(ctx, school)
	if err != nil {
		log.Printf("Failed to insert school %q: %v", school.Name, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error creating school"})
		return
	}
	school.ID = id

	c.JSON(http.StatusCreated, school)
}
