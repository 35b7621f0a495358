package controllers

import (
	"net/http"

	"rentease-backend/config"
	"rentease-backend/models"

	"github.com/gin-gonic/gin"
)

// Read-only lookup lists for the admin form dropdowns.

func GetAgents(c *gin.Context) {
	var agents []models.Agent
	config.DB.Where("status = ?", "active").Order("agent_code ASC").Find(&agents)
	c.JSON(http.StatusOK, agents)
}

func GetApartmentTypes(c *gin.Context) {
	var types []models.ApartmentType
	config.DB.Where("status = ?", "active").Find(&types)
	c.JSON(http.StatusOK, types)
}
