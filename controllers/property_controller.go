package controllers

import (
	"net/http"

	"rentease-backend/services"
	"rentease-backend/utils"

	"github.com/gin-gonic/gin"
)

type PropertyController struct {
	Service *services.PropertyService
}

func NewPropertyController(svc *services.PropertyService) *PropertyController {
	return &PropertyController{Service: svc}
}

// GetProperties (GET /api/properties) feeds the property dropdown on the
// apartment form.
func (pc *PropertyController) GetProperties(c *gin.Context) {
	properties, err := pc.Service.List()
	if err != nil {
		utils.JSONError(c, utils.HTTPStatus(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, properties)
}

// GetPropertyCapacity (GET /api/properties/:code/capacity) is the capacity
// hint shown next to the dropdown. Advisory only — the create path re-checks
// under lock.
func (pc *PropertyController) GetPropertyCapacity(c *gin.Context) {
	capacity, err := pc.Service.Capacity(c.Param("code"))
	if err != nil {
		utils.JSONError(c, utils.HTTPStatus(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, capacity)
}
