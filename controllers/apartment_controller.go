package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"rentease-backend/middleware"
	"rentease-backend/models"
	"rentease-backend/services"
	"rentease-backend/utils"

	"github.com/gin-gonic/gin"
)

type ApartmentController struct {
	Service *services.ApartmentService
}

func NewApartmentController(svc *services.ApartmentService) *ApartmentController {
	return &ApartmentController{Service: svc}
}

// ----------------------------------------------------
// Wire coercion helpers
// ----------------------------------------------------
// The admin frontend sends numeric-looking fields as strings, numbers or a
// mix of both; everything is re-coerced here before the service sees it.

func fieldString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			if s, ok2 := v.(string); ok2 {
				return strings.TrimSpace(s)
			}
			return strings.TrimSpace(fmt.Sprintf("%v", v))
		}
	}
	return ""
}

func fieldInt(m map[string]interface{}, keys ...string) (int, bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return int(n), true
		case string:
			i, err := strconv.Atoi(strings.TrimSpace(n))
			if err != nil {
				return 0, false
			}
			return i, true
		}
		return 0, false
	}
	return 0, false
}

func fieldFloat(m map[string]interface{}, keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
			if err != nil {
				return 0, false
			}
			return f, true
		}
		return 0, false
	}
	return 0, false
}

func serviceError(c *gin.Context, err error) {
	c.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": err.Error()})
}

// ----------------------------------------------------
// 1. List Apartments (GET /api/apartments)
// ----------------------------------------------------

func (ac *ApartmentController) ListApartments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	apartments, total, err := ac.Service.List(services.ApartmentListFilter{
		Page:            page,
		Limit:           limit,
		PropertyCode:    c.Query("property_code"),
		IncludeInactive: c.Query("include_inactive") == "1" || strings.EqualFold(c.Query("include_inactive"), "true"),
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    apartments,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// ----------------------------------------------------
// 2. Get Apartment (GET /api/apartments/:code)
// ----------------------------------------------------

func (ac *ApartmentController) GetApartment(c *gin.Context) {
	apartment, err := ac.Service.Get(c.Param("code"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": apartment})
}

// ----------------------------------------------------
// 3. Apartment Events (GET /api/apartments/:code/events)
// ----------------------------------------------------

func (ac *ApartmentController) GetApartmentEvents(c *gin.Context) {
	events, err := ac.Service.Events(c.Param("code"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": events})
}

// ----------------------------------------------------
// 4. Create Apartment (POST /api/apartments)
// ----------------------------------------------------

func (ac *ApartmentController) CreateApartment(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing staff context"})
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload"})
		return
	}

	typeID, _ := fieldInt(payload, "apartment_type", "apartment_type_id")
	if typeID < 0 {
		typeID = 0
	}
	typeUnit, _ := fieldInt(payload, "apartment_type_unit")
	rent, rentOK := fieldFloat(payload, "apartment_rent_amount", "rent_amount")
	deposit, depOK := fieldFloat(payload, "apartment_security_deposit", "security_deposit")
	if !rentOK || !depOK {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "rent amount and security deposit are required"})
		return
	}

	result, err := ac.Service.Create(services.CreateApartmentInput{
		PropertyCode:      fieldString(payload, "apartment_property_code", "property_code"),
		AgentCode:         fieldString(payload, "apartment_agent_code", "agent_code"),
		ApartmentTypeID:   uint(typeID),
		ApartmentTypeUnit: typeUnit,
		RentAmount:        rent,
		SecurityDeposit:   deposit,
	}, actor)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":            true,
		"apartment_code":     result.ApartmentCode,
		"apartment_id":       result.ApartmentID,
		"property_code":      result.PropertyCode,
		"apartment_number":   result.ApartmentNumber,
		"remaining_capacity": result.RemainingCapacity,
		"total_capacity":     result.TotalCapacity,
		"timestamp":          result.Timestamp,
	})
}

// ----------------------------------------------------
// 5. Mutate Apartment (PUT /api/apartments)
// ----------------------------------------------------
// One endpoint for update_all / delete / restore, selected by action_type,
// mirroring the admin frontend's single edit form.

func (ac *ApartmentController) MutateApartment(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing staff context"})
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload"})
		return
	}

	actionType := fieldString(payload, "action_type")

	// The status field is string-typed on the wire; only "0"/"1" are legal,
	// and only update_all reads it.
	status := models.ApartmentActive
	if actionType == services.ActionUpdateAll {
		parsed, ok := models.ParseApartmentStatus(fieldString(payload, "status"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "status must be \"0\" or \"1\""})
			return
		}
		status = parsed
	}

	typeID, _ := fieldInt(payload, "apartment_type_id", "apartment_type")
	typeUnit, _ := fieldInt(payload, "apartment_type_unit")

	message, err := ac.Service.Mutate(services.MutateApartmentInput{
		ApartmentCode:     fieldString(payload, "apartment_id", "apartment_code"),
		PropertyCode:      fieldString(payload, "property_code"),
		AgentCode:         fieldString(payload, "agent_code"),
		ApartmentTypeID:   typeID,
		ApartmentTypeUnit: typeUnit,
		Status:            status,
		ActionType:        actionType,
	}, actor)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
