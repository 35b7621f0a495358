package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rentease-backend/config"
	"rentease-backend/controllers"
	"rentease-backend/models"
	"rentease-backend/routes"
	"rentease-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&models.PropertyType{},
		&models.Property{},
		&models.ApartmentType{},
		&models.Agent{},
		&models.Staff{},
		&models.Apartment{},
		&models.ApartmentEvent{},
	))
	config.DB = db

	assert.NoError(t, db.Create(&models.Property{
		PropertyCode:     "PROP-HTTP",
		PropertyName:     "HTTP Test Court",
		PropertyTypeUnit: 2,
		Status:           "active",
	}).Error)
	assert.NoError(t, db.Create(&models.ApartmentType{
		TypeName: "Studio",
		Status:   "active",
	}).Error)

	apartmentService := services.NewApartmentService(db)
	propertyService := services.NewPropertyService(db)
	router := routes.SetupRouter(
		controllers.NewApartmentController(apartmentService),
		controllers.NewPropertyController(propertyService),
	)
	return router, db
}

func doJSON(router *gin.Engine, method, path string, body map[string]interface{}, role string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("X-Staff-ID", "STF-0001")
		req.Header.Set("X-Staff-Role", role)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// The admin frontend sends every numeric field as a string; the handlers must
// coerce before validating.
func createBody() map[string]interface{} {
	return map[string]interface{}{
		"apartment_property_code":    "PROP-HTTP",
		"apartment_agent_code":       "",
		"apartment_type":             "1",
		"apartment_type_unit":        "5",
		"apartment_rent_amount":      "1500.50",
		"apartment_security_deposit": "750",
	}
}

func TestCreateApartmentHTTP(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/api/apartments", createBody(), models.RoleAdmin)
	assert.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "PROP-HTTP", body["property_code"])
	assert.Contains(t, body["apartment_code"], "PROP-HTTP-APT005-1-")
	assert.Equal(t, float64(1), body["apartment_number"])
	assert.Equal(t, float64(1), body["remaining_capacity"])
	assert.Equal(t, float64(2), body["total_capacity"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestCreateApartmentRequiresActor(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/api/apartments", createBody(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateApartmentCapacityExceededHTTP(t *testing.T) {
	router, _ := setupRouter(t)

	for i := 0; i < 2; i++ {
		w := doJSON(router, http.MethodPost, "/api/apartments", createBody(), models.RoleAdmin)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(router, http.MethodPost, "/api/apartments", createBody(), models.RoleAdmin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "maximum capacity of 2")
}

func TestMutateApartmentRoleGatingHTTP(t *testing.T) {
	router, _ := setupRouter(t)

	created := decode(t, doJSON(router, http.MethodPost, "/api/apartments", createBody(), models.RoleAdmin))
	apartmentCode := created["apartment_code"].(string)

	deleteBody := map[string]interface{}{
		"apartment_id": apartmentCode,
		"action_type":  "delete",
	}

	w := doJSON(router, http.MethodPut, "/api/apartments", deleteBody, models.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodPut, "/api/apartments", deleteBody, models.RoleSuperAdmin)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Apartment deactivated successfully", body["message"])

	w = doJSON(router, http.MethodPut, "/api/apartments", map[string]interface{}{
		"apartment_id": apartmentCode,
		"action_type":  "restore",
	}, models.RoleSuperAdmin)
	assert.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, "Apartment restored successfully", body["message"])
}

func TestMutateApartmentStatusStringHTTP(t *testing.T) {
	router, _ := setupRouter(t)

	created := decode(t, doJSON(router, http.MethodPost, "/api/apartments", createBody(), models.RoleAdmin))
	apartmentCode := created["apartment_code"].(string)

	// update_all requires status to be the string "0" or "1"
	w := doJSON(router, http.MethodPut, "/api/apartments", map[string]interface{}{
		"apartment_id":        apartmentCode,
		"property_code":       "PROP-HTTP",
		"apartment_type_id":   "1",
		"apartment_type_unit": "5",
		"status":              "maybe",
		"action_type":         "update_all",
	}, models.RoleSuperAdmin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPut, "/api/apartments", map[string]interface{}{
		"apartment_id":        apartmentCode,
		"property_code":       "PROP-HTTP",
		"apartment_type_id":   "1",
		"apartment_type_unit": "5",
		"status":              "1",
		"action_type":         "update_all",
	}, models.RoleAdmin)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Apartment updated successfully", body["message"])
}

func TestMutateApartmentUnknownActionHTTP(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodPut, "/api/apartments", map[string]interface{}{
		"apartment_id": "whatever",
		"action_type":  "hard_delete",
	}, models.RoleSuperAdmin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApartmentNotFoundHTTP(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/apartments/APT-NOPE", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPropertyCapacityHTTP(t *testing.T) {
	router, _ := setupRouter(t)

	doJSON(router, http.MethodPost, "/api/apartments", createBody(), models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/properties/PROP-HTTP/capacity", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total_capacity"])
	assert.Equal(t, float64(1), data["active_apartments"])
	assert.Equal(t, float64(1), data["remaining_capacity"])
}
