package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rentease-backend/controllers"
	"rentease-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	ac *controllers.ApartmentController,
	pc *controllers.PropertyController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Staff-ID", "X-Staff-Role"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestLogger())
	r.Use(middleware.ActorContext())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		apartments := api.Group("/apartments")
		{
			apartments.GET("", ac.ListApartments)
			apartments.GET("/:code", ac.GetApartment)
			apartments.GET("/:code/events", ac.GetApartmentEvents)
			apartments.POST("", ac.CreateApartment)
			apartments.PUT("", ac.MutateApartment)
		}

		properties := api.Group("/properties")
		{
			properties.GET("", pc.GetProperties)
			properties.GET("/:code/capacity", pc.GetPropertyCapacity)
		}

		api.GET("/agents", controllers.GetAgents)
		api.GET("/apartment-types", controllers.GetApartmentTypes)
	}

	return r
}
