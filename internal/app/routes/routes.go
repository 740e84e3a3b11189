package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/courseroom/backend/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	instructorController *controllers.InstructorController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	instructors := v1.Group("/instructors")
	{
		instructors.POST("", instructorController.CreateInstructor)
		instructors.GET("", instructorController.ListInstructors)
		instructors.GET("/find", instructorController.GetInstructor)
		instructors.PUT("", instructorController.UpdateInstructor)
		instructors.DELETE("", instructorController.DeleteInstructors)
	}
}
