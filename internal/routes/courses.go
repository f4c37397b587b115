package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Chun-Lin-Huang/class/internal/handlers"
	"github.com/Chun-Lin-Huang/class/internal/middleware"
)

func CourseRoutes(r *gin.RouterGroup, h *handlers.CourseHandler) {
	courses := r.Group("/courses", middleware.AuthMiddleware())
	{
		courses.GET("", h.List)
		courses.GET("/:id", h.Get)

		admin := courses.Group("", middleware.AdminOnly())
		{
			admin.POST("", h.Create)
			admin.PUT("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
		}
	}
}

func CourseStudentRoutes(r *gin.RouterGroup, h *handlers.CourseStudentHandler) {
	cs := r.Group("/course-students", middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		cs.POST("/enroll", h.Enroll)
		cs.GET("/course/:courseId", h.ListByCourse)
		cs.DELETE("/course/:courseId/:studentId", h.Remove)
		cs.GET("/students", h.ListAll)
		cs.POST("/create-student", h.CreateStudent)
		cs.POST("/import-csv", h.ImportCSV)
	}
}
