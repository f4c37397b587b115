package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Chun-Lin-Huang/class/internal/handlers"
	"github.com/Chun-Lin-Huang/class/internal/middleware"
)

func AttendanceRoutes(r *gin.RouterGroup, h *handlers.AttendanceHandler) {
	attendance := r.Group("/attendance", middleware.AuthMiddleware())
	{
		attendance.POST("/check-in", h.CheckIn)
		attendance.GET("/student-records", h.StudentRecords)
		attendance.GET("/session-qr/:id", h.SessionQR)

		admin := attendance.Group("", middleware.AdminOnly())
		{
			admin.POST("/start-session", h.StartSession)
			admin.POST("/end-session/:id", h.EndSession)
			admin.GET("/course-stats/:courseId", h.CourseStats)
			admin.GET("/active-sessions", h.ActiveSessions)
			admin.GET("/all-sessions", h.AllSessions)
			admin.GET("/course-students/:courseId", h.CourseStudents)
			admin.POST("/manual-attendance", h.ManualAttendance)
			admin.POST("/update-attendance-status", h.UpdateAttendanceStatus)
			admin.GET("/random-selection", h.RandomSelection)
			admin.GET("/export-excel", h.ExportExcel)
		}
	}
}
