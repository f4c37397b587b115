package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Chun-Lin-Huang/class/internal/models"
	"github.com/Chun-Lin-Huang/class/internal/store"
	"github.com/Chun-Lin-Huang/class/internal/utils"
)

type CourseHandler struct {
	Courses *store.CourseStore
}

func NewCourseHandler(courses *store.CourseStore) *CourseHandler {
	return &CourseHandler{Courses: courses}
}

// GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.Courses.List(c.Request.Context())
	if err != nil {
		log.Printf("courses: list: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	utils.SuccessResponse(c, 200, "Courses fetched", courses)
}

// GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Courses.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("courses: get: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	if course == nil {
		utils.ErrorResponse(c, 404, "Course not found")
		return
	}
	utils.SuccessResponse(c, 200, "Course fetched", course)
}

type CourseRequest struct {
	CourseName string `json:"courseName" binding:"required"`
	CourseCode string `json:"courseCode"`
	Teacher    string `json:"teacher"`
	Semester   string `json:"semester"`
}

// POST /api/v1/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "Invalid request schema")
		return
	}

	course := &models.Course{
		CourseName: req.CourseName,
		CourseCode: req.CourseCode,
		Teacher:    req.Teacher,
		Semester:   req.Semester,
	}
	if err := h.Courses.Create(c.Request.Context(), course); err != nil {
		log.Printf("courses: create: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	utils.SuccessResponse(c, 201, "Course created", course)
}

// PUT /api/v1/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "Invalid request schema")
		return
	}

	patch := bson.M{
		"courseName": req.CourseName,
		"courseCode": req.CourseCode,
		"teacher":    req.Teacher,
		"semester":   req.Semester,
	}
	course, err := h.Courses.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		log.Printf("courses: update: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	if course == nil {
		utils.ErrorResponse(c, 404, "Course not found")
		return
	}
	utils.SuccessResponse(c, 200, "Course updated", course)
}

// DELETE /api/v1/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	deleted, err := h.Courses.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("courses: delete: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	if !deleted {
		utils.ErrorResponse(c, 404, "Course not found")
		return
	}
	utils.SuccessResponse(c, 200, "Course deleted", nil)
}
