package handlers

import (
	"encoding/csv"
	"io"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Chun-Lin-Huang/class/internal/models"
	"github.com/Chun-Lin-Huang/class/internal/store"
	"github.com/Chun-Lin-Huang/class/internal/utils"
)

type CourseStudentHandler struct {
	Courses  *store.CourseStore
	Students *store.StudentStore
	Roster   *store.CourseStudentStore
}

func NewCourseStudentHandler(courses *store.CourseStore, students *store.StudentStore, roster *store.CourseStudentStore) *CourseStudentHandler {
	return &CourseStudentHandler{Courses: courses, Students: students, Roster: roster}
}

type EnrollRequest struct {
	CourseID  string `json:"courseId" binding:"required"`
	StudentID string `json:"studentId" binding:"required"`
}

// POST /api/v1/course-students/enroll
func (h *CourseStudentHandler) Enroll(c *gin.Context) {
	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "Invalid request schema")
		return
	}

	ctx := c.Request.Context()
	course, err := h.Courses.FindByID(ctx, req.CourseID)
	if err != nil {
		log.Printf("course-students: enroll course lookup: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	if course == nil {
		utils.ErrorResponse(c, 404, "Course not found")
		return
	}

	student, err := h.Students.FindByID(ctx, req.StudentID)
	if err != nil {
		log.Printf("course-students: enroll student lookup: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	if student == nil {
		utils.ErrorResponse(c, 404, "Student not found")
		return
	}

	if err := h.Roster.Enroll(ctx, course.ID, student.ID); err != nil {
		log.Printf("course-students: enroll: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	utils.SuccessResponse(c, 200, "Student enrolled", gin.H{
		"courseId":  course.ID.Hex(),
		"studentId": student.StudentID,
	})
}

// DELETE /api/v1/course-students/course/:courseId/:studentId
func (h *CourseStudentHandler) Remove(c *gin.Context) {
	ctx := c.Request.Context()
	course, err := h.Courses.FindByID(ctx, c.Param("courseId"))
	if err != nil {
		log.Printf("course-students: remove course lookup: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	if course == nil {
		utils.ErrorResponse(c, 404, "Course not found")
		return
	}

	student, err := h.Students.FindByID(ctx, c.Param("studentId"))
	if err != nil {
		log.Printf("course-students: remove student lookup: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	if student == nil {
		utils.ErrorResponse(c, 404, "Student not found")
		return
	}

	removed, err := h.Roster.Remove(ctx, course.ID, student.ID)
	if err != nil {
		log.Printf("course-students: remove: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	if !removed {
		utils.ErrorResponse(c, 404, "Student is not enrolled in this course")
		return
	}
	utils.SuccessResponse(c, 200, "Student removed from course", nil)
}

// GET /api/v1/course-students/course/:courseId
func (h *CourseStudentHandler) ListByCourse(c *gin.Context) {
	ctx := c.Request.Context()
	course, err := h.Courses.FindByID(ctx, c.Param("courseId"))
	if err != nil {
		log.Printf("course-students: list course lookup: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	if course == nil {
		utils.ErrorResponse(c, 404, "Course not found")
		return
	}

	students, err := h.Roster.ListStudents(ctx, c.Param("courseId"))
	if err != nil {
		log.Printf("course-students: list: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	if students == nil {
		students = []models.Student{}
	}
	utils.SuccessResponse(c, 200, "Course students fetched", students)
}

// GET /api/v1/course-students/students
func (h *CourseStudentHandler) ListAll(c *gin.Context) {
	students, err := h.Students.List(c.Request.Context())
	if err != nil {
		log.Printf("course-students: list all: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	if students == nil {
		students = []models.Student{}
	}
	utils.SuccessResponse(c, 200, "Students fetched", students)
}

type CreateStudentRequest struct {
	StudentID  string `json:"studentId" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Department string `json:"department"`
	Grade      string `json:"grade"`
	Class      string `json:"class"`
	Email      string `json:"email" binding:"omitempty,email"`
}

// POST /api/v1/course-students/create-student
func (h *CourseStudentHandler) CreateStudent(c *gin.Context) {
	var req CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "Invalid request schema")
		return
	}

	student, err := h.Students.UpsertByStudentID(c.Request.Context(), &models.Student{
		StudentID:  req.StudentID,
		Name:       req.Name,
		Department: req.Department,
		Grade:      req.Grade,
		Class:      req.Class,
		Email:      req.Email,
	})
	if err != nil {
		log.Printf("course-students: create student: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	utils.SuccessResponse(c, 201, "Student created", student)
}

// POST /api/v1/course-students/import-csv
//
// Multipart upload with a "file" field; columns are
// studentId,name,department,grade,class,email with an optional header
// row. Each row is upserted into the roster and, when courseId is sent
// alongside, enrolled into that course.
func (h *CourseStudentHandler) ImportCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, 400, "CSV file is required")
		return
	}

	ctx := c.Request.Context()
	var course *models.Course
	if courseID := c.PostForm("courseId"); courseID != "" {
		course, err = h.Courses.FindByID(ctx, courseID)
		if err != nil {
			log.Printf("course-students: import course lookup: %v", err)
			utils.ErrorResponse(c, 500, "Internal server error")
			return
		}
		if course == nil {
			utils.ErrorResponse(c, 404, "Course not found")
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.ErrorResponse(c, 400, "Cannot read uploaded file")
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	imported := 0
	skipped := 0
	for rowNum := 0; ; rowNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			utils.ErrorResponse(c, 400, "Malformed CSV file")
			return
		}
		if len(row) < 2 {
			skipped++
			continue
		}
		sid := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		if sid == "" || name == "" || (rowNum == 0 && strings.EqualFold(sid, "studentId")) {
			skipped++
			continue
		}

		student := &models.Student{StudentID: sid, Name: name}
		if len(row) > 2 {
			student.Department = strings.TrimSpace(row[2])
		}
		if len(row) > 3 {
			student.Grade = strings.TrimSpace(row[3])
		}
		if len(row) > 4 {
			student.Class = strings.TrimSpace(row[4])
		}
		if len(row) > 5 {
			student.Email = strings.TrimSpace(row[5])
		}

		stored, err := h.Students.UpsertByStudentID(ctx, student)
		if err != nil {
			log.Printf("course-students: import row %d: %v", rowNum, err)
			skipped++
			continue
		}
		if course != nil {
			if err := h.Roster.Enroll(ctx, course.ID, stored.ID); err != nil {
				log.Printf("course-students: import enroll row %d: %v", rowNum, err)
			}
		}
		imported++
	}

	utils.SuccessResponse(c, 200, "Import complete", gin.H{
		"imported": imported,
		"skipped":  skipped,
	})
}
