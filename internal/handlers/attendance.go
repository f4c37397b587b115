package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/Chun-Lin-Huang/class/internal/engine"
	"github.com/Chun-Lin-Huang/class/internal/export"
	"github.com/Chun-Lin-Huang/class/internal/models"
	"github.com/Chun-Lin-Huang/class/internal/utils"
)

type AttendanceHandler struct {
	Engine *engine.Engine
}

func NewAttendanceHandler(e *engine.Engine) *AttendanceHandler {
	return &AttendanceHandler{Engine: e}
}

type StartSessionRequest struct {
	CourseID       string `json:"courseId" binding:"required"`
	SessionDate    string `json:"sessionDate"`
	AttendanceMode string `json:"attendanceMode" binding:"omitempty,oneof=code manual"`
}

// POST /api/v1/attendance/start-session
func (h *AttendanceHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "Invalid request schema")
		return
	}

	sessionDate := time.Now()
	if req.SessionDate != "" {
		if parsed, err := parseDate(req.SessionDate); err == nil {
			sessionDate = parsed
		}
	}
	mode := req.AttendanceMode
	if mode == "" {
		mode = models.AttendanceModeCode
	}

	res := h.Engine.StartSession(c.Request.Context(), req.CourseID, sessionDate, mode)
	utils.Respond(c, res.Code, res.Message, res.Body)
}

// POST /api/v1/attendance/end-session/:id
func (h *AttendanceHandler) EndSession(c *gin.Context) {
	res := h.Engine.EndSession(c.Request.Context(), c.Param("id"))
	utils.Respond(c, res.Code, res.Message, res.Body)
}

type CheckInRequest struct {
	AttendanceCode string `json:"attendanceCode" binding:"required"`
}

// POST /api/v1/attendance/check-in
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	studentID := c.GetString("userId")
	if studentID == "" {
		utils.ErrorResponse(c, 401, "Unauthorized")
		return
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "Invalid request schema")
		return
	}

	res := h.Engine.CheckIn(c.Request.Context(), studentID, req.AttendanceCode)
	utils.Respond(c, res.Code, res.Message, res.Body)
}

// GET /api/v1/attendance/student-records?courseId=
func (h *AttendanceHandler) StudentRecords(c *gin.Context) {
	studentID := c.GetString("userId")
	if studentID == "" {
		utils.ErrorResponse(c, 401, "Unauthorized")
		return
	}

	res := h.Engine.StudentRecords(c.Request.Context(), studentID, c.Query("courseId"))
	utils.Respond(c, res.Code, res.Message, res.Body)
}

// GET /api/v1/attendance/course-stats/:courseId?sessionId=
func (h *AttendanceHandler) CourseStats(c *gin.Context) {
	res := h.Engine.CourseStats(c.Request.Context(), c.Param("courseId"), c.Query("sessionId"))
	utils.Respond(c, res.Code, res.Message, res.Body)
}

// GET /api/v1/attendance/active-sessions
func (h *AttendanceHandler) ActiveSessions(c *gin.Context) {
	res := h.Engine.ActiveSessions(c.Request.Context())
	utils.Respond(c, res.Code, res.Message, res.Body)
}

// GET /api/v1/attendance/all-sessions
func (h *AttendanceHandler) AllSessions(c *gin.Context) {
	res := h.Engine.AllSessions(c.Request.Context())
	utils.Respond(c, res.Code, res.Message, res.Body)
}

// GET /api/v1/attendance/course-students/:courseId
func (h *AttendanceHandler) CourseStudents(c *gin.Context) {
	res := h.Engine.CourseStudents(c.Request.Context(), c.Param("courseId"))
	utils.Respond(c, res.Code, res.Message, res.Body)
}

type ManualAttendanceRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	StudentID string `json:"studentId" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=present absent"`
}

// POST /api/v1/attendance/manual-attendance
func (h *AttendanceHandler) ManualAttendance(c *gin.Context) {
	var req ManualAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "Invalid request schema")
		return
	}

	res := h.Engine.ManualAttendance(c.Request.Context(), req.SessionID, req.StudentID, req.Status)
	utils.Respond(c, res.Code, res.Message, res.Body)
}

type UpdateStatusRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	StudentID string `json:"studentId" binding:"required"`
	NewStatus string `json:"newStatus" binding:"required,attstatus"`
	Notes     string `json:"notes"`
}

// POST /api/v1/attendance/update-attendance-status
func (h *AttendanceHandler) UpdateAttendanceStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "Invalid request schema")
		return
	}

	res := h.Engine.UpdateAttendanceStatus(c.Request.Context(), req.SessionID, req.StudentID, req.NewStatus, req.Notes)
	utils.Respond(c, res.Code, res.Message, res.Body)
}

// GET /api/v1/attendance/random-selection?courseId=&date=YYYY-MM-DD
func (h *AttendanceHandler) RandomSelection(c *gin.Context) {
	courseID := c.Query("courseId")
	if courseID == "" {
		utils.ErrorResponse(c, 400, "courseId is required")
		return
	}

	var targetDate time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			utils.ErrorResponse(c, 400, "Invalid date, expected YYYY-MM-DD")
			return
		}
		targetDate = parsed
	}

	res := h.Engine.RandomSelection(c.Request.Context(), courseID, targetDate)
	utils.Respond(c, res.Code, res.Message, res.Body)
}

// GET /api/v1/attendance/export-excel?courseId=&date=YYYY-MM-DD
func (h *AttendanceHandler) ExportExcel(c *gin.Context) {
	courseID := c.Query("courseId")
	if courseID == "" {
		utils.ErrorResponse(c, 400, "courseId is required")
		return
	}

	var date time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			utils.ErrorResponse(c, 400, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	res := h.Engine.DaySessions(c.Request.Context(), courseID, date)
	if res.Code != 200 {
		utils.Respond(c, res.Code, res.Message, res.Body)
		return
	}
	sessions := res.Body.([]models.AttendanceSession)

	c.Header("Content-Disposition", `attachment; filename="attendance.csv"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := export.WriteSessionsCSV(c.Writer, sessions); err != nil {
		// Headers are already out; nothing left to do but log via gin.
		_ = c.Error(err)
	}
}

// GET /api/v1/attendance/session-qr/:id
func (h *AttendanceHandler) SessionQR(c *gin.Context) {
	res := h.Engine.GetSession(c.Request.Context(), c.Param("id"))
	if res.Code != 200 {
		utils.Respond(c, res.Code, res.Message, res.Body)
		return
	}
	session := res.Body.(*models.AttendanceSession)
	if session.Status != models.SessionStatusActive {
		utils.ErrorResponse(c, 400, "Attendance session already ended")
		return
	}

	png, err := qrcode.Encode(session.SessionCode, qrcode.Medium, 256)
	if err != nil {
		utils.ErrorResponse(c, 500, "Failed to render QR code")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// parseDate accepts a plain date or a full RFC 3339 timestamp.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
