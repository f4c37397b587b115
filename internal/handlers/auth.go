package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Chun-Lin-Huang/class/internal/models"
	"github.com/Chun-Lin-Huang/class/internal/store"
	"github.com/Chun-Lin-Huang/class/internal/utils"
)

type AuthHandler struct {
	Users    *store.UserStore
	Students *store.StudentStore
}

func NewAuthHandler(users *store.UserStore, students *store.StudentStore) *AuthHandler {
	return &AuthHandler{Users: users, Students: students}
}

type RegisterRequest struct {
	UserName    string              `json:"userName" binding:"required"`
	Password    string              `json:"password" binding:"required,min=6"`
	Role        string              `json:"role" binding:"omitempty,oneof=student admin"`
	StudentInfo *models.StudentInfo `json:"studentInfo"`
}

// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "Invalid request schema")
		return
	}

	ctx := c.Request.Context()
	existing, err := h.Users.FindByUserName(ctx, req.UserName)
	if err != nil {
		log.Printf("auth: register lookup: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	if existing != nil {
		utils.ErrorResponse(c, 400, "Username already taken")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("auth: hash password: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}
	user := &models.User{
		UserName:    req.UserName,
		Password:    hash,
		Role:        role,
		StudentInfo: req.StudentInfo,
	}
	if err := h.Users.Create(ctx, user); err != nil {
		log.Printf("auth: create user: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}

	// A student account with a student number also lands on the roster.
	if role == models.RoleStudent && req.StudentInfo != nil && req.StudentInfo.SID != "" {
		name := req.StudentInfo.Name
		if name == "" {
			name = req.UserName
		}
		_, err := h.Students.UpsertByStudentID(ctx, &models.Student{
			StudentID:  req.StudentInfo.SID,
			Name:       name,
			Department: req.StudentInfo.Department,
			Grade:      req.StudentInfo.Grade,
			Class:      req.StudentInfo.Class,
			Email:      req.StudentInfo.Email,
		})
		if err != nil {
			log.Printf("auth: roster upsert for %s: %v", req.StudentInfo.SID, err)
		}
	}

	token, err := utils.IssueToken(user.ID.Hex(), user.UserName, user.Role)
	if err != nil {
		log.Printf("auth: issue token: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	utils.SuccessResponse(c, 200, "Registered", gin.H{"token": token, "user": user})
}

type LoginRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "Invalid request schema")
		return
	}

	user, err := h.Users.FindByUserName(c.Request.Context(), req.UserName)
	if err != nil {
		log.Printf("auth: login lookup: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	if user == nil || !utils.CheckPassword(user.Password, req.Password) {
		utils.ErrorResponse(c, 401, "Invalid username or password")
		return
	}

	token, err := utils.IssueToken(user.ID.Hex(), user.UserName, user.Role)
	if err != nil {
		log.Printf("auth: issue token: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	utils.SuccessResponse(c, 200, "Login successful", gin.H{"token": token, "user": user})
}

// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("userId")

	user, err := h.Users.FindByID(c.Request.Context(), userID)
	if err != nil {
		log.Printf("auth: me lookup: %v", err)
		utils.ErrorResponse(c, 500, "Internal server error")
		return
	}
	if user == nil {
		// External-IdP subjects have no local user document.
		utils.SuccessResponse(c, 200, "Profile fetched", gin.H{
			"userId": userID,
			"role":   c.GetString("role"),
		})
		return
	}
	utils.SuccessResponse(c, 200, "Profile fetched", user)
}
