package handler

import (
	"net/http"
	"strings"

	"rental-manager/internal/audit"
	"rental-manager/internal/middleware"
	"rental-manager/internal/models"
	"rental-manager/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserHandler is the ADMIN-only user management surface.
type UserHandler struct {
	DB         *gorm.DB
	BcryptCost int
}

func NewUserHandler(db *gorm.DB, bcryptCost int) *UserHandler {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserHandler{DB: db, BcryptCost: bcryptCost}
}

type createUserReq struct {
	FullName string `json:"full_name" binding:"required,min=2,max=128"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"max=32"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type userResp struct {
	ID       uint              `json:"id"`
	FullName string            `json:"full_name"`
	Email    string            `json:"email"`
	Phone    string            `json:"phone,omitempty"`
	Role     models.Role       `json:"role"`
	Status   models.UserStatus `json:"status"`
}

func toUserResp(u *models.User) userResp {
	return userResp{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     u.Role,
		Status:   u.Status,
	}
}

// CreateUser creates a staff or tenant account.
func (h *UserHandler) CreateUser(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "missing required fields")
		return
	}

	role := models.Role(strings.ToUpper(req.Role))
	if !models.ValidRole(role) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid role")
		return
	}
	if !isStrongPassword(req.Password) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
			"password must be 8-32 chars with upper, lower and digit")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var count int64
	if err := h.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query users")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "email already in use")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
		return
	}

	user := models.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
		Role:         role,
		Status:       models.UserActive,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create user")
		return
	}

	audit.Record(h.DB, actor.ID, "USER_CREATE", "USER", user.ID, map[string]interface{}{
		"role": string(user.Role),
	})

	util.Created(c, util.Response{"user": toUserResp(&user)})
}

// ListUsers returns accounts, optionally filtered by role or status.
func (h *UserHandler) ListUsers(c *gin.Context) {
	q := h.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", strings.ToUpper(role))
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", strings.ToUpper(status))
	}

	var users []models.User
	if err := q.Order("id ASC").Find(&users).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query users")
		return
	}

	items := make([]userResp, 0, len(users))
	for i := range users {
		items = append(items, toUserResp(&users[i]))
	}
	util.Success(c, util.Response{"users": items})
}

type updateUserStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// UpdateUserStatus suspends or reactivates an account.
func (h *UserHandler) UpdateUserStatus(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req updateUserStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "missing status")
		return
	}
	status := models.UserStatus(strings.ToUpper(req.Status))
	if status != models.UserActive && status != models.UserSuspended {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid status value")
		return
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "user not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query user")
		}
		return
	}

	if err := h.DB.Model(&user).Update("status", status).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update user")
		return
	}
	user.Status = status

	audit.Record(h.DB, actor.ID, "USER_STATUS_UPDATE", "USER", user.ID, map[string]interface{}{
		"status": string(status),
	})

	util.Success(c, util.Response{"user": toUserResp(&user)})
}
