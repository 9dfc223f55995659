package handler

import (
	"errors"
	"net/http"

	"github.com/bionutrex/internal/service"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// Login 校验邮箱与密码并签发 Token。
func (a *API) Login(c *gin.Context) {
	var payload loginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondValidation(c, "Email and password are required", err)
		return
	}

	session, err := a.auth.Login(payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredentialsMissing):
			respondError(c, http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
		default:
			a.internalError(c, err)
		}
		return
	}

	a.log.Info("admin logged in", "admin_id", session.Admin.ID)
	c.JSON(http.StatusOK, gin.H{"token": session.Token, "admin": session.Admin})
}

// Register 创建管理员账号，可通过 AUTH_ALLOW_REGISTER 关闭。
func (a *API) Register(c *gin.Context) {
	if !a.allowRegister {
		respondError(c, http.StatusForbidden, "Registration is disabled")
		return
	}

	var payload registerRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondValidation(c, "All fields are required", err)
		return
	}

	session, err := a.auth.Register(service.RegisterInput{
		Email:    payload.Email,
		Password: payload.Password,
		Name:     payload.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredentialsMissing):
			respondError(c, http.StatusBadRequest, "All fields are required")
		case errors.Is(err, service.ErrAdminExists):
			respondError(c, http.StatusBadRequest, "Admin already exists")
		default:
			a.internalError(c, err)
		}
		return
	}

	a.log.Info("admin registered", "admin_id", session.Admin.ID)
	c.JSON(http.StatusCreated, gin.H{"token": session.Token, "admin": session.Admin})
}

// Verify 返回当前 Token 对应的管理员。
func (a *API) Verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"admin": CurrentAdmin(c)})
}
