package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bionutrex/internal/auth"
	"github.com/bionutrex/internal/db"
	"github.com/bionutrex/internal/service"
	"github.com/gin-gonic/gin"
)

const adminContextKey = "__admin"

// AuthRequired 校验 Bearer Token，并将当前管理员写入上下文。
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			respondError(c, http.StatusUnauthorized, "No token provided")
			c.Abort()
			return
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !found || token == "" {
			respondError(c, http.StatusUnauthorized, "Invalid token format")
			c.Abort()
			return
		}

		admin, err := a.auth.Authenticate(token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrAdminNotFound):
				respondError(c, http.StatusUnauthorized, "Admin not found")
			case errors.Is(err, auth.ErrInvalidToken):
				respondError(c, http.StatusUnauthorized, "Invalid token")
			default:
				a.internalError(c, err)
			}
			c.Abort()
			return
		}

		c.Set(adminContextKey, admin)
		c.Next()
	}
}

// CurrentAdmin 返回通过认证的管理员，未认证时为 nil。
func CurrentAdmin(c *gin.Context) *db.Admin {
	value, exists := c.Get(adminContextKey)
	if !exists {
		return nil
	}
	admin, _ := value.(*db.Admin)
	return admin
}
