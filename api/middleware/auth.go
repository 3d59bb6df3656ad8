package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"yatube/services"

	"github.com/gin-gonic/gin"
)

// LOGIN_URL - точка входа внешнего провайдера идентичности
const LOGIN_URL = "/auth/login/"

var userService = services.NewUserService()

// currentUserID разрешает идентичность запроса.
// Поддерживаются два варианта:
// 1. X-User-ID заголовок (для тестов)
// 2. Authorization: Bearer <token> - токен сессии из user_tokens
func currentUserID(c *gin.Context) (int64, bool) {
	userIDHeader := c.GetHeader("X-User-ID")
	if userIDHeader != "" {
		userID, err := strconv.ParseInt(userIDHeader, 10, 64)
		if err != nil {
			return 0, false
		}
		return userID, true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		user, err := userService.GetByToken(c.Request.Context(), token)
		if err == nil {
			return user.ID, true
		}
	}

	return 0, false
}

// RequireAuth перенаправляет анонимные запросы на страницу логина,
// сохраняя исходный путь в параметре next
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.Redirect(http.StatusFound, LOGIN_URL+"?next="+c.Request.URL.Path)
			c.Abort()
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

// OptionalAuth устанавливает идентичность, если она есть, но не требует ее
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := currentUserID(c); ok {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}
