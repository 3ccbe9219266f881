package handler

import (
	"net/http"

	"github.com/driftpress/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// 会话键
const (
	sessionKeyEmail   = "user_email"
	sessionKeyName    = "user_name"
	sessionKeyIsAdmin = "is_admin"
)

// Login 处理超级账号的用户名密码登录
func (a *API) Login(c *gin.Context) {
	var credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &credentials, "invalid login payload") {
		return
	}

	var user db.User
	if err := a.db.Where("username = ?", credentials.Username).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "invalid username or password")
		return
	}

	if user.Password == "" {
		respondError(c, http.StatusUnauthorized, "invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(credentials.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid username or password")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyEmail, user.Email)
	session.Set(sessionKeyName, user.Username)
	session.Set(sessionKeyIsAdmin, true)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": gin.H{
			"email":   user.Email,
			"name":    user.Username,
			"isAdmin": true,
		},
	})
}

// Logout 清除当前会话
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Session 暴露当前会话信息给前端做界面门控
func (a *API) Session(c *gin.Context) {
	session := sessions.Default(c)
	email, _ := session.Get(sessionKeyEmail).(string)
	name, _ := session.Get(sessionKeyName).(string)
	isAdmin, _ := session.Get(sessionKeyIsAdmin).(bool)

	if email == "" && name == "" {
		c.JSON(http.StatusOK, gin.H{"session": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": gin.H{
			"email":   email,
			"name":    name,
			"isAdmin": isAdmin,
		},
	})
}

// AdminRequired 是保护全部写接口的认证中间件。
// 每个写请求都在服务端重新校验会话里的管理员标记。
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		isAdmin, _ := session.Get(sessionKeyIsAdmin).(bool)
		if !isAdmin {
			respondError(c, http.StatusUnauthorized, "admin session required")
			c.Abort()
			return
		}
		c.Next()
	}
}
