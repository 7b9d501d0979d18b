package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionKeyAdmin = "is_admin"
	ctxKeyIsAdmin   = "__is_admin"
)

// ResolveAdmin 每个请求只读取一次会话，把管理员标记放进请求上下文，
// 后续处理函数一律从上下文取值，不再接触共享会话状态。
func ResolveAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		flag, _ := session.Get(sessionKeyAdmin).(bool)
		c.Set(ctxKeyIsAdmin, flag)
		c.Next()
	}
}

// AuthRequired 拦截未登录的后台请求
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAdmin(c) {
			setFlash(c, "warning", "请先登录后台")
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func isAdmin(c *gin.Context) bool {
	flag, _ := c.Get(ctxKeyIsAdmin)
	admin, _ := flag.(bool)
	return admin
}

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	if isAdmin(c) {
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}

	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title": "管理员登录",
	})
}

// Login 校验共享管理员口令并打开会话标记
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if username != a.cfg.AdminUser || !a.checkPassword(password) {
		a.renderHTML(c, http.StatusUnauthorized, "login.html", gin.H{
			"title":   "管理员登录",
			"flashes": []flashMessage{{Level: "danger", Text: "用户名或密码错误"}},
		})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyAdmin, true)
	if err := session.Save(); err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "login.html", gin.H{
			"title":   "管理员登录",
			"flashes": []flashMessage{{Level: "danger", Text: "会话保存失败"}},
		})
		return
	}
	c.Set(ctxKeyIsAdmin, true)

	setFlash(c, "success", "登录成功")
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Logout 清除会话并回到登录页
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	setFlash(c, "info", "已退出登录")
	c.Redirect(http.StatusFound, "/admin/login")
}

// ShowDashboard 渲染后台主面板：全部文章与留言，按时间倒序
func (a *API) ShowDashboard(c *gin.Context) {
	posts, err := a.posts.ListAllByRecency()
	if err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "dashboard.html", gin.H{
			"title": "管理面板",
			"error": "获取文章失败",
		})
		return
	}

	messages, err := a.contacts.ListAllByRecency()
	if err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "dashboard.html", gin.H{
			"title": "管理面板",
			"error": "获取留言失败",
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "dashboard.html", gin.H{
		"title":    "管理面板",
		"posts":    posts,
		"messages": messages,
	})
}

// checkPassword 优先使用 bcrypt 哈希，未配置时退回明文常量时间比较。
func (a *API) checkPassword(password string) bool {
	if a.cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(a.cfg.AdminPasswordHash), []byte(password)) == nil
	}
	if a.cfg.AdminPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a.cfg.AdminPassword), []byte(password)) == 1
}
