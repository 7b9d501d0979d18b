package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexapost/internal/service"
)

// ShowHome 渲染首页：全量按时间倒序取出后再做窗口切片。
// page 参数非法时按第 1 页处理，越界时渲染空列表而不是报错。
func (a *API) ShowHome(c *gin.Context) {
	page := parsePositiveInt(c.DefaultQuery("page", "1"), 1)

	posts, err := a.posts.ListAllByRecency()
	if err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "index.html", gin.H{
			"title": "首页",
			"error": "获取文章失败",
		})
		return
	}

	result := service.Paginate(posts, a.cfg.PostsPerPage, page)

	a.renderHTML(c, http.StatusOK, "index.html", gin.H{
		"title":      "首页",
		"posts":      result.Posts,
		"page":       result.Page,
		"totalPages": result.TotalPages,
		"prev":       result.Prev,
		"next":       result.Next,
	})
}

// ShowPost 按 slug 渲染单篇文章，未命中返回 404 页面
func (a *API) ShowPost(c *gin.Context) {
	slug := c.Param("slug")

	post, err := a.posts.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			a.renderHTML(c, http.StatusNotFound, "404.html", gin.H{
				"title": "文章不存在",
				"slug":  slug,
			})
			return
		}
		a.renderHTML(c, http.StatusInternalServerError, "404.html", gin.H{
			"title": "获取文章失败",
			"slug":  slug,
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "post.html", gin.H{
		"title": post.Title,
		"post":  post,
	})
}

// ShowAbout 渲染关于页面
func (a *API) ShowAbout(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "about.html", gin.H{
		"title": "关于",
	})
}

// ShowContact 渲染联系表单
func (a *API) ShowContact(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "contact.html", gin.H{
		"title": "联系我",
	})
}

// SubmitContact 保存留言并在落库后发送通知邮件
func (a *API) SubmitContact(c *gin.Context) {
	input := service.ContactInput{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Phone:   c.PostForm("phone"),
		Message: c.PostForm("message"),
	}

	if _, err := a.contacts.Create(input); err != nil {
		var validation *service.ValidationError
		if errors.As(err, &validation) {
			setFlash(c, "danger", "表单填写不完整："+validation.Error())
		} else {
			setFlash(c, "danger", "留言保存失败，请稍后再试")
		}
		c.Redirect(http.StatusFound, "/contact")
		return
	}

	setFlash(c, "success", "留言发送成功！")
	c.Redirect(http.StatusFound, "/contact")
}
