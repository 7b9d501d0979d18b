package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexapost/internal/service"
)

// ShowPostEdit 渲染文章编辑表单，路径不带 sno 时为新建
func (a *API) ShowPostEdit(c *gin.Context) {
	if c.Param("sno") == "" {
		a.renderHTML(c, http.StatusOK, "edit.html", gin.H{
			"title": "新建文章",
		})
		return
	}

	sno, err := parseUintParam(c, "sno")
	if err != nil {
		setFlash(c, "danger", "无效的文章编号")
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}

	post, err := a.posts.Get(sno)
	if err != nil {
		setFlash(c, "danger", "文章不存在")
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}

	a.renderHTML(c, http.StatusOK, "edit.html", gin.H{
		"title": "编辑文章",
		"post":  post,
	})
}

// SavePostForm 处理编辑表单提交：带 sno 走更新，否则走新建。
// 所有错误都转为提示消息并重定向，不向访客暴露内部错误。
func (a *API) SavePostForm(c *gin.Context) {
	input := service.PostInput{
		Title:    c.PostForm("title"),
		Tagline:  c.PostForm("tagline"),
		Slug:     c.PostForm("slug"),
		Content:  c.PostForm("content"),
		ImageURL: c.PostForm("img_url"),
	}

	if c.Param("sno") == "" {
		if _, err := a.posts.Create(input); err != nil {
			setFlash(c, "danger", postErrorMessage(err))
			c.Redirect(http.StatusFound, "/admin/posts/new")
			return
		}
		setFlash(c, "success", "文章保存成功")
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}

	sno, err := parseUintParam(c, "sno")
	if err != nil {
		setFlash(c, "danger", "无效的文章编号")
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}

	if _, err := a.posts.Update(sno, input); err != nil {
		setFlash(c, "danger", postErrorMessage(err))
		c.Redirect(http.StatusFound, fmt.Sprintf("/admin/posts/%d/edit", sno))
		return
	}

	setFlash(c, "success", "文章保存成功")
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// RemovePost 删除文章后回到管理面板
func (a *API) RemovePost(c *gin.Context) {
	sno, err := parseUintParam(c, "sno")
	if err != nil {
		setFlash(c, "danger", "无效的文章编号")
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}

	if err := a.posts.Delete(sno); err != nil {
		setFlash(c, "danger", postErrorMessage(err))
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}

	setFlash(c, "success", "文章已删除")
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// postPayload 是 JSON API 的文章请求体
type postPayload struct {
	Title    string `json:"title"`
	Tagline  string `json:"tagline"`
	Slug     string `json:"slug"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

func (p postPayload) toInput() service.PostInput {
	return service.PostInput{
		Title:    p.Title,
		Tagline:  p.Tagline,
		Slug:     p.Slug,
		Content:  p.Content,
		ImageURL: p.ImageURL,
	}
}

// GetPosts 获取文章列表
func (a *API) GetPosts(c *gin.Context) {
	posts, err := a.posts.ListAllByRecency()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取文章列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPost 获取单篇文章
func (a *API) GetPost(c *gin.Context) {
	sno, err := parseUintParam(c, "sno")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章编号")
		return
	}

	post, err := a.posts.Get(sno)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "文章不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取文章失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// CreatePost 创建新文章
func (a *API) CreatePost(c *gin.Context) {
	var payload postPayload
	if !bindJSON(c, &payload, "无效的请求体") {
		return
	}

	post, err := a.posts.Create(payload.toInput())
	if err != nil {
		a.respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文章创建成功", "post": post})
}

// UpdatePost 更新文章
func (a *API) UpdatePost(c *gin.Context) {
	sno, err := parseUintParam(c, "sno")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章编号")
		return
	}

	var payload postPayload
	if !bindJSON(c, &payload, "无效的请求体") {
		return
	}

	post, err := a.posts.Update(sno, payload.toInput())
	if err != nil {
		a.respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文章更新成功", "post": post})
}

// DeletePost 删除文章
func (a *API) DeletePost(c *gin.Context) {
	sno, err := parseUintParam(c, "sno")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章编号")
		return
	}

	if err := a.posts.Delete(sno); err != nil {
		a.respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文章已删除"})
}

// GetContactMessages 获取联系表单留言列表
func (a *API) GetContactMessages(c *gin.Context) {
	messages, err := a.contacts.ListAllByRecency()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取留言列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (a *API) respondPostError(c *gin.Context, err error) {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		respondError(c, http.StatusBadRequest, validation.Error())
	case errors.Is(err, service.ErrDuplicateSlug):
		respondError(c, http.StatusConflict, "slug 已被占用")
	case errors.Is(err, service.ErrPostNotFound):
		respondError(c, http.StatusNotFound, "文章不存在")
	default:
		respondError(c, http.StatusInternalServerError, "存储操作失败")
	}
}

func postErrorMessage(err error) string {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		return "表单填写不完整：" + validation.Error()
	case errors.Is(err, service.ErrDuplicateSlug):
		return "slug 已被其他文章占用"
	case errors.Is(err, service.ErrPostNotFound):
		return "文章不存在"
	default:
		return "存储操作失败，请稍后再试"
	}
}
