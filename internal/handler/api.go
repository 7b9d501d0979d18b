package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexapost/internal/config"
	"github.com/nexapost/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	cfg      config.AppConfig
	posts    *service.PostService
	contacts *service.ContactService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(cfg config.AppConfig, gdb *gorm.DB, mailer service.Mailer) *API {
	return &API{
		cfg:      cfg,
		posts:    service.NewPostService(gdb),
		contacts: service.NewContactService(gdb, mailer, cfg.MailSender, cfg.ContactRecipient),
	}
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["site"]; !exists {
		payload["site"] = gin.H{
			"name":    a.cfg.SiteName,
			"tagline": a.cfg.SiteTagline,
		}
	}
	if _, exists := payload["flashes"]; !exists {
		payload["flashes"] = popFlashes(c)
	}
	if _, exists := payload["isAdmin"]; !exists {
		payload["isAdmin"] = isAdmin(c)
	}
	payload["year"] = time.Now().Year()

	c.HTML(status, template, payload)
}
