package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// flash 级别沿用 bootstrap 的语义
var flashLevels = []string{"success", "danger", "warning", "info"}

type flashMessage struct {
	Level string
	Text  string
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// parsePositiveInt 解析查询参数，非数字或非正数时回退到 fallback。
func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func setFlash(c *gin.Context, level, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, level)
	if err := session.Save(); err != nil {
		c.Error(err)
	}
}

func popFlashes(c *gin.Context) []flashMessage {
	session := sessions.Default(c)

	var messages []flashMessage
	for _, level := range flashLevels {
		for _, raw := range session.Flashes(level) {
			if text, ok := raw.(string); ok {
				messages = append(messages, flashMessage{Level: level, Text: text})
			}
		}
	}

	if len(messages) > 0 {
		if err := session.Save(); err != nil {
			c.Error(err)
		}
	}

	return messages
}
