package service

import (
	"github.com/nexapost/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer 抽象通知邮件的发送，便于在测试中替换。
type Mailer interface {
	Send(subject, sender string, recipients []string, body string) error
}

// SMTPMailer 通过 SMTP 发送纯文本通知邮件。
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
}

// NewSMTPMailer 从配置构建 SMTP 发送器。
func NewSMTPMailer(cfg config.AppConfig) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
	}
}

// Send 组装并投递一封邮件，阻塞直到对端接受或失败。
func (m *SMTPMailer) Send(subject, sender string, recipients []string, body string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", sender)
	message.SetHeader("To", recipients...)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return dialer.DialAndSend(message)
}
