package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nexapost/internal/db"
	"gorm.io/gorm"
)

// ContactService 负责联系表单留言的落库与通知。
type ContactService struct {
	db        *gorm.DB
	mailer    Mailer
	sender    string
	recipient string
}

// ContactInput represents fields accepted from the contact form.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// NewContactService creates a ContactService instance. mailer may be
// nil, in which case no notification is sent.
func NewContactService(gdb *gorm.DB, mailer Mailer, sender, recipient string) *ContactService {
	return &ContactService{db: gdb, mailer: mailer, sender: sender, recipient: recipient}
}

// Create appends one contact message and fires the notification mail
// after the record is committed. A mail failure is logged only; the
// stored message is never rolled back because of it.
func (s *ContactService) Create(input ContactInput) (*db.ContactMessage, error) {
	normalized, err := validateContactInput(input)
	if err != nil {
		return nil, err
	}

	entry := db.ContactMessage{
		Name:       normalized.Name,
		Email:      normalized.Email,
		Phone:      normalized.Phone,
		Message:    normalized.Message,
		ReceivedAt: time.Now().UTC(),
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&entry).Error
	}); err != nil {
		return nil, err
	}

	s.notify(entry)

	return &entry, nil
}

// ListAllByRecency returns all contact messages newest first.
func (s *ContactService) ListAllByRecency() ([]db.ContactMessage, error) {
	var messages []db.ContactMessage
	if err := s.db.Order("received_at desc, sno desc").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *ContactService) notify(entry db.ContactMessage) {
	if s.mailer == nil || s.recipient == "" {
		return
	}

	subject := fmt.Sprintf("New message from %s", entry.Name)
	body := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\nMessage:\n%s",
		entry.Name, entry.Email, entry.Phone, entry.Message)

	if err := s.mailer.Send(subject, s.sender, []string{s.recipient}, body); err != nil {
		log.Printf("contact notification mail failed: %v", err)
	}
}

func validateContactInput(input ContactInput) (ContactInput, error) {
	normalized := ContactInput{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Message: strings.TrimSpace(input.Message),
	}

	if err := requireField("name", normalized.Name, 50); err != nil {
		return normalized, err
	}
	if err := requireField("email", normalized.Email, 50); err != nil {
		return normalized, err
	}
	if err := requireField("phone", normalized.Phone, 15); err != nil {
		return normalized, err
	}
	if err := requireField("message", normalized.Message, 120); err != nil {
		return normalized, err
	}

	return normalized, nil
}
