package service

import (
	"errors"
	"testing"
)

type fakeMailer struct {
	calls      int
	err        error
	subject    string
	sender     string
	recipients []string
	body       string
}

func (f *fakeMailer) Send(subject, sender string, recipients []string, body string) error {
	f.calls++
	f.subject = subject
	f.sender = sender
	f.recipients = recipients
	f.body = body
	return f.err
}

func validContactInput() ContactInput {
	return ContactInput{
		Name:    "张三",
		Email:   "zhangsan@example.com",
		Phone:   "13800138000",
		Message: "你好，想交流一下",
	}
}

func TestContactService_CreateStoresAndNotifies(t *testing.T) {
	gdb := setupPostServiceTestDB(t)
	mailer := &fakeMailer{}
	svc := NewContactService(gdb, mailer, "noreply@nexapost.dev", "owner@nexapost.dev")

	entry, err := svc.Create(validContactInput())
	if err != nil {
		t.Fatalf("create contact message: %v", err)
	}
	if entry.Sno == 0 {
		t.Fatalf("expected store-assigned identity")
	}
	if entry.ReceivedAt.IsZero() {
		t.Fatalf("expected store-assigned received timestamp")
	}

	if mailer.calls != 1 {
		t.Fatalf("expected one notification mail, got %d", mailer.calls)
	}
	if mailer.subject != "New message from 张三" {
		t.Fatalf("unexpected subject: %q", mailer.subject)
	}
	if len(mailer.recipients) != 1 || mailer.recipients[0] != "owner@nexapost.dev" {
		t.Fatalf("unexpected recipients: %v", mailer.recipients)
	}

	messages, err := svc.ListAllByRecency()
	if err != nil {
		t.Fatalf("list contact messages: %v", err)
	}
	if len(messages) != 1 || messages[0].Name != "张三" {
		t.Fatalf("expected stored message, got %+v", messages)
	}
}

func TestContactService_MailFailureDoesNotRollBack(t *testing.T) {
	gdb := setupPostServiceTestDB(t)
	mailer := &fakeMailer{err: errors.New("smtp unreachable")}
	svc := NewContactService(gdb, mailer, "noreply@nexapost.dev", "owner@nexapost.dev")

	if _, err := svc.Create(validContactInput()); err != nil {
		t.Fatalf("create should succeed despite mail failure: %v", err)
	}

	messages, err := svc.ListAllByRecency()
	if err != nil {
		t.Fatalf("list contact messages: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected message persisted, got %d", len(messages))
	}
}

func TestContactService_NilMailerSkipsNotification(t *testing.T) {
	svc := NewContactService(setupPostServiceTestDB(t), nil, "", "")

	if _, err := svc.Create(validContactInput()); err != nil {
		t.Fatalf("create without mailer: %v", err)
	}
}

func TestContactService_Validation(t *testing.T) {
	svc := NewContactService(setupPostServiceTestDB(t), &fakeMailer{}, "a@b.c", "a@b.c")

	input := validContactInput()
	input.Email = ""

	_, err := svc.Create(input)

	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validation.Field != "email" {
		t.Fatalf("expected field email, got %q", validation.Field)
	}

	messages, listErr := svc.ListAllByRecency()
	if listErr != nil {
		t.Fatalf("list contact messages: %v", listErr)
	}
	if len(messages) != 0 {
		t.Fatalf("expected nothing persisted, got %d", len(messages))
	}
}
