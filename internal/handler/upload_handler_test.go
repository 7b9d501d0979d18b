package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func multipartUpload(t *testing.T, fieldName, fileName, contentType string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadImageSavesSanitizedFile(t *testing.T) {
	api, gdb := setupTestAPI(t)

	cfg := testConfig()
	cfg.UploadDir = t.TempDir()
	api = NewAPI(cfg, gdb, nil)

	req := multipartUpload(t, "file", "../我的 照片.png", "image/png", []byte("fake png"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	api.UploadImage(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	entries, err := os.ReadDir(cfg.UploadDir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one saved file, got %d", len(entries))
	}

	name := entries[0].Name()
	if strings.Contains(name, "..") || strings.Contains(name, " ") || strings.Contains(name, string(filepath.Separator)) {
		t.Fatalf("filename not sanitized: %q", name)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Fatalf("expected extension preserved, got %q", name)
	}
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	api, gdb := setupTestAPI(t)

	cfg := testConfig()
	cfg.UploadDir = t.TempDir()
	api = NewAPI(cfg, gdb, nil)

	req := multipartUpload(t, "file", "notes.txt", "text/plain", []byte("plain text"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	api.UploadImage(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	entries, err := os.ReadDir(cfg.UploadDir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected nothing saved, got %d entries", len(entries))
	}
}

func TestUploadImageMissingFile(t *testing.T) {
	api, _ := setupTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/upload", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	api.UploadImage(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "photo.png", want: "photo.png"},
		{name: "path traversal", input: "../../etc/passwd", want: "passwd"},
		{name: "spaces and unicode", input: "我的 照片.png", want: "_____.png"},
		{name: "empty", input: "", want: "file"},
		{name: "dot only", input: ".", want: "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeFilename(tt.input)
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
