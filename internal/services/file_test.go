package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/studentcollab/backend/internal/config"
	"github.com/studentcollab/backend/pkg/response"
)

func multipartHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write(content)
	w.Close()

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["image"][0]
}

func TestExtensionAllowed(t *testing.T) {
	tests := []struct {
		name      string
		ext       string
		allowList string
		want      bool
	}{
		{"enc allowed", ".enc", ".enc", true},
		{"case insensitive", ".ENC", ".enc", true},
		{"png against image list", ".png", imageExtensions, true},
		{"jpeg against image list", ".jpeg", imageExtensions, true},
		{"exe rejected", ".exe", imageExtensions, false},
		{"enc not an image", ".enc", imageExtensions, false},
		{"empty extension", "", ".enc", false},
		{"list with spaces", ".jpg", ".png, .jpg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extensionAllowed(tt.ext, tt.allowList); got != tt.want {
				t.Errorf("extensionAllowed(%q, %q) = %v, expected %v", tt.ext, tt.allowList, got, tt.want)
			}
		})
	}
}

func TestStoreImage(t *testing.T) {
	config.GlobalConfig = config.DefaultConfig()
	config.GlobalConfig.Upload.Dir = t.TempDir()

	header := multipartHeader(t, "me.png", []byte("fake png bytes"))

	path, err := StoreImage(header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Ext(path) != ".png" {
		t.Errorf("stored path should keep the image extension, got %q", path)
	}
	if filepath.Dir(path) != config.GlobalConfig.Upload.Dir {
		t.Errorf("blob should land directly in the upload dir, got %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("stored blob unreadable: %v", err)
	}
	if string(data) != "fake png bytes" {
		t.Error("stored blob content does not match the upload")
	}
}

func TestStoreImage_RejectsNonImage(t *testing.T) {
	config.GlobalConfig = config.DefaultConfig()
	config.GlobalConfig.Upload.Dir = t.TempDir()

	for _, filename := range []string{"payload.exe", "notes.enc", "noextension"} {
		_, err := StoreImage(multipartHeader(t, filename, []byte("x")))
		appErr, ok := err.(*response.AppError)
		if !ok {
			t.Fatalf("%s: expected AppError, got %v", filename, err)
		}
		if appErr.HTTPStatus != 400 {
			t.Errorf("%s: status = %d, expected 400", filename, appErr.HTTPStatus)
		}
	}
}

func TestStoreBlob_IgnoresClientPath(t *testing.T) {
	config.GlobalConfig = config.DefaultConfig()
	config.GlobalConfig.Upload.Dir = t.TempDir()

	header := multipartHeader(t, "../../etc/avatar.png", []byte("x"))

	path, err := storeBlob(header, imageExtensions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Dir(path) != config.GlobalConfig.Upload.Dir {
		t.Errorf("client-supplied directories must not escape the upload dir, got %q", path)
	}
}

func TestRemoveStoredBlob(t *testing.T) {
	config.GlobalConfig = config.DefaultConfig()
	config.GlobalConfig.Upload.Dir = t.TempDir()

	inside := filepath.Join(config.GlobalConfig.Upload.Dir, "blob.png")
	if err := os.WriteFile(inside, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	removeStoredBlob(inside)
	if _, err := os.Stat(inside); !os.IsNotExist(err) {
		t.Error("blob inside the upload dir should be removed")
	}

	outside := filepath.Join(t.TempDir(), "keep.png")
	if err := os.WriteFile(outside, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	removeStoredBlob(outside)
	if _, err := os.Stat(outside); err != nil {
		t.Error("paths outside the upload dir must be left alone")
	}

	removeStoredBlob("") // no-op
}
