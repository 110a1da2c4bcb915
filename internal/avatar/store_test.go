// AngelaMos | 2026
// store_test.go

package avatar

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/carterperez-dev/traffic-registry/internal/config"
	"github.com/carterperez-dev/traffic-registry/internal/core"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	s := NewStore(config.UploadsConfig{Dir: dir, PublicPrefix: "/uploads/"})
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s, dir
}

func TestStore_SavesPNG(t *testing.T) {
	s, dir := newTestStore(t)

	url, err := s.SaveDataURL(7, "data:image/png;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("SaveDataURL: %v", err)
	}

	if !strings.HasPrefix(url, "/uploads/avatar_7_1700000000000_") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("unexpected contents %q", data)
	}
}

func TestStore_JPEGUsesJPGExtension(t *testing.T) {
	s, _ := newTestStore(t)

	url, err := s.SaveDataURL(1, "data:image/jpeg;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("SaveDataURL: %v", err)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("expected .jpg, got %q", url)
	}
}

func TestStore_PassThrough(t *testing.T) {
	s, dir := newTestStore(t)

	for _, v := range []string{"/uploads/existing.png", "https://cdn.example.com/a.png"} {
		got, err := s.SaveDataURL(1, v)
		if err != nil || got != v {
			t.Fatalf("expected pass-through for %q, got %q, %v", v, got, err)
		}
	}

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("pass-through must not touch the uploads dir")
	}
}

func TestStore_RejectsBadImages(t *testing.T) {
	s, _ := newTestStore(t)

	for _, v := range []string{
		"data:image/gif;base64,aGVsbG8=",
		"data:image/png;base64,!!!not-base64!!!",
	} {
		_, err := s.SaveDataURL(1, v)
		if !errors.Is(err, core.ErrInvalidInput) {
			t.Fatalf("%q: expected ErrInvalidInput, got %v", v, err)
		}
		if core.FieldOf(err) != "avatar" {
			t.Fatalf("%q: expected avatar field hint", v)
		}
	}
}
