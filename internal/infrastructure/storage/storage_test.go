package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/cinemind/studio-api/internal/core/ports"
)

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"noir.pdf":             "noir.pdf",
		"../../etc/passwd":     "passwd",
		`C:\scripts\act 1.fdx`: "act_1.fdx",
		".hidden":              "hidden",
		"Léon.pdf":             "L_on.pdf",
		"":                     "",
	}
	for in, want := range cases {
		if got := sanitizeFileName(in); got != want {
			t.Errorf("sanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDiskStore_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore err: %v", err)
	}

	name, err := store.Save(context.Background(), ports.ScriptUpload{
		FileName: "noir.pdf",
		Content:  strings.NewReader("FADE IN:"),
	})
	if err != nil {
		t.Fatalf("Save err: %v", err)
	}
	if !strings.HasSuffix(name, "-noir.pdf") {
		t.Errorf("name = %q, want uuid-prefixed original name", name)
	}

	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(b) != "FADE IN:" {
		t.Errorf("stored content = %q", b)
	}

	other, err := store.Save(context.Background(), ports.ScriptUpload{FileName: "noir.pdf", Content: strings.NewReader("x")})
	if err != nil {
		t.Fatalf("second Save err: %v", err)
	}
	if other == name {
		t.Error("same name used for two uploads")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestDiskStore_SaveCleansUpOnError(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore err: %v", err)
	}

	if _, err := store.Save(context.Background(), ports.ScriptUpload{FileName: "a.pdf", Content: failingReader{}}); err == nil {
		t.Fatal("expected error")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("partial file left behind: %v", entries)
	}
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Store_Save(t *testing.T) {
	fake := &fakeS3{}
	store := newS3Store(fake, "scripts-bucket")
	store.now = func() time.Time { return time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC) }

	key, err := store.Save(context.Background(), ports.ScriptUpload{
		FileName:    "noir.pdf",
		ContentType: "application/pdf",
		Size:        8,
		Content:     strings.NewReader("FADE IN:"),
	})
	if err != nil {
		t.Fatalf("Save err: %v", err)
	}
	if !strings.HasPrefix(key, "scripts/2026/10/19/") || !strings.HasSuffix(key, "-noir.pdf") {
		t.Errorf("key = %q", key)
	}
	if *fake.input.Bucket != "scripts-bucket" || *fake.input.Key != key {
		t.Errorf("input = %+v", fake.input)
	}
	if *fake.input.ContentType != "application/pdf" || *fake.input.ContentLength != 8 {
		t.Errorf("content headers = %v / %v", *fake.input.ContentType, *fake.input.ContentLength)
	}
	if fake.body != "FADE IN:" {
		t.Errorf("body = %q", fake.body)
	}
}

func TestS3Store_SaveError(t *testing.T) {
	store := newS3Store(&fakeS3{err: errors.New("access denied")}, "b")
	if _, err := store.Save(context.Background(), ports.ScriptUpload{FileName: "a", Content: strings.NewReader("x")}); err == nil {
		t.Fatal("expected error")
	}
}
