package source

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"iconforge/internal/compose"
)

func TestIsRemote(t *testing.T) {
	tests := map[string]bool{
		"https://example.com/logo.png": true,
		"http://localhost:8080/a.jpg":  true,
		"logo.png":                     false,
		"/abs/logo.png":                false,
		"file:///logo.png":             false,
		"C:\\art\\logo.png":            false,
	}
	for ref, want := range tests {
		if got := IsRemote(ref); got != want {
			t.Errorf("IsRemote(%q) = %v, want %v", ref, got, want)
		}
	}
}

func TestOpen_Remote(t *testing.T) {
	var body bytes.Buffer
	if err := png.Encode(&body, compose.NewSolid(30, 20, color.NRGBA{B: 0xff, A: 0xff})); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/logo.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(body.Bytes())
	}))
	defer srv.Close()

	img, cleanup, err := Open(context.Background(), srv.Client(), srv.URL+"/logo.png", nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if img.Width() != 30 || img.Height() != 20 || img.Format != "png" {
		t.Errorf("got %dx%d %s", img.Width(), img.Height(), img.Format)
	}
	if _, err := os.Stat(img.Path); err != nil {
		t.Errorf("downloaded file missing: %v", err)
	}
	cleanup()
	if _, err := os.Stat(img.Path); !os.IsNotExist(err) {
		t.Errorf("cleanup left %s behind", img.Path)
	}

	_, cleanup, err = Open(context.Background(), srv.Client(), srv.URL+"/missing.png", nil)
	cleanup()
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("expected ErrUnreadable for 404, got %v", err)
	}
}
