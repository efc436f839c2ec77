package upload

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/dreadedbot/group_games_bot/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestPixeldrainUpload(t *testing.T) {
	var gotFilename string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/file" {
			t.Errorf("path = %q, want /api/file", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()
		gotFilename = header.Filename
		w.Write([]byte(`{"success": true, "id": "abc123"}`))
	}))
	defer srv.Close()

	p := NewPixeldrain(srv.Client(), srv.URL)
	url, err := p.Upload(context.Background(), "photo.jpg", []byte("data"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != srv.URL+"/u/abc123" {
		t.Errorf("url = %q", url)
	}
	if gotFilename != "photo.jpg" {
		t.Errorf("uploaded filename = %q", gotFilename)
	}
}

func TestPixeldrainRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success": false}`))
	}))
	defer srv.Close()

	p := NewPixeldrain(srv.Client(), srv.URL)
	if _, err := p.Upload(context.Background(), "photo.jpg", []byte("data")); err == nil {
		t.Error("Upload() should fail on a rejected upload")
	}
}

func TestCatboxUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.FormValue("reqtype"); got != "fileupload" {
			t.Errorf("reqtype = %q, want fileupload", got)
		}
		if _, _, err := r.FormFile("fileToUpload"); err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		w.Write([]byte("https://files.example.com/x.png\n"))
	}))
	defer srv.Close()

	c := NewCatbox(srv.Client(), srv.URL)
	url, err := c.Upload(context.Background(), "x.png", []byte("data"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != "https://files.example.com/x.png" {
		t.Errorf("url = %q", url)
	}
}

func TestCatboxRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Something went wrong"))
	}))
	defer srv.Close()

	c := NewCatbox(srv.Client(), srv.URL)
	if _, err := c.Upload(context.Background(), "x.png", []byte("data")); err == nil {
		t.Error("Upload() should fail on a non-URL response")
	}
}

func TestChainFallsBack(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"success": false}`))
	}))
	defer broken.Close()
	working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("https://files.example.com/fallback.png"))
	}))
	defer working.Close()

	chain := NewChain(
		NewPixeldrain(broken.Client(), broken.URL),
		NewCatbox(working.Client(), working.URL),
	)
	url, err := chain.Upload(context.Background(), "x.png", []byte("data"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != "https://files.example.com/fallback.png" {
		t.Errorf("url = %q, want the fallback provider's URL", url)
	}
}

func TestChainAllFail(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("no"))
	}))
	defer broken.Close()

	chain := NewChain(
		NewPixeldrain(broken.Client(), broken.URL),
		NewCatbox(broken.Client(), broken.URL),
	)
	if _, err := chain.Upload(context.Background(), "x.png", []byte("data")); err == nil {
		t.Error("Upload() should fail when every provider fails")
	}
}
