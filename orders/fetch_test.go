package orders

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDownloadWritesFile(t *testing.T) {
	const body = "Order number,Head,Body,Legs,Address\n1,1,1,1,somewhere\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "orders.csv")
	if err := Download(srv.URL, path); err != nil {
		t.Fatalf("Download: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(got) != body {
		t.Errorf("downloaded content mismatch: got %q", got)
	}
}

func TestDownloadOverwritesExistingFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("fresh"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "orders.csv")
	if err := os.WriteFile(path, []byte("stale content from a previous run"), 0644); err != nil {
		t.Fatalf("seed stale file: %v", err)
	}

	if err := Download(srv.URL, path); err != nil {
		t.Fatalf("Download: %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "fresh" {
		t.Errorf("expected overwrite with %q, got %q", "fresh", got)
	}
}

func TestDownloadNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "orders.csv")
	if err := Download(srv.URL, path); err == nil {
		t.Error("expected error for 404 response, got nil")
	}
}

func TestDownloadCreatesParentDir(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("data"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "nested", "dir", "orders.csv")
	if err := Download(srv.URL, path); err != nil {
		t.Fatalf("Download into missing dir: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("downloaded file missing: %v", err)
	}
}
