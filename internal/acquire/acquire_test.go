package acquire_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"reelpress/internal/acquire"
	"reelpress/internal/clip"
	"reelpress/internal/logging"
)

func newDownloader() *acquire.Downloader {
	return acquire.NewDownloader(5*time.Second, "reelpress/1.0", logging.NewNop())
}

func TestDownloadSendsProtocolHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte("video-bytes"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "clip.mp4")
	extra := map[string]string{"X-Video-Task-ID": "abc", "X-Video-Source": "override"}
	if err := newDownloader().Download(context.Background(), srv.URL, dest, extra); err != nil {
		t.Fatalf("download: %v", err)
	}

	if got.Get("User-Agent") != "reelpress/1.0" {
		t.Fatalf("unexpected user agent %q", got.Get("User-Agent"))
	}
	if got.Get("X-Experience-API-Version") != "1.0.3" {
		t.Fatalf("missing xAPI version header: %v", got)
	}
	if got.Get("X-Video-Processing") != "automated" {
		t.Fatalf("missing processing header: %v", got)
	}
	if got.Get("X-Video-Task-ID") != "abc" {
		t.Fatalf("missing provenance header: %v", got)
	}
	// Extra headers override the fixed set on collision.
	if got.Get("X-Video-Source") != "override" {
		t.Fatalf("extra header should win, got %q", got.Get("X-Video-Source"))
	}

	data, err := os.ReadFile(dest)
	if err != nil || string(data) != "video-bytes" {
		t.Fatalf("unexpected file contents %q, err %v", data, err)
	}
}

func TestDownloadNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "clip.mp4")
	if err := newDownloader().Download(context.Background(), srv.URL, dest, nil); err == nil {
		t.Fatal("expected error for 404 response")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatal("no file should remain after failed download")
	}
}

func TestAcquireAllSkipsFailuresAndWarns(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path == "/bad.mp4" {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	descriptors := decodeDescriptors(t,
		`{"url":"`+srv.URL+`/good.mp4"}`,
		`{"url":"`+srv.URL+`/bad.mp4"}`,
		`"only a text prompt"`,
	)

	result, err := newDownloader().AcquireAll(context.Background(), descriptors, t.TempDir(), "task1")
	if err != nil {
		t.Fatalf("acquire all: %v", err)
	}
	if len(result.Files) != 1 {
		t.Fatalf("expected one file, got %v", result.Files)
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("expected warnings for the failed and unresolvable clips, got %v", result.Warnings)
	}
	if hits != 2 {
		t.Fatalf("unresolvable descriptor must not hit the server, saw %d requests", hits)
	}
}

func TestAcquireAllNoClips(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	descriptors := decodeDescriptors(t, `{"url":"`+srv.URL+`/a.mp4"}`, `{"url":"`+srv.URL+`/b.mp4"}`)

	result, err := newDownloader().AcquireAll(context.Background(), descriptors, t.TempDir(), "task2")
	if !errors.Is(err, acquire.ErrNoClips) {
		t.Fatalf("expected ErrNoClips, got %v", err)
	}
	if len(result.Files) != 0 {
		t.Fatalf("expected no files, got %v", result.Files)
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("expected a warning per clip, got %v", result.Warnings)
	}
}

func decodeDescriptors(t *testing.T, docs ...string) []clip.Descriptor {
	t.Helper()
	out := make([]clip.Descriptor, 0, len(docs))
	for _, doc := range docs {
		d, err := clip.Decode([]byte(doc))
		if err != nil {
			t.Fatalf("decode %q: %v", doc, err)
		}
		out = append(out, d)
	}
	return out
}
