package media

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadReturnsHostedURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		defer file.Close()
		if header.Filename != "photo.jpg" {
			t.Errorf("filename = %q", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "jpegbytes" {
			t.Errorf("content = %q", content)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"https://img.example/abc123.jpg"}`))
	}))
	defer server.Close()

	uploader := NewUploader(server.URL, "key")
	url, err := uploader.Upload("photo.jpg", strings.NewReader("jpegbytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "https://img.example/abc123.jpg" {
		t.Fatalf("url = %q", url)
	}
}

func TestUploadNestedDataURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"url":"https://img.example/nested.jpg"}}`))
	}))
	defer server.Close()

	uploader := NewUploader(server.URL, "")
	url, err := uploader.Upload("photo.jpg", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "https://img.example/nested.jpg" {
		t.Fatalf("url = %q", url)
	}
}

func TestUploadHostFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	uploader := NewUploader(server.URL, "")
	if _, err := uploader.Upload("photo.jpg", strings.NewReader("x")); err == nil {
		t.Fatal("expected error on HTTP 503")
	}
}

func TestUploadMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	uploader := NewUploader(server.URL, "")
	if _, err := uploader.Upload("photo.jpg", strings.NewReader("x")); err == nil {
		t.Fatal("expected error on malformed body")
	}
}
