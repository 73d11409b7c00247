package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foxxcyber/notes-bridge/internal/models"
)

func TestOCRBridgeClientExtract(t *testing.T) {
	data := []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xff}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile() error = %v", err)
			return
		}
		defer file.Close()
		got, _ := io.ReadAll(file)
		if string(got) != string(data) {
			t.Errorf("raw bytes were altered: %v", got)
		}
		if header.Filename != "file.pdf" {
			t.Errorf("unexpected filename: %s", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("unexpected part content type: %s", ct)
		}
		w.Write([]byte(`{"text":"messy  text"}`))
	}))
	defer server.Close()

	client := NewOCRBridgeClient(server.URL, 5*time.Second)
	text, err := client.Extract(context.Background(), &models.Upload{Data: data})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "messy  text" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestOCRBridgeClientKeepsDeclaredMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile() error = %v", err)
			return
		}
		if header.Filename != `my "notes".png` {
			t.Errorf("unexpected filename: %s", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("unexpected part content type: %s", ct)
		}
		w.Write([]byte(`{"text":"ok"}`))
	}))
	defer server.Close()

	client := NewOCRBridgeClient(server.URL, 5*time.Second)
	upload := &models.Upload{Filename: `my "notes".png`, ContentType: "image/png", Data: []byte("png")}
	if _, err := client.Extract(context.Background(), upload); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
}

func TestOCRBridgeClientMissingTextField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pages":3}`))
	}))
	defer server.Close()

	client := NewOCRBridgeClient(server.URL, 5*time.Second)
	text, err := client.Extract(context.Background(), &models.Upload{Data: []byte("x")})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
}

func TestOCRBridgeClientErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewOCRBridgeClient(server.URL, 5*time.Second)
	if _, err := client.Extract(context.Background(), &models.Upload{Data: []byte("x")}); !errors.Is(err, ErrUpstreamStatus) {
		t.Fatalf("expected ErrUpstreamStatus, got %v", err)
	}

	client = NewOCRBridgeClient("", 5*time.Second)
	if _, err := client.Extract(context.Background(), &models.Upload{Data: []byte("x")}); !errors.Is(err, ErrUpstreamNotConfigured) {
		t.Fatalf("expected ErrUpstreamNotConfigured, got %v", err)
	}
}

func TestOCRBridgeClientTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewOCRBridgeClient(server.URL, 50*time.Millisecond)
	if _, err := client.Extract(context.Background(), &models.Upload{Data: []byte("x")}); err == nil {
		t.Fatalf("expected timeout error")
	}
}
