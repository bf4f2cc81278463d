package pdfsink

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_ConvertHTMLToPDF(t *testing.T) {
	var gotPath string
	var gotPaperWidth, gotPaperHeight string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Fatalf("Failed to parse multipart form: %v", err)
		}
		gotPaperWidth = r.FormValue("paperWidth")
		gotPaperHeight = r.FormValue("paperHeight")

		file, _, err := r.FormFile("files")
		if err != nil {
			t.Fatalf("Expected files part: %v", err)
		}
		file.Close()

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	pdf, err := client.ConvertHTMLToPDF(context.Background(), []byte("<html><body>test</body></html>"), A4Portrait)
	if err != nil {
		t.Fatalf("Failed to convert HTML to PDF: %v", err)
	}
	if len(pdf) == 0 {
		t.Error("Expected non-empty PDF content")
	}

	if gotPath != "/forms/chromium/convert/html" {
		t.Errorf("Expected chromium html route, got %s", gotPath)
	}
	// 595pt и 842pt в дюймах
	if gotPaperWidth != "8.2639" {
		t.Errorf("Expected paperWidth 8.2639, got %s", gotPaperWidth)
	}
	if gotPaperHeight != "11.6944" {
		t.Errorf("Expected paperHeight 11.6944, got %s", gotPaperHeight)
	}
}

func TestClient_ConvertHTMLToPDF_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "conversion error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ConvertHTMLToPDF(context.Background(), []byte("<html></html>"), A4Portrait)
	if err == nil {
		t.Error("Expected error from failing server")
	}
}

func TestClient_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("Expected healthy renderer, got error: %v", err)
	}
}
