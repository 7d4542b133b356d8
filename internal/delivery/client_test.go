package delivery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/five82/mosaic/internal/imagedata"
)

func TestClient_FetchSetsHeaders(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("RIFFdata"))
	}))
	defer srv.Close()

	data, err := NewClient().Fetch(context.Background(), srv.URL+"/seed/random-test-1/512/231.webp")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "RIFFdata" {
		t.Fatalf("data = %q", data)
	}
	if gotUA != defaultUserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotUA, defaultUserAgent)
	}
}

func TestClient_FetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient().Fetch(context.Background(), srv.URL)
	if err == nil || !strings.Contains(err.Error(), "status 404") {
		t.Fatalf("Fetch error = %v, want status 404", err)
	}
}

func TestClient_FetchHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewClient().Fetch(ctx, srv.URL); !errors.Is(err, context.Canceled) {
		t.Fatalf("Fetch error = %v, want context.Canceled", err)
	}
}

func TestChafaLoader_MissingBinary(t *testing.T) {
	t.Setenv("PATH", "")
	item, _ := imagedata.NewGenerator("test").Generate(1)
	_, err := NewChafaLoader().Load(context.Background(), item, Size{Cols: 20, Rows: 6})
	if !errors.Is(err, ErrRendererMissing) {
		t.Fatalf("Load error = %v, want ErrRendererMissing", err)
	}
}

func TestChafaLoader_EmptyArea(t *testing.T) {
	item, _ := imagedata.NewGenerator("test").Generate(1)
	if _, err := NewChafaLoader().Load(context.Background(), item, Size{}); err == nil {
		t.Fatal("Load with empty area returned nil error")
	}
}
