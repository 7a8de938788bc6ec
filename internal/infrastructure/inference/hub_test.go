package inference

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tinlera/tinlera-go/internal/pkg/logger"
)

func TestHubSearchModels(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"search":       q.Get("search"),
			"sort":         q.Get("sort"),
			"direction":    q.Get("direction"),
			"limit":        q.Get("limit"),
			"pipeline_tag": q.Get("pipeline_tag"),
		}
		_, _ = w.Write([]byte(`[{"id":"org/a","downloads":10,"likes":2,"pipeline_tag":"text-generation"},{"modelId":"org/b"}]`))
	}))
	defer srv.Close()

	hub := NewHubClient(srv.URL, "hf_x", srv.Client(), logger.NewNop())
	models, err := hub.SearchModels(context.Background(), "llama", "text-generation")
	if err != nil {
		t.Fatalf("SearchModels failed: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("len = %d, want 2", len(models))
	}
	if models[0].Name() != "org/a" || models[0].Downloads != 10 || models[1].Name() != "org/b" {
		t.Errorf("unexpected models: %+v", models)
	}
	want := map[string]string{
		"search": "llama", "sort": "downloads", "direction": "-1", "limit": "50", "pipeline_tag": "text-generation",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestHubWithoutTokenOrOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	ctx := context.Background()

	noToken := NewHubClient(srv.URL, "", srv.Client(), logger.NewNop())
	if models, _ := noToken.SearchModels(ctx, "x", ""); len(models) != 0 {
		t.Errorf("expected no models without token, got %d", len(models))
	}
	if info, _ := noToken.GetModelInfo(ctx, "x"); info != nil {
		t.Errorf("expected nil info without token")
	}

	failing := NewHubClient(srv.URL, "hf_x", srv.Client(), logger.NewNop())
	if models, err := failing.SearchModels(ctx, "x", ""); err != nil || len(models) != 0 {
		t.Errorf("expected empty result on error, got %v %v", models, err)
	}
	if info, err := failing.GetModelInfo(ctx, "x"); err != nil || info != nil {
		t.Errorf("expected nil info on error, got %v %v", info, err)
	}
}

func TestHubGetModelInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/org/model" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"id":"org/model","author":"org","tags":["a","b"],"gated":"manual"}`))
	}))
	defer srv.Close()

	hub := NewHubClient(srv.URL, "hf_x", srv.Client(), logger.NewNop())
	info, err := hub.GetModelInfo(context.Background(), "org/model")
	if err != nil || info == nil {
		t.Fatalf("GetModelInfo = %v, %v", info, err)
	}
	if info.Author != "org" || len(info.Tags) != 2 || info.Gated != "manual" {
		t.Errorf("unexpected info: %+v", info)
	}
}
