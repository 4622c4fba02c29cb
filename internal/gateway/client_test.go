package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New(srv.URL, "test-key", "test-model")
	return c
}

func okBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(b)
}

func TestGenerate_Success(t *testing.T) {
	var gotBody chatRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("missing bearer auth, got %q", auth)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(okBody("a fresh gem")))
	})

	tmpl, ok := Lookup("gem")
	if !ok {
		t.Fatal("gem template missing")
	}
	got, err := c.Generate(context.Background(), tmpl, Params{Theme: "grace"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "a fresh gem" {
		t.Fatalf("got %q", got)
	}
	if gotBody.Model != "test-model" {
		t.Errorf("model = %q", gotBody.Model)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" || gotBody.Messages[1].Role != "user" {
		t.Errorf("unexpected messages: %+v", gotBody.Messages)
	}
	if !strings.Contains(gotBody.Messages[1].Content, `"grace"`) {
		t.Errorf("theme not interpolated: %q", gotBody.Messages[1].Content)
	}
	if gotBody.ResponseFormat == nil || gotBody.ResponseFormat.Type != "json_object" {
		t.Errorf("json mode template must request json_object, got %+v", gotBody.ResponseFormat)
	}
}

func TestGenerate_PlainTemplateOmitsResponseFormat(t *testing.T) {
	var gotBody chatRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(okBody("prose")))
	})
	tmpl, _ := Lookup("prophecy")
	if _, err := c.Generate(context.Background(), tmpl, Params{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if gotBody.ResponseFormat != nil {
		t.Fatalf("plain template must not request a response format")
	}
}

func TestGenerate_ErrorClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"429 maps to upstream rate limit", http.StatusTooManyRequests, `{}`, ErrUpstreamRateLimited},
		{"402 maps to upstream quota", http.StatusPaymentRequired, `{}`, ErrUpstreamQuota},
		{"500 is transient", http.StatusInternalServerError, `{}`, ErrTransient},
		{"503 is transient", http.StatusServiceUnavailable, `{}`, ErrTransient},
		{"400 is transient", http.StatusBadRequest, `{}`, ErrTransient},
		{"2xx without choices is empty", http.StatusOK, `{"choices":[]}`, ErrEmptyResponse},
		{"2xx with blank content is empty", http.StatusOK, okBody("   "), ErrEmptyResponse},
		{"2xx with garbage body is transient", http.StatusOK, `{{{`, ErrTransient},
	}
	tmpl, _ := Lookup("gem")
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := c.Generate(context.Background(), tmpl, Params{})
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestGenerate_NetworkFailureIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on
	c := New(srv.URL, "", "m")
	tmpl, _ := Lookup("gem")
	if _, err := c.Generate(context.Background(), tmpl, Params{}); !errors.Is(err, ErrTransient) {
		t.Fatalf("got %v, want ErrTransient", err)
	}
}

func TestGenerate_TimeoutIsTransient(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(okBody("late")))
	})
	c.HTTPClient = &http.Client{Timeout: 20 * time.Millisecond}
	tmpl, _ := Lookup("gem")
	if _, err := c.Generate(context.Background(), tmpl, Params{}); !errors.Is(err, ErrTransient) {
		t.Fatalf("got %v, want ErrTransient", err)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"gem", "devotional", "prophecy", " GEM "} {
		if _, ok := Lookup(name); !ok {
			t.Errorf("Lookup(%q) = false", name)
		}
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup of unknown template must fail")
	}
	if len(TemplateNames()) != 3 {
		t.Errorf("expected 3 templates, got %v", TemplateNames())
	}
}
