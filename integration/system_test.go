//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:5000")

type review struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

func TestSystem_E2E_Reviews(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	username := fmt.Sprintf("user_%d_%d", time.Now().Unix(), rand.Intn(100000))
	pass := "password123!"

	doJSON(t, http.MethodPost, baseURL+"/public/register", map[string]any{
		"username": username,
		"password": pass,
	}, nil, 201)
	doJSON(t, http.MethodPost, baseURL+"/public/register", map[string]any{
		"username": username,
		"password": pass,
	}, nil, 409)
	doJSON(t, http.MethodPost, baseURL+"/public/login", map[string]any{
		"username": username,
		"password": pass,
	}, nil, 200)

	var books []map[string]any
	doJSON(t, http.MethodGet, baseURL+"/public/", nil, &books, 200)
	if len(books) == 0 {
		t.Fatalf("expected non-empty catalog")
	}

	isbn, _ := books[0]["isbn"].(string)
	if isbn == "" {
		t.Fatalf("isbn missing in response: %#v", books[0])
	}

	var before []review
	doJSON(t, http.MethodGet, baseURL+"/public/review/"+isbn, nil, &before, 200)

	text := "e2e review " + username
	doJSON(t, http.MethodPost, baseURL+"/public/review/"+isbn, map[string]any{
		"username": username,
		"text":     text,
	}, nil, 201)

	var after []review
	doJSON(t, http.MethodGet, baseURL+"/public/review/"+isbn, nil, &after, 200)
	if len(after) != len(before)+1 || after[len(after)-1].Text != text {
		t.Fatalf("review not appended: before=%d after=%#v", len(before), after)
	}

	if os.Getenv("E2E_RESTART") == "1" {
		restartContainer(t, ctx, getenv("E2E_SERVICE", "bookstore"))
		waitReady(t, ctx, baseURL+"/readyz")

		var reseeded []review
		doJSON(t, http.MethodGet, baseURL+"/public/review/"+isbn, nil, &reseeded, 200)
		for _, rv := range reseeded {
			if rv.Text == text {
				t.Fatalf("review survived restart: %#v", reseeded)
			}
		}
		doJSON(t, http.MethodPost, baseURL+"/public/login", map[string]any{
			"username": username,
			"password": pass,
		}, nil, 401)
		return
	}

	doJSON(t, http.MethodDelete, fmt.Sprintf("%s/public/review/%s/%d", baseURL, isbn, len(after)-1), nil, nil, 200)
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, method, url string, body any, out any, want int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
