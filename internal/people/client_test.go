package people

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseEndpoint_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseEndpoint("")
	if err != nil {
		t.Fatalf("parseEndpoint returned error: %v", err)
	}
	if u.String() != DefaultEndpoint {
		t.Fatalf("endpoint = %q, want %q", u.String(), DefaultEndpoint)
	}

	u, err = parseEndpoint("example.com/api/users#frag")
	if err != nil {
		t.Fatalf("parseEndpoint returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "example.com" || u.Path != "/api/users" || u.Fragment != "" {
		t.Fatalf("endpoint not normalized: %q", u.String())
	}
}

func TestParseEndpoint_MissingHostFails(t *testing.T) {
	if _, err := parseEndpoint("http:///users"); err == nil {
		t.Fatalf("parseEndpoint returned nil error, want missing host error")
	}
}

func TestClient_FetchUsersDecodesPayload(t *testing.T) {
	t.Parallel()

	var gotUserAgent, gotAccept, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "users": [
    {"id": 1, "firstName": "Emily", "lastName": "Johnson", "birthDate": "1996-5-30",
     "email": "ignored@example.com", "address": {"city": "Phoenix", "state": "Mississippi"}},
    {"id": 2, "firstName": "Michael", "lastName": "Williams", "birthDate": "1969-4-16",
     "address": {"city": "Houston"}}
  ],
  "total": 208, "skip": 0, "limit": 2
}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/users", Options{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	users, err := c.FetchUsers(ctx)
	if err != nil {
		t.Fatalf("FetchUsers returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("FetchUsers len = %d, want 2", len(users))
	}
	if users[0].ID != 1 || users[0].FirstName != "Emily" || users[0].Address.City != "Phoenix" {
		t.Fatalf("users[0] = %#v, want Emily from Phoenix", users[0])
	}
	if users[1].BirthDate != "1969-4-16" {
		t.Fatalf("users[1].BirthDate = %q, want 1969-4-16", users[1].BirthDate)
	}
	if gotPath != "/users" {
		t.Fatalf("path = %q, want /users", gotPath)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
	if !strings.HasPrefix(gotUserAgent, "roster/") {
		t.Fatalf("User-Agent = %q, want roster/*", gotUserAgent)
	}
}

func TestClient_LimitIsEncoded(t *testing.T) {
	t.Parallel()

	var gotLimit, gotSelect string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		gotSelect = r.URL.Query().Get("select")
		_, _ = w.Write([]byte(`{"users": []}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/users?select=id", Options{Limit: 250})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	users, err := c.FetchUsers(context.Background())
	if err != nil {
		t.Fatalf("FetchUsers returned error: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("FetchUsers len = %d, want 0", len(users))
	}
	if gotLimit != "250" {
		t.Fatalf("limit = %q, want 250", gotLimit)
	}
	if gotSelect != "id" {
		t.Fatalf("select = %q, want existing query kept", gotSelect)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/broken":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/down":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	broken, err := NewClient(server.URL+"/broken", Options{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = broken.FetchUsers(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchUsers error = %v, want decode response error", err)
	}

	down, err := NewClient(server.URL+"/down", Options{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = down.FetchUsers(context.Background())
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchUsers error = %v, want status 500 error", err)
	}
}

func TestClient_NilClient(t *testing.T) {
	var c *Client
	if _, err := c.FetchUsers(context.Background()); !errors.Is(err, ErrNilClient) {
		t.Fatalf("FetchUsers on nil = %v, want ErrNilClient", err)
	}
	if c.Endpoint() != "" {
		t.Fatalf("Endpoint on nil = %q, want empty", c.Endpoint())
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := NewClient(url, Options{Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchUsers(context.Background())
	if err == nil || !strings.Contains(err.Error(), "execute request") {
		t.Fatalf("FetchUsers error = %v, want execute request error", err)
	}
}
