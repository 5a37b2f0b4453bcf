package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/tiffin/internal/config"
	"github.com/mmcdole/tiffin/internal/domain"
	"github.com/mmcdole/tiffin/internal/log"
)

func TestFetchProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/akshaymarch7" {
			t.Errorf("Expected path /users/akshaymarch7, got %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"login":"akshaymarch7","name":"Akshay Saini","bio":"Builds things","public_repos":42,"followers":1000,"following":3}`)
	}))
	defer srv.Close()

	client := NewClient(config.ProfileConfig{BaseURL: srv.URL + "/"}, log.NullLogger())
	p, err := client.FetchProfile(context.Background(), "akshaymarch7")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.DisplayName() != "Akshay Saini" {
		t.Errorf("Expected name 'Akshay Saini', got %q", p.DisplayName())
	}
	if p.PublicRepos != 42 || p.Followers != 1000 || p.Following != 3 {
		t.Errorf("Unexpected counts: %+v", p)
	}
}

func TestFetchProfile_MissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"login":"ghost"}`)
	}))
	defer srv.Close()

	p, err := NewClient(config.ProfileConfig{BaseURL: srv.URL}, nil).FetchProfile(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.DisplayName() != "ghost" {
		t.Errorf("Expected login fallback 'ghost', got %q", p.DisplayName())
	}
	if p.Bio != "" || p.Followers != 0 {
		t.Errorf("Expected zero values, got %+v", p)
	}
}

func TestFetchProfile_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(config.ProfileConfig{BaseURL: srv.URL}, log.NullLogger())

	if _, err := client.FetchProfile(context.Background(), "nobody"); !errors.Is(err, domain.ErrProfileFailed) {
		t.Errorf("Expected ErrProfileFailed for 404, got %v", err)
	}
	if _, err := client.FetchProfile(context.Background(), ""); !errors.Is(err, domain.ErrProfileFailed) {
		t.Errorf("Expected ErrProfileFailed for empty login, got %v", err)
	}
}
