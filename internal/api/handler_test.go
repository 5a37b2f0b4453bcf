package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mmcdole/tiffin/internal/config"
	"github.com/mmcdole/tiffin/internal/connectivity"
	"github.com/mmcdole/tiffin/internal/controller"
	"github.com/mmcdole/tiffin/internal/domain"
	"github.com/mmcdole/tiffin/internal/log"
)

type stubSource struct {
	restaurants domain.Collection
	err         error
}

func (s stubSource) FetchListing(context.Context) (domain.Collection, error) {
	return s.restaurants, s.err
}

type listResponse struct {
	Meta struct {
		State    string `json:"state"`
		Count    int    `json:"count"`
		Total    int    `json:"total"`
		Search   string `json:"search"`
		TopRated bool   `json:"top_rated"`
	} `json:"meta"`
	Data []RestaurantJSON `json:"data"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func listing() domain.Collection {
	return domain.Collection{
		{ID: "1", Name: "Spice Hut", AvgRating: domain.Float(4.8), IsVeg: true, ImageID: "img1"},
		{ID: "2", Name: "Burger Barn", AvgRating: domain.Float(4.2)},
		{ID: "3", Name: "Dosa Corner", AvgRating: domain.Float(4.6), IsVeg: true},
	}
}

func newTestEngine(t *testing.T, src domain.ListingSource, online bool, load bool) *gin.Engine {
	t.Helper()
	ctrl := controller.New(src, connectivity.Static(online), controller.Options{Logger: log.NullLogger()})
	h := NewHandler(context.Background(), ctrl, "https://cdn/", log.NullLogger())
	if load {
		_ = h.Load()
	}
	return NewEngine(h, log.NullLogger())
}

func do(t *testing.T, r http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) listResponse {
	t.Helper()
	var resp listResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v\n%s", err, w.Body.String())
	}
	return resp
}

func TestList_Populated(t *testing.T) {
	r := newTestEngine(t, stubSource{restaurants: listing()}, true, true)

	w := do(t, r, http.MethodGet, "/api/restaurants")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	resp := decodeList(t, w)
	if resp.Meta.Count != 3 || resp.Meta.Total != 3 {
		t.Errorf("Expected 3 of 3, got %d of %d", resp.Meta.Count, resp.Meta.Total)
	}
	first := resp.Data[0]
	if first.Label != "Veg" || first.NavPath != "/restaurants/1" || first.ImageURL != "https://cdn/img1" {
		t.Errorf("Unexpected first record: %+v", first)
	}
	if resp.Data[1].Label != "" {
		t.Errorf("Expected no label for non-veg record, got %q", resp.Data[1].Label)
	}
	if resp.Data[1].Cuisines == nil {
		t.Error("Expected empty cuisines list, got null")
	}
}

func TestList_SearchThenTopRatedDoNotCompose(t *testing.T) {
	r := newTestEngine(t, stubSource{restaurants: listing()}, true, true)

	resp := decodeList(t, do(t, r, http.MethodGet, "/api/restaurants?search=BURGER"))
	if resp.Meta.Count != 1 || resp.Data[0].ID != "2" {
		t.Fatalf("Expected only Burger Barn, got %+v", resp.Data)
	}
	if resp.Meta.Search != "BURGER" {
		t.Errorf("Expected search text recorded, got %q", resp.Meta.Search)
	}

	resp = decodeList(t, do(t, r, http.MethodPost, "/api/restaurants/top-rated"))
	if resp.Meta.Count != 2 || !resp.Meta.TopRated {
		t.Errorf("Expected 2 top rated from the full listing, got %d", resp.Meta.Count)
	}

	// No search parameter leaves the current filter in place
	resp = decodeList(t, do(t, r, http.MethodGet, "/api/restaurants"))
	if resp.Meta.Count != 2 {
		t.Errorf("Expected filter to persist, got %d", resp.Meta.Count)
	}

	resp = decodeList(t, do(t, r, http.MethodPost, "/api/restaurants/show-all"))
	if resp.Meta.Count != 3 || resp.Meta.Search != "" {
		t.Errorf("Expected full listing after show all, got %d (search %q)", resp.Meta.Count, resp.Meta.Search)
	}
}

func TestList_EmptySearchShowsAll(t *testing.T) {
	r := newTestEngine(t, stubSource{restaurants: listing()}, true, true)
	decodeList(t, do(t, r, http.MethodGet, "/api/restaurants?search=zzz"))

	resp := decodeList(t, do(t, r, http.MethodGet, "/api/restaurants?search="))
	if resp.Meta.Count != 3 {
		t.Errorf("Expected empty search to match all, got %d", resp.Meta.Count)
	}
}

func TestList_States(t *testing.T) {
	tests := []struct {
		name   string
		src    stubSource
		online bool
		load   bool
		code   int
		state  string
	}{
		{"loading", stubSource{restaurants: listing()}, true, false, http.StatusAccepted, "loading"},
		{"failed", stubSource{err: errors.New("boom")}, true, true, http.StatusBadGateway, "failed"},
		{"offline", stubSource{restaurants: listing()}, false, true, http.StatusServiceUnavailable, "offline"},
		{"empty fetch stays loading", stubSource{restaurants: domain.Collection{}}, true, true, http.StatusAccepted, "loading"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestEngine(t, tt.src, tt.online, tt.load)

			w := do(t, r, http.MethodGet, "/api/restaurants")

			if w.Code != tt.code {
				t.Errorf("Expected %d, got %d", tt.code, w.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("Failed to decode: %v", err)
			}
			if body["state"] != tt.state {
				t.Errorf("Expected state %q, got %v", tt.state, body["state"])
			}
		})
	}
}

func TestGet(t *testing.T) {
	r := newTestEngine(t, stubSource{restaurants: listing()}, true, true)

	w := do(t, r, http.MethodGet, "/api/restaurants/3")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var body struct {
		Data RestaurantJSON `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if body.Data.Name != "Dosa Corner" {
		t.Errorf("Expected Dosa Corner, got %q", body.Data.Name)
	}

	if w := do(t, r, http.MethodGet, "/api/restaurants/99"); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestState(t *testing.T) {
	r := newTestEngine(t, stubSource{restaurants: listing()}, true, true)
	do(t, r, http.MethodPost, "/api/restaurants/top-rated")

	w := do(t, r, http.MethodGet, "/api/state")

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if body["state"] != "populated" || body["shown"] != float64(2) || body["top_rated"] != true {
		t.Errorf("Unexpected state body: %v", body)
	}
}

func TestNewServer_CORS(t *testing.T) {
	ctrl := controller.New(stubSource{restaurants: listing()}, connectivity.Static(true), controller.Options{Logger: log.NullLogger()})
	h := NewHandler(context.Background(), ctrl, "", log.NullLogger())
	srv := NewServer(config.ServerConfig{Addr: ":0", AllowedOrigins: []string{"http://localhost:5173"}}, h, log.NullLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Expected allowed origin header, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no CORS header for unknown origin, got %q", got)
	}
}
