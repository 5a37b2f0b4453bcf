// Package api serves the restaurant directory over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/mmcdole/tiffin/internal/card"
	"github.com/mmcdole/tiffin/internal/controller"
	"github.com/mmcdole/tiffin/internal/domain"
)

// Handler exposes a controller over HTTP. All controller access is
// serialized through mu; the network call itself runs unlocked.
type Handler struct {
	mu           sync.Mutex
	ctrl         *controller.Controller
	ctx          context.Context
	imageBaseURL string
	logger       *slog.Logger
}

// NewHandler wraps ctrl. ctx bounds fetches started by the handler.
func NewHandler(ctx context.Context, ctrl *controller.Controller, imageBaseURL string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{ctrl: ctrl, ctx: ctx, imageBaseURL: imageBaseURL, logger: logger}
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/state", h.State)
		api.GET("/restaurants", h.List)
		api.GET("/restaurants/:id", h.Get)
		api.POST("/restaurants/top-rated", h.TopRated)
		api.POST("/restaurants/show-all", h.ShowAll)
	}
}

// Load runs one listing fetch and applies the result
func (h *Handler) Load() error {
	h.mu.Lock()
	fetch := h.ctrl.StartFetch(h.ctx)
	h.mu.Unlock()

	res := fetch()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.ctrl.Apply(res)
	return res.Err
}

// RestaurantJSON is one listing record as served
type RestaurantJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Label       string   `json:"label,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Cuisines    []string `json:"cuisines"`
	AreaName    string   `json:"area_name,omitempty"`
	AvgRating   *float64 `json:"avg_rating"`
	RatingLabel string   `json:"rating_label"`
	ETA         string   `json:"eta,omitempty"`
	Veg         bool     `json:"veg"`
	Discount    string   `json:"discount,omitempty"`
	NavPath     string   `json:"nav_path"`
}

func (h *Handler) toJSON(r domain.Restaurant) RestaurantJSON {
	out := RestaurantJSON{
		ID:          r.ID,
		Name:        r.Name,
		ImageURL:    r.ImageURL(h.imageBaseURL),
		Cuisines:    r.Cuisines,
		AreaName:    r.AreaName,
		AvgRating:   r.AvgRating,
		RatingLabel: r.RatingLabel(),
		ETA:         r.ETASummary,
		Veg:         r.IsVeg,
		Discount:    r.Discount(),
		NavPath:     controller.NavPath(r.ID),
	}
	if out.Cuisines == nil {
		out.Cuisines = []string{}
	}
	if r.IsVeg {
		out.Label = card.DefaultLabel
	}
	return out
}

// State: GET /api/state
func (h *Handler) State(c *gin.Context) {
	h.mu.Lock()
	v := h.render()
	h.mu.Unlock()

	body := gin.H{
		"state":     v.State.String(),
		"total":     v.Total,
		"shown":     len(v.Restaurants),
		"search":    v.SearchText,
		"top_rated": v.TopRated,
	}
	if v.Err != nil {
		body["error"] = v.Err.Error()
	}
	c.JSON(http.StatusOK, body)
}

// List: GET /api/restaurants?search=...
// A present search parameter, even empty, runs a search first.
func (h *Handler) List(c *gin.Context) {
	h.mu.Lock()
	if q, ok := c.GetQuery("search"); ok {
		h.ctrl.SetSearchQuery(q)
	}
	v := h.render()
	h.mu.Unlock()

	h.respond(c, v)
}

// TopRated: POST /api/restaurants/top-rated
func (h *Handler) TopRated(c *gin.Context) {
	h.mu.Lock()
	h.ctrl.TriggerTopRatedFilter()
	v := h.render()
	h.mu.Unlock()

	h.respond(c, v)
}

// ShowAll: POST /api/restaurants/show-all
func (h *Handler) ShowAll(c *gin.Context) {
	h.mu.Lock()
	h.ctrl.ShowAll()
	v := h.render()
	h.mu.Unlock()

	h.respond(c, v)
}

// Get: GET /api/restaurants/:id
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")

	h.mu.Lock()
	v := h.render()
	all := h.ctrl.Canonical()
	h.mu.Unlock()

	if v.State != controller.StatePopulated {
		h.respond(c, v)
		return
	}
	for _, r := range all {
		if r.ID == id {
			c.JSON(http.StatusOK, gin.H{"data": h.toJSON(r)})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
}

// render must be called with mu held. A pending reconnect refetch is
// started in the background.
func (h *Handler) render() controller.View {
	v := h.ctrl.Render()
	if h.ctrl.NeedsRefetch() {
		h.logger.Info("refetching listing after reconnect")
		go func() {
			if err := h.Load(); err != nil {
				h.logger.Warn("refetch failed", "error", err)
			}
		}()
	}
	return v
}

func (h *Handler) respond(c *gin.Context, v controller.View) {
	switch v.State {
	case controller.StateOffline:
		c.JSON(http.StatusServiceUnavailable, gin.H{"state": v.State.String(), "error": "Looks like you are offline!"})
	case controller.StateFailed:
		c.JSON(http.StatusBadGateway, gin.H{"state": v.State.String(), "error": v.Err.Error()})
	case controller.StateLoading:
		c.JSON(http.StatusAccepted, gin.H{"state": v.State.String()})
	default:
		data := make([]RestaurantJSON, 0, len(v.Restaurants))
		for _, r := range v.Restaurants {
			data = append(data, h.toJSON(r))
		}
		c.JSON(http.StatusOK, gin.H{
			"meta": gin.H{
				"state":     v.State.String(),
				"count":     len(data),
				"total":     v.Total,
				"search":    v.SearchText,
				"top_rated": v.TopRated,
			},
			"data": data,
		})
	}
}
