package field

import (
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/reqscribe/requisition-api/internal/model"
	"github.com/reqscribe/requisition-api/pkg/httputil"
)

const catalogCacheKey = "field_catalog"

// Handler serves the catalog of configured form fields, letting clients
// discover which symbolic names the classifier can resolve.
type Handler struct {
	cfg   *model.FieldConfig
	cache *cache.Cache
}

func NewHandler(cfg *model.FieldConfig) *Handler {
	return &Handler{
		cfg:   cfg,
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/fields", h.ListFields)
}

type fieldEntry struct {
	Name     string `json:"name"`
	Xref     string `json:"field_xref"`
	Overflow bool   `json:"overflow,omitempty"`
}

func (h *Handler) ListFields(c *gin.Context) {
	if cached, ok := h.cache.Get(catalogCacheKey); ok {
		httputil.RespondWithSuccess(c, cached)
		return
	}

	entries := make([]fieldEntry, 0, len(h.cfg.Fields))
	for name, spec := range h.cfg.Fields {
		entries = append(entries, fieldEntry{
			Name:     name,
			Xref:     spec.Xref,
			Overflow: strings.HasPrefix(name, "other_tests"),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	h.cache.Set(catalogCacheKey, entries, cache.DefaultExpiration)
	httputil.RespondWithSuccess(c, entries)
}
