package transport

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"glowcart/internal/catalog"
	"glowcart/internal/domain"
	"glowcart/internal/middleware"
	"glowcart/internal/repository"
	"glowcart/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateCategoryRequest represents the category creation payload
type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	ParentID *int64 `json:"parent_id"`
}

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Name            string  `json:"name" validate:"required,max=255"`
	Description     string  `json:"description"`
	Brand           string  `json:"brand" validate:"required,max=100"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lt=100"`
	StockQuantity   int     `json:"stock_quantity" validate:"gte=0"`
	IsActive        bool    `json:"is_active"`
	CategoryID      int64   `json:"category_id" validate:"required"`
	Color           string  `json:"color"`
	Size            string  `json:"size"`
	SkinTypeMask    int     `json:"skin_type_mask" validate:"gte=0,lte=31"`
	Finish          string  `json:"finish"`
	Coverage        string  `json:"coverage"`
	Longwear        bool    `json:"longwear"`
	Waterproof      bool    `json:"waterproof"`
	HasSPF          bool    `json:"has_spf"`
	FragranceFree   bool    `json:"fragrance_free"`
	NonComedogenic  bool    `json:"non_comedogenic"`
	PhotoFriendly   bool    `json:"photo_friendly"`
	ShadeFamily     string  `json:"shade_family"`
	Tags            string  `json:"tags"`
	ImageURL        string  `json:"image_url"`
}

// CatalogHandler handles HTTP requests for catalog browsing, routine
// recommendations and the admin catalog surface
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers all catalog routes. optionalAuth attaches user
// identity when a token is present without requiring one; authMiddleware and
// requireAdmin guard the admin surface.
func (h *CatalogHandler) RegisterRoutes(r chi.Router, optionalAuth, authMiddleware, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/api/catalog", func(r chi.Router) {
		// Public routes
		r.Get("/products", h.Browse)
		r.Get("/categories", h.ListCategories)

		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)
			r.Post("/routine", h.Recommend)
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(requireAdmin)
			r.Post("/products", h.CreateProduct)
			r.Post("/categories", h.CreateCategory)
		})
	})
}

// Browse handles the faceted catalog listing. Bad filter values never fail
// the request: unparseable parameters are dropped and unknown categories
// resolve to empty result pages.
func (h *CatalogHandler) Browse(w http.ResponseWriter, r *http.Request) {
	query := parseBrowseQuery(r.URL.Query())

	result, err := h.catalogService.Browse(r.Context(), query)
	if err != nil {
		h.logger.Error("Browse failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to browse catalog")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// Recommend handles persona-driven routine recommendations
func (h *CatalogHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req catalog.RoutineRequest

	// Required presence only; the engine itself is permissive about
	// unrecognized vocabulary values.
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Routine validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.catalogService.Recommend(r.Context(), &req, userID)
	if err != nil {
		h.logger.Error("Recommendation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to build routine")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// ListCategories handles the flat category listing
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("Category listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// CreateCategory handles admin category creation
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Category validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category := &domain.Category{
		Name:     req.Name,
		ParentID: req.ParentID,
	}

	if err := h.catalogService.CreateCategory(r.Context(), category); err != nil {
		h.logger.Error("Category creation failed", zap.Error(err))

		if errors.Is(err, repository.ErrCategoryAlreadyExists) {
			middleware.RespondWithError(w, http.StatusConflict, "category with this name already exists")
			return
		}

		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	h.logger.Info("Category created", zap.Int64("category_id", category.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, category)
}

// CreateProduct handles admin product creation
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product := &domain.Product{
		Name:            req.Name,
		Description:     req.Description,
		Brand:           req.Brand,
		Price:           req.Price,
		DiscountPercent: req.DiscountPercent,
		StockQuantity:   req.StockQuantity,
		IsActive:        req.IsActive,
		CategoryID:      req.CategoryID,
		Color:           req.Color,
		Size:            req.Size,
		SkinTypeMask:    req.SkinTypeMask,
		Finish:          req.Finish,
		Coverage:        req.Coverage,
		Longwear:        req.Longwear,
		Waterproof:      req.Waterproof,
		HasSPF:          req.HasSPF,
		FragranceFree:   req.FragranceFree,
		NonComedogenic:  req.NonComedogenic,
		PhotoFriendly:   req.PhotoFriendly,
		ShadeFamily:     req.ShadeFamily,
		Tags:            req.Tags,
		ImageURL:        req.ImageURL,
	}

	if err := h.catalogService.CreateProduct(r.Context(), product); err != nil {
		h.logger.Error("Product creation failed", zap.Error(err))

		if errors.Is(err, repository.ErrCategoryNotFound) {
			middleware.RespondWithError(w, http.StatusBadRequest, "category does not exist")
			return
		}

		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// parseBrowseQuery maps query parameters onto the engine's browse query.
// Unparseable values are treated as absent.
func parseBrowseQuery(values url.Values) *catalog.BrowseQuery {
	query := &catalog.BrowseQuery{
		Page:     1,
		PageSize: catalog.DefaultPageSize,
		Sort:     catalog.SortBest,
	}

	if v, ok := parseInt(values.Get("page")); ok && v >= 1 {
		query.Page = int(v)
	}
	if v, ok := parseInt(values.Get("page_size")); ok && v >= 1 {
		query.PageSize = int(v)
	}
	if v, ok := parseInt(values.Get("category_id")); ok {
		query.CategoryID = &v
	}
	if v, ok := parseInt(values.Get("category_tree_id")); ok {
		query.CategoryTreeID = &v
	}
	if v := values.Get("sort"); v != "" {
		query.Sort = v
	}

	query.Query = values.Get("q")

	if v, ok := parseFloat(values.Get("price_min")); ok {
		query.PriceMin = &v
	}
	if v, ok := parseFloat(values.Get("price_max")); ok {
		query.PriceMax = &v
	}

	query.InStock = parseBool(values.Get("in_stock"))
	query.Discounted = parseBool(values.Get("discounted"))
	query.HasSPF = parseBool(values.Get("has_spf"))
	query.FragranceFree = parseBool(values.Get("fragrance_free"))
	query.NonComedogenic = parseBool(values.Get("non_comedogenic"))

	query.Brands = parseList(values.Get("brands"))
	query.Colors = parseList(values.Get("colors"))
	query.Sizes = parseList(values.Get("sizes"))

	if v, ok := parseInt(values.Get("suitable_for_skin")); ok && v > 0 {
		query.SkinTypeMask = int(v)
	}

	query.Finish = values.Get("finish")
	query.Coverage = values.Get("coverage")

	if v, ok := parseInt(values.Get("min_rating")); ok {
		rating := int(v)
		query.MinRating = &rating
	}

	return query
}

func parseInt(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseFloat(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseBool(raw string) *bool {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func parseList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
