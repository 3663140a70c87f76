package main

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saudecerta/storefront/internal/auth"
	"github.com/saudecerta/storefront/internal/checkout"
	"github.com/saudecerta/storefront/internal/config"
	"github.com/saudecerta/storefront/internal/database"
	"github.com/saudecerta/storefront/internal/models"
	"github.com/saudecerta/storefront/internal/shipping"
	"github.com/saudecerta/storefront/internal/store"
	"github.com/shopspring/decimal"
)

type Handler struct {
	db     *sql.DB
	router *checkout.Router
	cfg    *config.Config
	keys   *auth.Keys
	logger *slog.Logger
}

func API(cfg *config.Config, db *sql.DB, gateway checkout.Gateway, keys *auth.Keys, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())

	h := &Handler{
		db:     db,
		router: checkout.NewRouter(db, gateway, cfg.Store),
		cfg:    cfg,
		keys:   keys,
		logger: logger,
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.POST("/auth/login", h.Login)

	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProduct)
	r.GET("/categories", h.ListCategories)
	r.GET("/reviews", h.ListReviews)
	r.GET("/shipping/estimate", h.EstimateShipping)

	authed := r.Group("/")
	authed.Use(authentication(keys))
	{
		authed.GET("/me", h.Me)
		authed.PUT("/me/phone", h.SetPhone)

		authed.GET("/addresses", h.ListAddresses)
		authed.POST("/addresses", h.CreateAddress)
		authed.PUT("/addresses/:id", h.UpdateAddress)
		authed.DELETE("/addresses/:id", h.DeleteAddress)

		authed.GET("/phones", h.ListPhones)
		authed.POST("/phones", h.CreatePhone)
		authed.PUT("/phones/:id", h.UpdatePhone)
		authed.DELETE("/phones/:id", h.DeletePhone)

		authed.GET("/orders", h.ListOrders)
		authed.GET("/orders/history", h.OrderHistory)
		authed.GET("/orders/:id", h.GetOrder)
		authed.POST("/orders/:id/pay", h.PayOrder)
		authed.POST("/checkout", h.Checkout)

		authed.POST("/reviews", h.CreateReview)
	}

	admin := r.Group("/admin")
	admin.Use(authentication(keys), adminOnly())
	{
		admin.POST("/products", h.CreateProduct)
		admin.PUT("/products/:id", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeactivateProduct)
		admin.PUT("/inventory/:productId", h.UpsertInventory)
		admin.POST("/promotions", h.CreatePromotion)
		admin.DELETE("/promotions/:id", h.DeactivatePromotion)
		admin.POST("/categories", h.CreateCategory)
		admin.GET("/reports/daily", h.DailyReport)
		admin.GET("/reports/range", h.RangeReport)
		admin.GET("/reports/monthly", h.MonthlyReport)
		admin.PUT("/reviews/:id/approve", h.ApproveReview)
		admin.DELETE("/reviews/:id", h.DeleteReview)
	}

	return r
}

// respondError maps the error taxonomy onto HTTP statuses: validation
// failures are 400, missing records 404, gateway trouble 502, and
// anything else a generic 500 so persistence details never leak.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrEmptyCart),
		errors.Is(err, database.ErrInvalidQuantity),
		errors.Is(err, database.ErrMissingPhone),
		errors.Is(err, database.ErrMissingShipping):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrUserNotFound),
		errors.Is(err, database.ErrProductNotFound),
		errors.Is(err, database.ErrOrderNotFound),
		errors.Is(err, database.ErrAddressNotFound),
		errors.Is(err, database.ErrPhoneNotFound),
		errors.Is(err, database.ErrReviewNotFound),
		errors.Is(err, database.ErrInventoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrOrderNotPayable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrPaymentGateway):
		h.logger.Error("payment gateway failure", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment setup failed, please retry"})
	default:
		h.logger.Error("request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order could not be processed"})
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// --- catalog ---

func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	result, err := store.ListProducts(c.Request.Context(), h.db, page, pageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := store.GetProduct(c.Request.Context(), h.db, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := store.ListCategories(c.Request.Context(), h.db)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

type createProductRequest struct {
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	CategoryID   int64           `json:"category_id" binding:"required"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	Image        string          `json:"image"`
	InitialStock int             `json:"initial_stock"`
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := store.CreateProduct(c.Request.Context(), h.db, store.CreateProductParams{
		Name:         req.Name,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		Price:        req.Price,
		Image:        req.Image,
		InitialStock: req.InitialStock,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

type updateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Image       string          `json:"image"`
	Active      bool            `json:"active"`
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := store.UpdateProduct(c.Request.Context(), h.db, store.UpdateProductParams{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Active:      req.Active,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeactivateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := store.DeactivateProduct(c.Request.Context(), h.db, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) UpsertInventory(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := store.UpsertInventory(c.Request.Context(), h.db, productID, req.Quantity); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type createPromotionRequest struct {
	ProductID       int64           `json:"product_id" binding:"required"`
	DiscountPercent decimal.Decimal `json:"discount_percent" binding:"required"`
	StartDate       string          `json:"start_date" binding:"required"`
	EndDate         string          `json:"end_date" binding:"required"`
}

func (h *Handler) CreatePromotion(c *gin.Context) {
	var req createPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}

	promo, err := store.CreatePromotion(c.Request.Context(), h.db, req.ProductID, req.DiscountPercent, start, end)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, promo)
}

func (h *Handler) DeactivatePromotion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := store.DeactivatePromotion(c.Request.Context(), h.db, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := store.CreateCategory(c.Request.Context(), h.db, req.Name, req.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// --- auth & profile ---

type loginRequest struct {
	OpenID string `json:"open_id" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Name   string `json:"name" binding:"required"`
}

// Login exchanges a verified identity from the OAuth callback for a
// bearer token, creating the account on first sign-in.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := store.UpsertUserByOpenID(c.Request.Context(), h.db, req.OpenID, req.Email, req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.keys.Sign(user.ID, user.Role, 24*time.Hour)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *Handler) Me(c *gin.Context) {
	user, err := store.GetUser(c.Request.Context(), h.db, currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) SetPhone(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := store.SetUserPhone(c.Request.Context(), h.db, currentUserID(c), req.Phone); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type addressRequest struct {
	Street     string `json:"street" binding:"required"`
	Number     string `json:"number" binding:"required"`
	Complement string `json:"complement"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required,len=2"`
	ZipCode    string `json:"zip_code" binding:"required"`
	IsDefault  bool   `json:"is_default"`
}

func (h *Handler) ListAddresses(c *gin.Context) {
	addresses, err := store.ListAddresses(c.Request.Context(), h.db, currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, addresses)
}

func (h *Handler) CreateAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	addr, err := store.CreateAddress(c.Request.Context(), h.db, models.Address{
		UserID:     currentUserID(c),
		Street:     req.Street,
		Number:     req.Number,
		Complement: req.Complement,
		City:       req.City,
		State:      req.State,
		ZipCode:    req.ZipCode,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, addr)
}

func (h *Handler) UpdateAddress(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := store.UpdateAddress(c.Request.Context(), h.db, models.Address{
		ID:         id,
		UserID:     currentUserID(c),
		Street:     req.Street,
		Number:     req.Number,
		Complement: req.Complement,
		City:       req.City,
		State:      req.State,
		ZipCode:    req.ZipCode,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeleteAddress(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := store.DeleteAddress(c.Request.Context(), h.db, id, currentUserID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type phoneRequest struct {
	Phone     string `json:"phone" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

func (h *Handler) ListPhones(c *gin.Context) {
	phones, err := store.ListPhones(c.Request.Context(), h.db, currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, phones)
}

func (h *Handler) CreatePhone(c *gin.Context) {
	var req phoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	phone, err := store.CreatePhone(c.Request.Context(), h.db, models.Phone{
		UserID:    currentUserID(c),
		Phone:     req.Phone,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, phone)
}

func (h *Handler) UpdatePhone(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req phoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := store.UpdatePhone(c.Request.Context(), h.db, models.Phone{
		ID:        id,
		UserID:    currentUserID(c),
		Phone:     req.Phone,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeletePhone(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := store.DeletePhone(c.Request.Context(), h.db, id, currentUserID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- shipping ---

func (h *Handler) EstimateShipping(c *gin.Context) {
	destZip := c.Query("zip_code")
	if destZip == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "zip_code is required"})
		return
	}

	originZip := h.cfg.Store.ZipCode
	distance := shipping.EstimateDistanceKm(originZip, destZip)
	fee := shipping.Cost(distance)

	c.JSON(http.StatusOK, gin.H{
		"distance_km":   distance,
		"shipping_cost": fee,
	})
}

// --- orders & checkout ---

func (h *Handler) ListOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	page, err := store.ListOrdersCursor(c.Request.Context(), h.db, currentUserID(c), c.Query("cursor"), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) OrderHistory(c *gin.Context) {
	orders, err := store.ListOrdersWithItems(c.Request.Context(), h.db, currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := store.GetOrder(c.Request.Context(), h.db, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if order.UserID != currentUserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": database.ErrOrderNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

type checkoutItem struct {
	ProductID int64           `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
}

type checkoutRequest struct {
	Items         []checkoutItem  `json:"items"`
	AddressID     int64           `json:"address_id" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required,oneof=card pix"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	CustomerPhone string          `json:"customer_phone"`
}

func (r checkoutRequest) method(origin string) checkout.Method {
	if r.PaymentMethod == "card" {
		return checkout.Card{Origin: origin}
	}
	return checkout.InstantTransfer{
		ShippingCost:  r.ShippingCost,
		CustomerPhone: r.CustomerPhone,
	}
}

func (h *Handler) requestOrigin(c *gin.Context) string {
	if origin := c.GetHeader("Origin"); origin != "" {
		return origin
	}
	return h.cfg.Stripe.AppOrigin
}

func (h *Handler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]store.OrderItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, store.OrderItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	result, err := h.router.Checkout(c.Request.Context(), checkout.Request{
		UserID:    currentUserID(c),
		AddressID: req.AddressID,
		Items:     items,
		Method:    req.method(h.requestOrigin(c)),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type payOrderRequest struct {
	PaymentMethod string          `json:"payment_method" binding:"required,oneof=card pix"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	CustomerPhone string          `json:"customer_phone"`
}

// PayOrder retries settlement for an assembled order whose payment
// setup previously failed.
func (h *Handler) PayOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req payOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	method := checkoutRequest{
		PaymentMethod: req.PaymentMethod,
		ShippingCost:  req.ShippingCost,
		CustomerPhone: req.CustomerPhone,
	}.method(h.requestOrigin(c))

	result, err := h.router.PayOrder(c.Request.Context(), currentUserID(c), id, method)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// --- reviews ---

func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := store.ListApprovedReviews(c.Request.Context(), h.db)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *Handler) CreateReview(c *gin.Context) {
	var req struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := store.CreateReview(c.Request.Context(), h.db, currentUserID(c), req.Rating, req.Comment)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *Handler) ApproveReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := store.ApproveReview(c.Request.Context(), h.db, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := store.DeleteReview(c.Request.Context(), h.db, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- admin reports ---

func (h *Handler) DailyReport(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	sales, err := store.GetDailySales(c.Request.Context(), h.db, date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if sales == nil {
		sales = &models.DailySales{Date: date, TotalSales: decimal.Zero}
	}
	c.JSON(http.StatusOK, sales)
}

func (h *Handler) RangeReport(c *gin.Context) {
	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start, expected YYYY-MM-DD"})
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end, expected YYYY-MM-DD"})
		return
	}

	sales, err := store.ListDailySales(c.Request.Context(), h.db, start, end)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *Handler) MonthlyReport(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month is required, expected YYYY-MM"})
		return
	}

	sales, err := store.ListMonthlySales(c.Request.Context(), h.db, month)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}
