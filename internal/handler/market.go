package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/agrostack/farmkeep/internal/model"
	"github.com/agrostack/farmkeep/internal/repository"
)

// MarketHandler serves seller verification and product listings.
type MarketHandler struct {
	Users    *repository.UserRepo
	Sellers  *repository.SellerRepo
	Products *repository.ProductRepo
	Log      zerolog.Logger
}

type verificationReq struct {
	FarmName     string `json:"farm_name"`
	FarmLocation string `json:"farm_location"`
	FarmSize     string `json:"farm_size"`
	CropsGrown   string `json:"crops_grown"`
	Phone        string `json:"phone"`
}

type productReq struct {
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Unit        string  `json:"unit"`
}

// RequestVerification files the user's farm details for admin review.
// Re-submitting overwrites the pending request; approved and rejected
// profiles stay as decided.
func (h *MarketHandler) RequestVerification(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req verificationReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.FarmName) == "" || strings.TrimSpace(req.FarmLocation) == "" {
		return fail(c, http.StatusBadRequest, "Farm name and location are required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	if existing, err := h.Sellers.GetByUserID(ctx, uid); err == nil {
		if existing.VerificationStatus == model.VerificationApproved {
			return fail(c, http.StatusConflict, "Already a verified seller")
		}
		if existing.VerificationStatus == model.VerificationRejected {
			return fail(c, http.StatusConflict, "Verification request was rejected")
		}
	}

	profile, err := h.Sellers.SubmitRequest(ctx, &model.SellerProfile{
		UserID:       uid,
		Username:     u.Username,
		FarmName:     req.FarmName,
		FarmLocation: req.FarmLocation,
		FarmSize:     req.FarmSize,
		CropsGrown:   req.CropsGrown,
		Phone:        req.Phone,
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "save request failed")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Verification request submitted",
		"status":  profile.VerificationStatus,
	})
}

// VerificationStatus reports where the user stands. Users who never
// applied read as not_requested.
func (h *MarketHandler) VerificationStatus(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	profile, err := h.Sellers.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusOK, echo.Map{
				"success":  true,
				"status":   model.VerificationNotRequested,
				"verified": false,
			})
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"status":   profile.VerificationStatus,
		"verified": profile.Verified,
		"profile":  profile,
	})
}

// CreateProduct lists a product. Only approved sellers may list; every
// new listing starts pending until an admin moderates it.
func (h *MarketHandler) CreateProduct(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req productReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.ProductName) == "" || req.Price <= 0 || req.Quantity <= 0 {
		return fail(c, http.StatusBadRequest, "Product name, positive price and quantity are required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	profile, err := h.Sellers.GetByUserID(ctx, uid)
	if err != nil || !profile.Verified {
		return fail(c, http.StatusForbidden, "Only verified sellers can list products")
	}

	p := &model.Product{
		ProductName: req.ProductName,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		UserID:      uid,
	}
	if err := h.Products.Create(ctx, p); err != nil {
		return fail(c, http.StatusInternalServerError, "save product failed")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Product submitted for review",
		"product": p,
	})
}

func (h *MarketHandler) MyProducts(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	products, err := h.Products.ListByOwner(ctx, uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "products": products})
}

func (h *MarketHandler) DeleteProduct(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req idReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return fail(c, http.StatusBadRequest, "id required")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Products.Delete(ctx, req.ID, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Product not found or not authorized")
		}
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Product deleted"})
}

// Marketplace lists active products from other sellers. The caller's own
// listings never appear in their feed.
func (h *MarketHandler) Marketplace(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	products, err := h.Products.ListActiveExcluding(ctx, uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	type listing struct {
		model.Product
		Seller string `json:"seller"`
	}
	out := make([]listing, 0, len(products))
	for _, p := range products {
		name := ""
		if owner, err := h.Users.GetByID(ctx, p.UserID); err == nil {
			name = owner.Username
		}
		out = append(out, listing{Product: p, Seller: name})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "products": out})
}
