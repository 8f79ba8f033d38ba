package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/agrostack/farmkeep/internal/model"
	"github.com/agrostack/farmkeep/internal/queue"
	"github.com/agrostack/farmkeep/internal/repository"
	"github.com/agrostack/farmkeep/internal/service"
)

// AdminHandler serves the moderation console: product approval, seller
// verification and payment verification.
type AdminHandler struct {
	Sellers   *repository.SellerRepo
	Products  *repository.ProductRepo
	Payments  *repository.PaymentRepo
	Publisher service.Publisher
	Log       zerolog.Logger
}

type orderIDReq struct {
	OrderID string `json:"order_id"`
}

func (h *AdminHandler) PendingProducts(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	products, err := h.Products.ListByStatus(ctx, model.ProductPending)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "products": products})
}

func (h *AdminHandler) PendingVerifications(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	sellers, err := h.Sellers.ListByStatus(ctx, model.VerificationPending)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "verifications": sellers})
}

func (h *AdminHandler) PendingPayments(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	payments, err := h.Payments.ListByStatus(ctx, model.PaymentPending)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "payments": payments})
}

// PaymentScreenshot returns the stored payment proof for one order. The
// screenshot is excluded from every list serialization, so this is the
// reviewer's only way to see it before deciding.
func (h *AdminHandler) PaymentScreenshot(c echo.Context) error {
	orderID := c.QueryParam("order_id")
	if orderID == "" {
		return fail(c, http.StatusBadRequest, "order_id required")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	payment, err := h.Payments.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Order not found")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"order_id":   payment.OrderID,
		"screenshot": payment.PaymentScreenshot,
	})
}

func (h *AdminHandler) ApproveProduct(c echo.Context) error {
	return h.setProductStatus(c, model.ProductActive, "Product approved")
}

func (h *AdminHandler) RejectProduct(c echo.Context) error {
	return h.setProductStatus(c, model.ProductRejected, "Product rejected")
}

func (h *AdminHandler) setProductStatus(c echo.Context, status, msg string) error {
	var req idReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return fail(c, http.StatusBadRequest, "id required")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Products.UpdateStatus(ctx, req.ID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Product not found")
		}
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	product, err := h.Products.GetByID(ctx, req.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": msg, "product": product})
}

func (h *AdminHandler) ApproveVerification(c echo.Context) error {
	return h.setVerification(c, model.VerificationApproved, "Seller verified")
}

func (h *AdminHandler) RejectVerification(c echo.Context) error {
	return h.setVerification(c, model.VerificationRejected, "Verification rejected")
}

func (h *AdminHandler) setVerification(c echo.Context, status, msg string) error {
	var req idReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return fail(c, http.StatusBadRequest, "id required")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Sellers.SetStatus(ctx, req.ID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Verification request not found")
		}
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": msg})
}

// VerifyPayment marks a payment verified, then fans out best-effort SMS
// notifications to the sellers named in the order. The status change is
// committed first; a failed publish is logged but never reverts it.
func (h *AdminHandler) VerifyPayment(c echo.Context) error {
	var req orderIDReq
	if err := c.Bind(&req); err != nil || req.OrderID == "" {
		return fail(c, http.StatusBadRequest, "order_id required")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	payment, err := h.Payments.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Order not found")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	if err := h.Payments.UpdateStatus(ctx, req.OrderID, model.PaymentVerified); err != nil {
		return fail(c, http.StatusInternalServerError, "update failed")
	}

	ev := queue.PaymentVerifiedEvent{
		OrderID:       payment.OrderID,
		TotalAmount:   payment.TotalAmount,
		Notifications: h.sellerNotifications(ctx, payment),
	}
	if err := h.Publisher.PublishPaymentVerified(ctx, ev); err != nil {
		h.Log.Error().Err(err).Str("order_id", payment.OrderID).Msg("payment notification publish failed")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Payment verified"})
}

func (h *AdminHandler) RejectPayment(c echo.Context) error {
	var req orderIDReq
	if err := c.Bind(&req); err != nil || req.OrderID == "" {
		return fail(c, http.StatusBadRequest, "order_id required")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Payments.UpdateStatus(ctx, req.OrderID, model.PaymentRejected); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Order not found")
		}
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Payment rejected"})
}

// sellerNotifications resolves each distinct seller in the order to a
// phone number. Sellers without a profile or phone are skipped.
func (h *AdminHandler) sellerNotifications(ctx context.Context, p *model.Payment) []queue.SellerSMS {
	var out []queue.SellerSMS
	seen := map[string]bool{}
	for _, item := range p.Items() {
		if item.Seller == "" || seen[item.Seller] {
			continue
		}
		seen[item.Seller] = true

		profile, err := h.Sellers.GetByUsername(ctx, item.Seller)
		if err != nil || profile.Phone == "" {
			continue
		}
		out = append(out, queue.SellerSMS{
			Phone: profile.Phone,
			Message: fmt.Sprintf("FarmKeep: payment verified for order %s. Your item %q has been sold. Please prepare it for delivery.",
				p.OrderID, item.Name),
		})
	}
	return out
}
