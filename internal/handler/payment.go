package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/agrostack/farmkeep/internal/model"
	"github.com/agrostack/farmkeep/internal/repository"
)

// PaymentHandler accepts checkout submissions with a payment screenshot
// and lists the user's orders.
type PaymentHandler struct {
	Payments *repository.PaymentRepo
	Log      zerolog.Logger
}

type submitPaymentReq struct {
	Items             []model.OrderItem `json:"items"`
	TotalAmount       float64           `json:"total_amount"`
	DeliveryName      string            `json:"delivery_name"`
	DeliveryPhone     string            `json:"delivery_phone"`
	DeliveryAddress   string            `json:"delivery_address"`
	PaymentScreenshot string            `json:"payment_screenshot"`
}

// SubmitPayment records a checkout. The order id is generated server
// side, the cart is serialized as JSON and the screenshot is kept inline
// as base64 text. Status starts pending; only an admin moves it.
func (h *PaymentHandler) SubmitPayment(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req submitPaymentReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if len(req.Items) == 0 || req.TotalAmount <= 0 {
		return fail(c, http.StatusBadRequest, "Items and positive total amount are required")
	}
	if strings.TrimSpace(req.PaymentScreenshot) == "" {
		return fail(c, http.StatusBadRequest, "Payment screenshot is required")
	}
	screenshot := strings.TrimSpace(req.PaymentScreenshot)
	if i := strings.Index(screenshot, ","); strings.HasPrefix(screenshot, "data:") && i > 0 {
		screenshot = screenshot[i+1:] // strip the data-url prefix
	}
	if _, err := base64.StdEncoding.DecodeString(screenshot); err != nil {
		return fail(c, http.StatusBadRequest, "Payment screenshot must be base64 encoded")
	}

	items, err := json.Marshal(req.Items)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid items")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p := &model.Payment{
		OrderID:           uuid.NewString(),
		OrderItems:        string(items),
		TotalAmount:       req.TotalAmount,
		DeliveryName:      req.DeliveryName,
		DeliveryPhone:     req.DeliveryPhone,
		DeliveryAddress:   req.DeliveryAddress,
		PaymentScreenshot: screenshot,
		UserID:            uid,
	}
	if err := h.Payments.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicateOrder) {
			return fail(c, http.StatusConflict, "Order already submitted")
		}
		return fail(c, http.StatusInternalServerError, "save payment failed")
	}

	h.Log.Info().Str("order_id", p.OrderID).Uint64("user_id", uid).Msg("payment submitted")
	return c.JSON(http.StatusCreated, echo.Map{
		"success":  true,
		"message":  "Payment submitted for verification",
		"order_id": p.OrderID,
		"status":   p.PaymentStatus,
	})
}

func (h *PaymentHandler) MyOrders(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	orders, err := h.Payments.ListByUser(ctx, uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "orders": orders})
}
