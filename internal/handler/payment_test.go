package handler_test

import (
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var screenshot = base64.StdEncoding.EncodeToString([]byte("fake png bytes"))

func submitOrder(t *testing.T, v *env, token string, items []map[string]any, total float64) string {
	t.Helper()
	rec := v.do(http.MethodPost, "/api/submit_payment", token, map[string]any{
		"items":              items,
		"total_amount":       total,
		"delivery_name":      "Ravi Kumar",
		"delivery_phone":     "+919999999999",
		"delivery_address":   "Village road, Nagpur",
		"payment_screenshot": screenshot,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "pending", body["status"])
	return body["order_id"].(string)
}

func TestSubmitPaymentValidation(t *testing.T) {
	v := newEnv(t)
	token := v.register("buyer", "password1")

	// no items
	rec := v.do(http.MethodPost, "/api/submit_payment", token, map[string]any{
		"items": []any{}, "total_amount": 100.0, "payment_screenshot": screenshot,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// missing screenshot
	rec = v.do(http.MethodPost, "/api/submit_payment", token, map[string]any{
		"items":        []map[string]any{{"name": "Wheat", "quantity": 1, "price": 100.0}},
		"total_amount": 100.0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// screenshot not base64
	rec = v.do(http.MethodPost, "/api/submit_payment", token, map[string]any{
		"items":              []map[string]any{{"name": "Wheat", "quantity": 1, "price": 100.0}},
		"total_amount":       100.0,
		"payment_screenshot": "not base64!!",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitPaymentGeneratesUniqueOrderIDs(t *testing.T) {
	v := newEnv(t)
	token := v.register("buyer", "password1")
	items := []map[string]any{{"name": "Wheat", "quantity": 2, "price": 50.0}}

	first := submitOrder(t, v, token, items, 100)
	second := submitOrder(t, v, token, items, 100)
	assert.NotEqual(t, first, second)

	rec := v.do(http.MethodGet, "/api/my_orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode(t, rec)["orders"].([]any)
	assert.Len(t, orders, 2)
	// screenshots never leak through list responses
	assert.NotContains(t, rec.Body.String(), screenshot)
}

func TestAdminCanFetchPaymentScreenshot(t *testing.T) {
	v := newEnv(t)
	admin := v.admin()
	buyer := v.register("buyer", "password1")

	orderID := submitOrder(t, v, buyer, []map[string]any{{"name": "Wheat", "quantity": 1, "price": 100.0}}, 100)

	rec := v.do(http.MethodGet, "/api/admin/payment_screenshot?order_id="+orderID, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, orderID, body["order_id"])
	assert.Equal(t, screenshot, body["screenshot"])

	rec = v.do(http.MethodGet, "/api/admin/payment_screenshot?order_id=no-such-order", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = v.do(http.MethodGet, "/api/admin/payment_screenshot", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// the buyer's own role never reaches the admin group
	rec = v.do(http.MethodGet, "/api/admin/payment_screenshot?order_id="+orderID, buyer, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestVerifyPaymentPublishesSellerNotifications(t *testing.T) {
	v := newEnv(t)
	_, admin := v.verifiedSeller("seller1", "+911111111111")
	buyer := v.register("buyer", "password1")

	orderID := submitOrder(t, v, buyer, []map[string]any{
		{"name": "Turmeric", "seller": "seller1", "quantity": 2, "price": 240.0},
		{"name": "Chillies", "seller": "seller1", "quantity": 1, "price": 90.0},
		{"name": "Honey", "seller": "no-such-seller", "quantity": 1, "price": 300.0},
	}, 870)

	rec := v.do(http.MethodPost, "/api/admin/verify_payment", admin, map[string]string{"order_id": orderID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Len(t, v.pub.payments, 1)
	ev := v.pub.payments[0]
	assert.Equal(t, orderID, ev.OrderID)
	assert.Equal(t, 870.0, ev.TotalAmount)
	// one SMS per resolvable seller, duplicates collapsed
	require.Len(t, ev.Notifications, 1)
	assert.Equal(t, "+911111111111", ev.Notifications[0].Phone)
	assert.Contains(t, ev.Notifications[0].Message, orderID)
}

func TestVerifyPaymentSurvivesPublishFailure(t *testing.T) {
	v := newEnv(t)
	_, admin := v.verifiedSeller("seller1", "+911111111111")
	buyer := v.register("buyer", "password1")

	orderID := submitOrder(t, v, buyer, []map[string]any{
		{"name": "Turmeric", "seller": "seller1", "quantity": 1, "price": 240.0},
	}, 240)

	v.pub.fail = true
	rec := v.do(http.MethodPost, "/api/admin/verify_payment", admin, map[string]string{"order_id": orderID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])

	// the status change was committed before the publish attempt
	rec = v.do(http.MethodGet, "/api/my_orders", buyer, nil)
	orders := decode(t, rec)["orders"].([]any)
	require.Len(t, orders, 1)
	assert.Equal(t, "verified", orders[0].(map[string]any)["payment_status"])
}

func TestRejectPayment(t *testing.T) {
	v := newEnv(t)
	admin := v.admin()
	buyer := v.register("buyer", "password1")

	orderID := submitOrder(t, v, buyer, []map[string]any{
		{"name": "Wheat", "quantity": 1, "price": 100.0},
	}, 100)

	rec := v.do(http.MethodPost, "/api/admin/reject_payment", admin, map[string]string{"order_id": orderID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = v.do(http.MethodGet, "/api/my_orders", buyer, nil)
	orders := decode(t, rec)["orders"].([]any)
	require.Len(t, orders, 1)
	assert.Equal(t, "rejected", orders[0].(map[string]any)["payment_status"])

	rec = v.do(http.MethodPost, "/api/admin/reject_payment", admin, map[string]string{"order_id": "no-such-order"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPendingPaymentsListedForAdmin(t *testing.T) {
	v := newEnv(t)
	admin := v.admin()
	buyer := v.register("buyer", "password1")

	submitOrder(t, v, buyer, []map[string]any{{"name": "Wheat", "quantity": 1, "price": 100.0}}, 100)

	rec := v.do(http.MethodGet, "/api/admin/pending_payments", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["payments"].([]any), 1)
}
