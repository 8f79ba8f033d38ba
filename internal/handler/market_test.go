package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationLifecycle(t *testing.T) {
	v := newEnv(t)
	token := v.register("ravi", "password1")

	// nothing filed yet
	rec := v.do(http.MethodGet, "/api/verification_status", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "not_requested", body["status"])
	assert.Equal(t, false, body["verified"])

	rec = v.do(http.MethodPost, "/api/request_verification", token, map[string]string{
		"farm_name": "Green Acres", "farm_location": "Nagpur", "farm_size": "4 acres",
		"crops_grown": "cotton, soybean", "phone": "+911234567890",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = v.do(http.MethodGet, "/api/verification_status", token, nil)
	body = decode(t, rec)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, false, body["verified"])
}

func TestRequestVerificationRequiresFarmDetails(t *testing.T) {
	v := newEnv(t)
	token := v.register("ravi", "password1")

	rec := v.do(http.MethodPost, "/api/request_verification", token, map[string]string{"farm_name": "Green Acres"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductCreationGatedOnVerification(t *testing.T) {
	v := newEnv(t)
	token := v.register("ravi", "password1")

	rec := v.do(http.MethodPost, "/api/product", token, map[string]any{
		"product_name": "Cotton bales", "price": 5000.0, "quantity": 3, "unit": "bale",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "verified sellers")
}

func TestMarketplaceVisibility(t *testing.T) {
	v := newEnv(t)
	seller, admin := v.verifiedSeller("seller1", "+911111111111")
	buyer := v.register("buyer1", "password1")

	rec := v.do(http.MethodPost, "/api/product", seller, map[string]any{
		"product_name": "Organic turmeric", "category": "spices", "price": 240.0, "quantity": 20, "unit": "kg",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	productID := decode(t, rec)["product"].(map[string]any)["id"].(float64)

	// pending products are invisible to buyers
	rec = v.do(http.MethodGet, "/api/marketplace", buyer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["products"])

	// but the seller sees their own listing with its status
	rec = v.do(http.MethodGet, "/api/my_products", seller, nil)
	mine := decode(t, rec)["products"].([]any)
	require.Len(t, mine, 1)
	assert.Equal(t, "pending", mine[0].(map[string]any)["status"])

	rec = v.do(http.MethodPost, "/api/admin/approve_product", admin, map[string]any{"id": productID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	approved := decode(t, rec)["product"].(map[string]any)
	assert.Equal(t, productID, approved["id"])
	assert.Equal(t, "active", approved["status"])

	// now visible to the buyer, tagged with the seller's name
	rec = v.do(http.MethodGet, "/api/marketplace", buyer, nil)
	listings := decode(t, rec)["products"].([]any)
	require.Len(t, listings, 1)
	listing := listings[0].(map[string]any)
	assert.Equal(t, "active", listing["status"])
	assert.Equal(t, "seller1", listing["seller"])

	// never visible in the seller's own feed
	rec = v.do(http.MethodGet, "/api/marketplace", seller, nil)
	assert.Empty(t, decode(t, rec)["products"])
}

func TestRejectedProductStaysHidden(t *testing.T) {
	v := newEnv(t)
	seller, admin := v.verifiedSeller("seller1", "")
	buyer := v.register("buyer1", "password1")

	rec := v.do(http.MethodPost, "/api/product", seller, map[string]any{
		"product_name": "Wheat", "price": 25.0, "quantity": 100, "unit": "kg",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	productID := decode(t, rec)["product"].(map[string]any)["id"].(float64)

	rec = v.do(http.MethodPost, "/api/admin/reject_product", admin, map[string]any{"id": productID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rejected", decode(t, rec)["product"].(map[string]any)["status"])

	rec = v.do(http.MethodGet, "/api/marketplace", buyer, nil)
	assert.Empty(t, decode(t, rec)["products"])

	rec = v.do(http.MethodGet, "/api/my_products", seller, nil)
	mine := decode(t, rec)["products"].([]any)
	require.Len(t, mine, 1)
	assert.Equal(t, "rejected", mine[0].(map[string]any)["status"])
}

func TestDeleteProductEnforcesOwnership(t *testing.T) {
	v := newEnv(t)
	seller, _ := v.verifiedSeller("seller1", "")
	other := v.register("other", "password1")

	rec := v.do(http.MethodPost, "/api/product", seller, map[string]any{
		"product_name": "Jaggery", "price": 60.0, "quantity": 10, "unit": "kg",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	productID := decode(t, rec)["product"].(map[string]any)["id"].(float64)

	rec = v.do(http.MethodPost, "/api/delete_product", other, map[string]any{"id": productID})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = v.do(http.MethodPost, "/api/delete_product", seller, map[string]any{"id": productID})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	v := newEnv(t)
	token := v.register("ravi", "password1")

	rec := v.do(http.MethodGet, "/api/admin/pending_products", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
