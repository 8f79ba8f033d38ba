package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/agrostack/farmkeep/internal/ai"
	"github.com/agrostack/farmkeep/internal/config"
	"github.com/agrostack/farmkeep/internal/database"
	"github.com/agrostack/farmkeep/internal/handler"
	"github.com/agrostack/farmkeep/internal/model"
	"github.com/agrostack/farmkeep/internal/queue"
	"github.com/agrostack/farmkeep/internal/repository"
	"github.com/agrostack/farmkeep/internal/router"
	"github.com/agrostack/farmkeep/internal/utils"
	"github.com/agrostack/farmkeep/internal/weather"
)

// stubPublisher records published events and can be told to fail.
type stubPublisher struct {
	reminders []queue.TaskReminderEvent
	payments  []queue.PaymentVerifiedEvent
	fail      bool
}

func (p *stubPublisher) PublishTaskReminder(_ context.Context, ev queue.TaskReminderEvent) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.reminders = append(p.reminders, ev)
	return nil
}

func (p *stubPublisher) PublishPaymentVerified(_ context.Context, ev queue.PaymentVerifiedEvent) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.payments = append(p.payments, ev)
	return nil
}

type env struct {
	t   *testing.T
	e   *echo.Echo
	cfg config.Config
	pub *stubPublisher

	users    *repository.UserRepo
	sessions *repository.SessionRepo
	tasks    *repository.TaskRepo
	sellers  *repository.SellerRepo
	payments *repository.PaymentRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	cfg := config.Config{
		Env:            "test",
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     bcrypt.MinCost,
		ReminderEmail:  "farm@example.com",
	}
	log := zerolog.Nop()
	pub := &stubPublisher{}

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	tasks := repository.NewTaskRepo(db)
	inventory := repository.NewInventoryRepo(db)
	expenses := repository.NewExpenseRepo(db)
	journal := repository.NewJournalRepo(db)
	products := repository.NewProductRepo(db)
	sellers := repository.NewSellerRepo(db)
	payments := repository.NewPaymentRepo(db)

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users, sessions, log),
		Farm:     &handler.FarmHandler{Users: users, Tasks: tasks, Inventory: inventory, Expenses: expenses, Journal: journal, Publisher: pub, Reminder: cfg.ReminderEmail, Log: log},
		Advisor:  &handler.AdvisorHandler{Weather: weather.New("", ""), Log: log},
		Insights: &handler.InsightsHandler{AI: ai.NewDisabled(), Journal: journal, Products: products, Log: log},
		Market:   &handler.MarketHandler{Users: users, Sellers: sellers, Products: products, Log: log},
		Payments: &handler.PaymentHandler{Payments: payments, Log: log},
		Admin:    &handler.AdminHandler{Sellers: sellers, Products: products, Payments: payments, Publisher: pub, Log: log},
		Reports:  &handler.ReportHandler{Users: users, Tasks: tasks, Inventory: inventory, Expenses: expenses, Log: log},
	}

	e := echo.New()
	router.Register(e, h, db, cfg, nil)

	return &env{
		t: t, e: e, cfg: cfg, pub: pub,
		users: users, sessions: sessions, tasks: tasks, sellers: sellers, payments: payments,
	}
}

// do performs a JSON request against the in-memory server.
func (v *env) do(method, path, token string, body any) *httptest.ResponseRecorder {
	v.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(v.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	v.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// register creates a user through the API and returns its access token.
func (v *env) register(username, password string) string {
	v.t.Helper()

	rec := v.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username, "password": password, "confirm": password,
	})
	require.Equal(v.t, http.StatusCreated, rec.Code, rec.Body.String())
	return v.login(username, password)
}

func (v *env) login(username, password string) string {
	v.t.Helper()

	rec := v.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(v.t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(v.t, rec)
	access := body["access"].(map[string]any)
	return access["token"].(string)
}

// admin creates an admin account directly in the database and logs in.
func (v *env) admin() string {
	v.t.Helper()

	hash, err := utils.HashPassword("admin-pass", bcrypt.MinCost)
	require.NoError(v.t, err)
	_, err = v.users.Create(context.Background(), "boss", hash, model.RoleAdmin)
	require.NoError(v.t, err)
	return v.login("boss", "admin-pass")
}

// verifiedSeller registers a user, files verification and approves it.
func (v *env) verifiedSeller(username, phone string) (token, adminToken string) {
	v.t.Helper()

	token = v.register(username, "seller-pass")
	rec := v.do(http.MethodPost, "/api/request_verification", token, map[string]string{
		"farm_name":     fmt.Sprintf("%s farm", username),
		"farm_location": "Nagpur",
		"phone":         phone,
	})
	require.Equal(v.t, http.StatusCreated, rec.Code, rec.Body.String())

	adminToken = v.admin()
	profile, err := v.sellers.GetByUsername(context.Background(), username)
	require.NoError(v.t, err)
	rec = v.do(http.MethodPost, "/api/admin/approve_verification", adminToken, map[string]uint64{"id": profile.ID})
	require.Equal(v.t, http.StatusOK, rec.Code, rec.Body.String())
	return token, adminToken
}
