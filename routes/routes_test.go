package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Govind-619/ClipCraft/config"
	"github.com/Govind-619/ClipCraft/controllers"
	"github.com/Govind-619/ClipCraft/models"
	"github.com/Govind-619/ClipCraft/repository"
	"github.com/Govind-619/ClipCraft/services/auth"
	"github.com/Govind-619/ClipCraft/services/payment"
	"github.com/Govind-619/ClipCraft/services/video"
	"github.com/Govind-619/ClipCraft/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKeySecret     = "rzp_secret"
	testWebhookSecret = "whsec_test"
	testAdminEmail    = "admin@example.com"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []utils.Email
	err  error
}

func (m *recordingMailer) Send(e utils.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, e)
	return nil
}

func (m *recordingMailer) emails() []utils.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]utils.Email(nil), m.sent...)
}

type fakeOrders struct {
	mu sync.Mutex
	n  int
}

func (f *fakeOrders) Create(data map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	return map[string]interface{}{
		"id":       fmt.Sprintf("order_HTTP%d", f.n),
		"amount":   float64(data["amount"].(int64)),
		"currency": data["currency"],
	}, nil
}

type testServer struct {
	router *gin.Engine
	auth   *auth.Service
	mailer *recordingMailer
	users  *repository.MemoryUserRepository
}

type serverOption func(*config.Config, *[]video.Provider)

func withBurst(n int) serverOption {
	return func(cfg *config.Config, _ *[]video.Provider) {
		cfg.RateLimitBurst = n
		cfg.RateLimitRPS = 0.001
	}
}

func withProvider(p video.Provider) serverOption {
	return func(_ *config.Config, providers *[]video.Provider) {
		*providers = append(*providers, p)
	}
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Env:            "test",
		SessionSecret:  "test-session-secret",
		BaseURL:        "http://localhost:3000",
		AdminEmail:     testAdminEmail,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}
	var providers []video.Provider
	for _, opt := range opts {
		opt(cfg, &providers)
	}

	mailer := &recordingMailer{}
	users := repository.NewMemoryUserRepository(
		auth.DemoUser(),
		&models.User{ID: "admin", Email: testAdminEmail, Name: "Admin"},
	)
	authService := auth.NewService(users, mailer, cfg.SessionSecret, cfg.BaseURL)
	payments := payment.NewService(payment.Config{
		KeyID:         "rzp_test_key",
		KeySecret:     testKeySecret,
		WebhookSecret: testWebhookSecret,
		BaseURL:       cfg.BaseURL,
	}, repository.NewMemoryOrderRepository(), repository.NewMemoryWebhookEventRepository(repository.DefaultWebhookTTL), users, mailer).
		WithOrderCreator(&fakeOrders{})

	controllers.Setup(&controllers.Dependencies{
		Auth:       authService,
		Video:      video.NewProxy(mailer, providers...),
		Prober:     video.NewProber("", nil, nil),
		Payments:   payments,
		Mailer:     mailer,
		AdminEmail: cfg.AdminEmail,
		BaseURL:    cfg.BaseURL,
	})

	return &testServer{
		router: SetupRouter(cfg, authService),
		auth:   authService,
		mailer: mailer,
		users:  users,
	}
}

func (s *testServer) do(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		payload, _ := json.Marshal(b)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCORSDefaultsToSiteOrigin(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", nil, map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = s.do(http.MethodGet, "/health", nil, map[string]string{"Origin": "https://evil.example"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRegisterEndpoint(t *testing.T) {
	s := newTestServer(t)
	body := gin.H{"email": "new@example.com", "password": "secret1", "name": "New"}

	w := s.do(http.MethodPost, "/api/auth/register", body, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	user := resp["user"].(map[string]interface{})
	assert.Equal(t, "new@example.com", user["email"])
	assert.NotContains(t, user, "password")

	w = s.do(http.MethodPost, "/api/auth/register", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.ErrUserExists, decode(t, w)["error"])

	w = s.do(http.MethodPost, "/api/auth/register", gin.H{"email": "x@example.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])
}

func TestLoginAndSession(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/callback/credentials", gin.H{"email": "demo@example.com", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, utils.ErrInvalidCredentials, decode(t, w)["error"])

	w = s.do(http.MethodPost, "/api/auth/callback/credentials", gin.H{"email": "demo@example.com", "password": "demo123"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode(t, w)
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)

	cookie := w.Header().Get("Set-Cookie")
	require.True(t, strings.HasPrefix(cookie, utils.SessionName+"="), cookie)
	cookiePair := strings.SplitN(cookie, ";", 2)[0]

	w = s.do(http.MethodGet, "/api/auth/session", nil, map[string]string{"Cookie": cookiePair})
	require.Equal(t, http.StatusOK, w.Code)
	session := decode(t, w)
	require.Contains(t, session, "user")
	assert.Equal(t, "demo@example.com", session["user"].(map[string]interface{})["email"])

	w = s.do(http.MethodGet, "/api/auth/session", nil, map[string]string{"Authorization": "Bearer " + token})
	assert.Contains(t, decode(t, w), "user")

	w = s.do(http.MethodGet, "/api/auth/session", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w))

	w = s.do(http.MethodPost, "/api/auth/signout", nil, map[string]string{"Cookie": cookiePair})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPasswordResetFlow(t *testing.T) {
	s := newTestServer(t)
	tokenPattern := regexp.MustCompile(`token=([A-Za-z0-9._-]+)`)

	w := s.do(http.MethodPost, "/api/auth/forgot-password", gin.H{"email": "nobody@example.com"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, utils.MsgResetRequested, decode(t, w)["message"])

	w = s.do(http.MethodPost, "/api/auth/forgot-password", gin.H{"email": "demo@example.com"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, utils.MsgResetRequested, decode(t, w)["message"])

	var token string
	require.Eventually(t, func() bool {
		for _, e := range s.mailer.emails() {
			if m := tokenPattern.FindStringSubmatch(e.HTML); m != nil && e.To == "demo@example.com" {
				token = m[1]
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)

	w = s.do(http.MethodPost, "/api/auth/reset-password", gin.H{"token": token, "password": "fresh-pass"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/auth/login", gin.H{"email": "demo@example.com", "password": "fresh-pass"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/auth/reset-password", gin.H{"token": token, "password": "again-pass"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.ErrInvalidResetToken, decode(t, w)["error"])
}

func TestGenerateVideoEndpoint(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost:
			_ = json.NewEncoder(w).Encode(map[string]string{
				"request_id":   "req1",
				"status":       "COMPLETED",
				"status_url":   srv.URL + "/status",
				"response_url": srv.URL + "/result",
			})
		default:
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"video": map[string]string{"url": "https://cdn.example/v.mp4"}})
		}
	}))
	defer srv.Close()

	s := newTestServer(t, withProvider(video.NewFalProvider(video.FalConfig{
		Key: "k", BaseURL: srv.URL, PollInterval: time.Millisecond,
	})))

	w := s.do(http.MethodPost, "/api/generate-video", gin.H{"mode": "text"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.ErrPromptRequired, decode(t, w)["error"])

	w = s.do(http.MethodPost, "/api/generate-video", gin.H{"mode": "image", "prompt": "x"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/generate-video", gin.H{"mode": "text", "prompt": "a cat surfing"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "https://cdn.example/v.mp4", resp["videoUrl"])
	assert.Equal(t, "veo3.1", resp["metadata"].(map[string]interface{})["model"])

	readyEmailsTo := func(to string) int {
		n := 0
		for _, e := range s.mailer.emails() {
			if e.To == to && strings.Contains(e.Subject, "Video is Ready") {
				n++
			}
		}
		return n
	}

	// an address in the body is never used, with or without a session
	w = s.do(http.MethodPost, "/api/generate-video",
		gin.H{"mode": "text", "prompt": "a cat", "notify": true, "notifyEmail": "victim@example.com"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	token, err := s.auth.IssueToken(auth.DemoUser())
	require.NoError(t, err)
	w = s.do(http.MethodPost, "/api/generate-video",
		gin.H{"mode": "text", "prompt": "a cat", "notify": true, "notifyEmail": "victim@example.com"},
		map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Eventually(t, func() bool { return readyEmailsTo("demo@example.com") == 1 }, time.Second, 10*time.Millisecond)
	assert.Never(t, func() bool { return readyEmailsTo("victim@example.com") > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestGenerateVideoNotConfigured(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodPost, "/api/generate-video", gin.H{"mode": "text", "prompt": "a cat"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, utils.ErrServiceNotConfigured, resp["error"])
	assert.Contains(t, resp, "instructions")
}

func TestTestFalWithoutKey(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/test-fal", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/contact", gin.H{"name": "Ann", "email": "ann@example.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/contact", gin.H{
		"name": "Ann", "email": "ann@example.com", "subject": "Hello", "message": "line one\nline <two>",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	sent := s.mailer.emails()
	require.Len(t, sent, 2)
	assert.Equal(t, testAdminEmail, sent[0].To)
	assert.Equal(t, "Contact Form: Hello", sent[0].Subject)
	assert.Contains(t, sent[0].HTML, "line one<br>line &lt;two&gt;")
	assert.Equal(t, "ann@example.com", sent[1].To)

	s.mailer.err = errors.New("smtp down")
	w = s.do(http.MethodPost, "/api/contact", gin.H{
		"name": "Ann", "email": "ann@example.com", "subject": "Hello", "message": "hi",
	}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPaymentFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/payment/create-order", gin.H{"planId": "pro", "userId": "1"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/payment/create-order", gin.H{"planId": "pro", "amount": 49900, "userId": "1"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode(t, w)
	orderID := created["orderId"].(string)
	assert.Equal(t, "INR", created["currency"])

	paymentID := "pay_HTTP"
	signature := payment.ComputeSignature(testKeySecret, payment.PaymentSignaturePayload(orderID, paymentID))
	mutated := "0" + signature[1:]
	if signature[0] == '0' {
		mutated = "1" + signature[1:]
	}
	w = s.do(http.MethodPost, "/api/payment/verify", gin.H{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
		"razorpay_signature":  mutated,
		"planId":              "pro",
		"userId":              "1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.ErrPaymentVerification, decode(t, w)["error"])

	w = s.do(http.MethodPost, "/api/payment/verify", gin.H{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
		"razorpay_signature":  signature,
		"planId":              "pro",
		"userId":              "1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, paymentID, decode(t, w)["paymentId"])
}

func TestWebhookEndpoint(t *testing.T) {
	s := newTestServer(t)
	body := `{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_W","amount":100}}}}`

	w := s.do(http.MethodPost, "/api/payment/webhook", body, map[string]string{utils.WebhookSignatureHeader: "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.ErrInvalidSignature, decode(t, w)["error"])

	headers := map[string]string{
		utils.WebhookSignatureHeader: payment.ComputeSignature(testWebhookSecret, []byte(body)),
		utils.WebhookEventIDHeader:   "evt_http",
	}
	w = s.do(http.MethodPost, "/api/payment/webhook", body, headers)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["received"])

	w = s.do(http.MethodPost, "/api/payment/webhook", body, headers)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payment.WebhookDuplicate, decode(t, w)["outcome"])
}

func TestPlansEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/plans", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	plans := decode(t, w)["plans"].([]interface{})
	assert.Len(t, plans, 3)
}

func TestAdminExport(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/admin/payments/export", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	demoToken, err := s.auth.IssueToken(auth.DemoUser())
	require.NoError(t, err)
	w = s.do(http.MethodGet, "/api/admin/payments/export", nil, map[string]string{"Authorization": "Bearer " + demoToken})
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := s.auth.IssueToken(&models.User{ID: "admin", Email: testAdminEmail, Name: "Admin"})
	require.NoError(t, err)
	w = s.do(http.MethodGet, "/api/admin/payments/export", nil, map[string]string{"Authorization": "Bearer " + adminToken})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotEmpty(t, w.Body.Bytes())

	w = s.do(http.MethodGet, "/api/admin/payments?page=1&limit=5", nil, map[string]string{"Authorization": "Bearer " + adminToken})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.NotNil(t, resp["payments"])
	pagination := resp["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["page"])
	assert.Equal(t, float64(5), pagination["limit"])
}

func TestRateLimitedRoutes(t *testing.T) {
	s := newTestServer(t, withBurst(1))
	body := gin.H{"name": "Ann", "email": "ann@example.com", "subject": "Hi", "message": "hello"}

	w := s.do(http.MethodPost, "/api/contact", body, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/contact", body, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, utils.ErrTooManyRequests, decode(t, w)["error"])

	// unlimited routes are unaffected
	w = s.do(http.MethodGet, "/api/plans", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
