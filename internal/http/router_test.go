package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tourmate/internal/audit"
	"tourmate/internal/http/handlers"
	"tourmate/internal/repositories"
	"tourmate/internal/services"
	"tourmate/internal/storage/csvstore"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gw, err := csvstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("csv store: %v", err)
	}
	store := repositories.NewStore(gw)
	if err := store.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	seeder := services.AuthService{Store: store, Audit: audit.NopSink{}, JWTSecret: "test-secret"}
	if err := seeder.EnsureDefaultAdmin("bootpass"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	handler := handlers.Handler{
		Store:        store,
		Audit:        audit.NopSink{},
		JWTSecret:    "test-secret",
		TripDuration: time.Hour,
	}
	return NewRouter(handler, nil)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"username": "admin", "password": "bootpass"})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return resp.Token
}

func TestHealthIsPublic(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAnonymousRequestsGet401(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/customers", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestBookingFlowOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/customers", token, gin.H{
		"name": "Ana Cruz", "email": "ana@x.com", "phone": "0812",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create customer: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/vehicles", token, gin.H{
		"vehicleId": "V1", "model": "Hiace", "farePerKm": 2.0,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create vehicle: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/bookings", token, gin.H{
		"customerId": "CU1", "vehicleId": "V1",
		"fromLocation": "Leeds", "toLocation": "York",
		"departureTime": "2024-03-02 08:00:00",
		"tripType":      "One Way", "passengers": 2,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create booking: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/bookings/BK1/confirm", token, gin.H{"paymentMethod": "Credit Card"})
	if w.Code != http.StatusOK {
		t.Fatalf("confirm: %d %s", w.Code, w.Body.String())
	}

	// Unknown status transition maps to 400.
	w = doJSON(t, r, http.MethodPost, "/api/bookings/BK1/confirm", token, gin.H{"paymentMethod": "Cash"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("double confirm: %d, want 400", w.Code)
	}

	// Missing booking maps to 404.
	w = doJSON(t, r, http.MethodPost, "/api/bookings/BK99/confirm", token, gin.H{"paymentMethod": "Cash"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing booking: %d, want 404", w.Code)
	}

	// Overlapping create maps to 409.
	w = doJSON(t, r, http.MethodPost, "/api/bookings", token, gin.H{
		"customerId": "CU1", "vehicleId": "V1",
		"fromLocation": "Leeds", "toLocation": "York",
		"departureTime": "2024-03-02 08:30:00",
		"tripType":      "One Way", "passengers": 1,
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("overlap: %d, want 409", w.Code)
	}
}

func TestReceiptStreamsPDF(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	doJSON(t, r, http.MethodPost, "/api/customers", token, gin.H{"name": "Ana", "email": "a@x", "phone": "1"})
	doJSON(t, r, http.MethodPost, "/api/vehicles", token, gin.H{"vehicleId": "V1", "model": "Hiace", "farePerKm": 2.0})
	doJSON(t, r, http.MethodPost, "/api/bookings", token, gin.H{
		"customerId": "CU1", "vehicleId": "V1", "fromLocation": "A", "toLocation": "B",
		"departureTime": "2024-03-02 08:00:00", "tripType": "One Way", "passengers": 1,
	})
	doJSON(t, r, http.MethodPost, "/api/bookings/BK1/confirm", token, gin.H{"paymentMethod": "Cash"})
	doJSON(t, r, http.MethodPost, "/api/bookings/BK1/start", token, nil)
	doJSON(t, r, http.MethodPost, "/api/bookings/BK1/complete", token, gin.H{})

	w := doJSON(t, r, http.MethodGet, "/api/bookings/BK1/receipt", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("receipt: %d %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
}
