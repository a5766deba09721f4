package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	controller "go-restaurant-booking/controllers"
	"go-restaurant-booking/helpers"
	"go-restaurant-booking/models"
	"go-restaurant-booking/repository"
	"go-restaurant-booking/repository/memory"
	"go-restaurant-booking/services"

	"github.com/gin-gonic/gin"
)

type server struct {
	t      *testing.T
	router http.Handler
	store  *repository.Store
	token  string
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	tokens := helpers.NewTokenHelper("test-secret", time.Hour)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := services.New(store, tokens, services.Options{
		Logger: logger,
		Now:    func() time.Time { return now },
	})
	router := gin.New()
	Register(router, controller.New(svc, nil, nil, logger), tokens)
	return &server{t: t, router: router, store: store}
}

func (s *server) do(method, path string, body interface{}, auth bool) (int, map[string]interface{}) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	var out map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			s.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code, out
}

func (s *server) signIn() {
	s.t.Helper()
	code, _ := s.do(http.MethodPost, "/users/signup", map[string]string{
		"fullname":    "Staff Member",
		"email":       "staff@example.com",
		"password":    "secret123",
		"phoneNumber": "0900000000",
		"role":        "STAFF",
	}, false)
	if code != http.StatusCreated {
		s.t.Fatalf("signup status %d", code)
	}
	code, body := s.do(http.MethodPost, "/users/login", map[string]string{
		"email":    "staff@example.com",
		"password": "secret123",
	}, false)
	if code != http.StatusOK {
		s.t.Fatalf("login status %d: %v", code, body)
	}
	s.token = body["data"].(map[string]interface{})["token"].(string)
}

func TestBookingFlow(t *testing.T) {
	s := newServer(t)
	s.signIn()

	if code, _ := s.do(http.MethodPost, "/tables", map[string]interface{}{"tableNumber": "A1", "capacity": 4}, false); code != http.StatusUnauthorized {
		t.Fatalf("anonymous table create: status %d", code)
	}
	code, body := s.do(http.MethodPost, "/tables", map[string]interface{}{"tableNumber": "A1", "capacity": 4}, true)
	if code != http.StatusCreated {
		t.Fatalf("create table: %d %v", code, body)
	}
	tableID := body["data"].(map[string]interface{})["_id"].(string)

	dish := &models.Dish{Name: "Pho", Price: 50000, IsAvailable: true}
	if err := s.store.Dishes.Create(context.Background(), dish); err != nil {
		t.Fatalf("seed dish: %v", err)
	}

	booking := map[string]interface{}{
		"tableId":      tableID,
		"bookingDate":  "2025-03-10",
		"startTime":    "18:00",
		"name":         "Guest",
		"email":        "guest@example.com",
		"contactPhone": "0911111111",
		"dishes":       []map[string]interface{}{{"dishId": dish.ID.Hex(), "quantity": 2}},
	}
	code, body = s.do(http.MethodPost, "/bookings", booking, false)
	if code != http.StatusCreated {
		t.Fatalf("create booking: %d %v", code, body)
	}
	bookingID := body["bookingId"].(string)

	booking["startTime"] = "22:59"
	code, body = s.do(http.MethodPost, "/bookings", booking, false)
	if code != http.StatusBadRequest || body["message"] != services.ErrAlreadyBooked {
		t.Fatalf("double booking: %d %v", code, body)
	}

	check := map[string]string{"tableId": tableID, "bookingDate": "2025-03-10", "startTime": "20:00"}
	if code, body := s.do(http.MethodPost, "/bookings/check-table", check, false); code != http.StatusBadRequest || body["isAvailable"] != false {
		t.Fatalf("check busy table: %d %v", code, body)
	}
	check["startTime"] = "23:00"
	if code, body := s.do(http.MethodPost, "/bookings/check-table", check, false); code != http.StatusOK || body["isAvailable"] != true {
		t.Fatalf("check free table: %d %v", code, body)
	}

	code, body = s.do(http.MethodGet, "/bookings/available-tables?bookingDate=2025-03-10&startTime=19:00", nil, false)
	if code != http.StatusOK {
		t.Fatalf("available tables: %d %v", code, body)
	}
	tables := body["data"].([]interface{})
	if len(tables) != 1 || tables[0].(map[string]interface{})["isAvailable"] != false {
		t.Fatalf("table A1 should be reported busy: %v", tables)
	}

	if code, _ := s.do(http.MethodGet, "/bookings/"+bookingID, nil, false); code != http.StatusOK {
		t.Fatalf("get booking: %d", code)
	}
	if code, _ := s.do(http.MethodGet, "/bookings/not-an-id", nil, false); code != http.StatusBadRequest {
		t.Fatalf("malformed id: %d", code)
	}
	if code, _ := s.do(http.MethodGet, "/bookings/65f000000000000000000000", nil, false); code != http.StatusNotFound {
		t.Fatalf("unknown id: %d", code)
	}

	code, body = s.do(http.MethodPut, "/bookings/"+bookingID+"/confirm", nil, false)
	if code != http.StatusOK {
		t.Fatalf("confirm: %d %v", code, body)
	}
	if total := body["data"].(map[string]interface{})["totalBill"].(float64); total != 100000 {
		t.Fatalf("total bill = %v", total)
	}
	if code, _ := s.do(http.MethodPut, "/bookings/"+bookingID+"/confirm", nil, false); code != http.StatusBadRequest {
		t.Fatalf("second confirm: %d", code)
	}

	if code, _ := s.do(http.MethodGet, "/reservations", nil, false); code != http.StatusUnauthorized {
		t.Fatalf("anonymous reservations: %d", code)
	}
	code, body = s.do(http.MethodGet, "/reservations/staff", nil, true)
	if code != http.StatusOK || len(body["data"].([]interface{})) != 1 {
		t.Fatalf("staff reservations: %d %v", code, body)
	}
	code, body = s.do(http.MethodGet, "/reservations/filter?searchText=nobody", nil, true)
	if code != http.StatusOK || len(body["data"].([]interface{})) != 0 {
		t.Fatalf("filtered reservations: %d %v", code, body)
	}

	code, body = s.do(http.MethodPost, "/orders", map[string]interface{}{"bookingId": bookingID, "paymentMethod": "cash"}, false)
	if code != http.StatusCreated || body["data"].(map[string]interface{})["paymentStatus"] != "Pending" {
		t.Fatalf("create order: %d %v", code, body)
	}
}

func TestGetDishesRejectsBadFlag(t *testing.T) {
	s := newServer(t)
	if code, _ := s.do(http.MethodGet, "/bookings/get-dishes?isAvailable=maybe", nil, false); code != http.StatusBadRequest {
		t.Fatalf("status %d", code)
	}
	code, body := s.do(http.MethodGet, "/dishes?page=2&limit=5", nil, false)
	if code != http.StatusOK || body["currentPage"].(float64) != 2 {
		t.Fatalf("dish page: %d %v", code, body)
	}
}

func TestCreateBookingWithInvalidToken(t *testing.T) {
	s := newServer(t)
	s.token = "garbage"
	if code, _ := s.do(http.MethodPost, "/bookings", map[string]string{}, true); code != http.StatusUnauthorized {
		t.Fatalf("status %d", code)
	}
}
