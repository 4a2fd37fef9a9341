package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cleaning-crm/controllers"
	"cleaning-crm/models"
	"cleaning-crm/services"
)

var testSecret = []byte("test-secret")

type stubCalendar struct{}

func (stubCalendar) CreateEvent(ctx context.Context, input services.EventInput, customer models.Customer) (*services.CalendarEvent, error) {
	return &services.CalendarEvent{ID: "evt-1", HTMLLink: "https://calendar.google.com/event?eid=evt-1"}, nil
}

func (stubCalendar) BusyIntervals(ctx context.Context, from, to time.Time) ([]services.BusyInterval, error) {
	return nil, nil
}

func (stubCalendar) EmbedURL() string {
	return "https://calendar.google.com/calendar/embed?src=test"
}

type stubMailer struct{}

func (stubMailer) SendBookingConfirmation(models.Booking, string) (string, error) { return "<html>", nil }
func (stubMailer) SendReminder(models.Booking) error                             { return nil }
func (stubMailer) Send(string, string, string) error                             { return nil }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Admin{}, &models.Setting{}, &models.Customer{},
		&models.Booking{}, &models.ServiceItem{}, &models.Communication{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admin := models.Admin{FullName: "Admin", Email: "admin@example.com", Password: string(hash)}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	cal := stubCalendar{}
	mailer := stubMailer{}
	loc := time.UTC

	bookingSvc := services.NewBookingService(db, cal, mailer, loc)
	return SetupRouter(
		controllers.NewBookingController(bookingSvc),
		controllers.NewAvailabilityController(cal, loc),
		controllers.NewCustomerController(services.NewCustomerService(db)),
		controllers.NewFinanceController(services.NewFinanceService(db)),
		controllers.NewCommunicationController(services.NewCommunicationService(db, mailer)),
		controllers.NewAuthController(services.NewAuthService(db, testSecret)),
		controllers.NewSettingsController(services.NewSettingsService(db)),
		loc,
		testSecret,
	)
}

func doRequest(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
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
	w := doRequest(r, http.MethodPost, "/api/auth/login",
		`{"email":"admin@example.com","password":"hunter2"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login returned an empty token")
	}
	return resp.Token
}

func TestHealthIsOpen(t *testing.T) {
	r := newTestRouter(t)
	w := doRequest(r, http.MethodGet, "/api/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"OK"`) {
		t.Errorf("body %s", w.Body.String())
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{
		"/api/bookings",
		"/api/customers",
		"/api/finances/overview",
		"/api/communications",
		"/api/settings",
		"/api/calendar-url",
	} {
		w := doRequest(r, http.MethodGet, path, "", "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status %d, want 401", path, w.Code)
		}
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	r := newTestRouter(t)
	w := doRequest(r, http.MethodPost, "/api/auth/login",
		`{"email":"admin@example.com","password":"wrong"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}

func TestLoginTokenUnlocksProtectedRoutes(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doRequest(r, http.MethodGet, "/api/bookings", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/bookings with token: status %d: %s", w.Code, w.Body.String())
	}
}

func TestAvailabilityIsOpen(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/availability/2026-09-02", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var slots []services.TimeSlot
	if err := json.Unmarshal(w.Body.Bytes(), &slots); err != nil {
		t.Fatalf("decode slots: %v", err)
	}
	if len(slots) != 8 {
		t.Errorf("got %d slots, want 8", len(slots))
	}

	w = doRequest(r, http.MethodGet, "/api/availability/not-a-date", "", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date: status %d, want 400", w.Code)
	}
}

func TestCreateBookingIsOpenAndValidated(t *testing.T) {
	r := newTestRouter(t)

	start := nextWeekdayMorning().Format(time.RFC3339)
	body := `{
		"area": 85,
		"dateTime": "` + start + `",
		"customerDetails": {"name":"Grace","email":"grace@example.com","phone":"+44 20 7946 0958","address":"1 Navy Way"},
		"price": 120,
		"cleaningType": "Home",
		"duration": 2,
		"serviceItems": [{"name":"Window cleaning"}]
	}`

	w := doRequest(r, http.MethodPost, "/api/bookings", body, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Booking created successfully!") {
		t.Errorf("body %s", w.Body.String())
	}

	// The validator runs before the handler.
	w = doRequest(r, http.MethodPost, "/api/bookings", `{"area": 85}`, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid payload: status %d, want 400", w.Code)
	}
}

// nextWeekdayMorning picks the next weekday at 10:00 UTC at least two days
// out, so the slot is always inside business hours and in the future.
func nextWeekdayMorning() time.Time {
	t := time.Now().UTC().AddDate(0, 0, 2)
	for t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		t = t.AddDate(0, 0, 1)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 10, 0, 0, 0, time.UTC)
}
