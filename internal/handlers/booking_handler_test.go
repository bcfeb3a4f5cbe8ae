package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfadhli/eventra/internal/handlers"
	"github.com/mfadhli/eventra/internal/helpers"
	"github.com/mfadhli/eventra/internal/middleware"
	"github.com/mfadhli/eventra/internal/models"
	"github.com/mfadhli/eventra/internal/testutil"
	"github.com/mfadhli/eventra/internal/ticketing"
)

// newTestRouter wires the real routes against an in-memory store, with the
// authenticated user injected the same way the JWT middleware would.
func newTestRouter(svc *ticketing.Service, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.TicketingMiddleware(svc))
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.GET("/v1/events", handlers.ListEvents)
	r.GET("/v1/events/:id", handlers.GetEvent)
	r.POST("/v1/events", handlers.CreateEvent)
	r.PUT("/v1/events/:id/tickets", handlers.SetTickets)
	r.PUT("/v1/events/:id/publish", handlers.PublishEvent)
	r.POST("/v1/events/:id/bookings", handlers.CreateBooking)
	r.GET("/v1/bookings", handlers.ListMyBookings)
	r.GET("/v1/bookings/:id/qr", handlers.GenerateBookingQR)
	r.POST("/v1/bookings/validate", handlers.ValidateBooking)
	return r
}

func seedPublishedEvent(store *testutil.MemStore, organizerID uuid.UUID, tiers ...models.TicketTier) *models.Event {
	for i := range tiers {
		tiers[i].ID = uuid.New()
		tiers[i].Position = i
	}
	event := &models.Event{
		ID:          uuid.New(),
		OrganizerID: organizerID,
		Title:       "Go Meetup",
		Description: "Talks and pizza",
		Category:    "tech",
		Location:    "Jakarta",
		StartTime:   time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 10, 1, 21, 0, 0, 0, time.UTC),
		Status:      models.EventPublished,
		Tiers:       tiers,
	}
	return store.SeedEvent(event)
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBookingEndpoint(t *testing.T) {
	store := testutil.NewMemStore()
	svc := ticketing.NewService(store)
	attendee := uuid.New()
	event := seedPublishedEvent(store, uuid.New(),
		models.TicketTier{Name: "GA", Price: 10, Quantity: 5})
	r := newTestRouter(svc, attendee)

	w := doJSON(r, http.MethodPost, "/v1/events/"+event.ID.String()+"/bookings",
		gin.H{"quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Booking models.Booking         `json:"booking"`
		Event   handlers.EventResponse `json:"event"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 20, resp.Booking.TotalAmount)
	assert.Equal(t, "confirmed", resp.Booking.Status)
	assert.Equal(t, attendee, resp.Booking.UserID)
	assert.Equal(t, 3, resp.Event.AvailableTickets)
	assert.Equal(t, 5, resp.Event.TotalTickets)
}

func TestCreateBookingOversell(t *testing.T) {
	store := testutil.NewMemStore()
	svc := ticketing.NewService(store)
	event := seedPublishedEvent(store, uuid.New(),
		models.TicketTier{Name: "GA", Price: 10, Quantity: 2})
	r := newTestRouter(svc, uuid.New())

	w := doJSON(r, http.MethodPost, "/v1/events/"+event.ID.String()+"/bookings",
		gin.H{"quantity": 3})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp helpers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ticketing.ErrInsufficientInventory.Error(), resp.Error)
}

func TestCreateBookingDraftEvent(t *testing.T) {
	store := testutil.NewMemStore()
	svc := ticketing.NewService(store)
	event := seedPublishedEvent(store, uuid.New(),
		models.TicketTier{Name: "GA", Price: 10, Quantity: 5})
	event.Status = models.EventDraft
	store.SeedEvent(event)
	r := newTestRouter(svc, uuid.New())

	w := doJSON(r, http.MethodPost, "/v1/events/"+event.ID.String()+"/bookings",
		gin.H{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingUnknownEvent(t *testing.T) {
	svc := ticketing.NewService(testutil.NewMemStore())
	r := newTestRouter(svc, uuid.New())

	w := doJSON(r, http.MethodPost, "/v1/events/"+uuid.NewString()+"/bookings",
		gin.H{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPost, "/v1/events/not-a-uuid/bookings",
		gin.H{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMyBookingsEndpoint(t *testing.T) {
	store := testutil.NewMemStore()
	svc := ticketing.NewService(store)
	attendee := uuid.New()
	event := seedPublishedEvent(store, uuid.New(),
		models.TicketTier{Name: "GA", Price: 10, Quantity: 5})
	_, _, err := svc.PlaceBooking(context.Background(), event.ID, attendee, 2, "")
	require.NoError(t, err)
	r := newTestRouter(svc, attendee)

	w := doJSON(r, http.MethodGet, "/v1/bookings", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Bookings []models.Booking `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, 20, resp.Bookings[0].TotalAmount)
}

func TestBookingQRRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	store := testutil.NewMemStore()
	svc := ticketing.NewService(store)
	organizer := uuid.New()
	attendee := uuid.New()
	event := seedPublishedEvent(store, organizer,
		models.TicketTier{Name: "GA", Price: 10, Quantity: 5})
	booking, _, err := svc.PlaceBooking(context.Background(), event.ID, attendee, 1, "")
	require.NoError(t, err)

	attendeeRouter := newTestRouter(svc, attendee)
	w := doJSON(attendeeRouter, http.MethodGet, "/v1/bookings/"+booking.ID.String()+"/qr", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	qrData := helpers.EncodeBookingQR(booking.ID, booking.EventID, booking.UserID)

	organizerRouter := newTestRouter(svc, organizer)
	w = doJSON(organizerRouter, http.MethodPost, "/v1/bookings/validate", gin.H{"qr_data": qrData})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Someone who doesn't organize the event can't validate its tickets.
	strangerRouter := newTestRouter(svc, uuid.New())
	w = doJSON(strangerRouter, http.MethodPost, "/v1/bookings/validate", gin.H{"qr_data": qrData})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A stranger can't pull someone else's QR code either.
	w = doJSON(strangerRouter, http.MethodGet, "/v1/bookings/"+booking.ID.String()+"/qr", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
