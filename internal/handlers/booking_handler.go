package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/mfadhli/eventra/internal/helpers"
	"github.com/mfadhli/eventra/internal/ticketing"
)

type BookingRequest struct {
	Quantity int    `json:"quantity" binding:"required"`
	TierName string `json:"tier_name"`
}

type ValidateTicketRequest struct {
	QRData string `json:"qr_data" binding:"required"`
}

func CreateBooking(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	svc, exists := c.Get("ticketing")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}
	service := svc.(*ticketing.Service)

	booking, event, err := service.PlaceBooking(c.Request.Context(), eventID, userID.(uuid.UUID), req.Quantity, req.TierName)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking confirmed.",
		"booking": booking,
		"event":   newEventResponse(event),
	})
}

func ListMyBookings(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	svc, exists := c.Get("ticketing")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}
	service := svc.(*ticketing.Service)

	bookings, err := service.ListUserBookings(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func GenerateBookingQR(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	svc, exists := c.Get("ticketing")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}
	service := svc.(*ticketing.Service)

	booking, err := service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if booking.UserID != userID.(uuid.UUID) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to generate a QR code for this booking.")
		return
	}

	qrData := helpers.EncodeBookingQR(booking.ID, booking.EventID, booking.UserID)
	qrImage, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

// ValidateBooking lets the organizer check a scanned QR code at the door.
// It verifies the signature and that the caller organizes the event; it
// does not change booking state.
func ValidateBooking(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var req ValidateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	bookingID, err := helpers.ExtractBookingID(req.QRData)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid QR code format.")
		return
	}

	svc, exists := c.Get("ticketing")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}
	service := svc.(*ticketing.Service)

	booking, err := service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !helpers.ValidBookingQR(req.QRData, booking.ID, booking.EventID, booking.UserID) {
		helpers.RespondWithError(c, http.StatusForbidden, "Invalid QR code signature.")
		return
	}

	event, err := service.GetEvent(c.Request.Context(), booking.EventID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if event.OrganizerID != userID.(uuid.UUID) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to validate this ticket.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket is valid.",
		"ticket": gin.H{
			"event_title": event.Title,
			"tier_name":   booking.TierName,
			"quantity":    booking.Quantity,
			"status":      booking.Status,
		},
	})
}
