package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Booking QR payloads carry the ids in clear plus an HMAC so the organizer
// side can verify them offline: "booking:<id>;event:<id>;signature:<hex>".

func BookingSignature(bookingID, eventID, userID uuid.UUID) string {
	data := fmt.Sprintf("%s:%s:%s", bookingID.String(), eventID.String(), userID.String())
	h := hmac.New(sha256.New, []byte(os.Getenv("JWT_SECRET")))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func EncodeBookingQR(bookingID, eventID, userID uuid.UUID) string {
	return fmt.Sprintf("booking:%s;event:%s;signature:%s",
		bookingID.String(),
		eventID.String(),
		BookingSignature(bookingID, eventID, userID),
	)
}

func ExtractBookingID(qrData string) (uuid.UUID, error) {
	parts := strings.Split(qrData, ";")
	if len(parts) != 3 || !strings.HasPrefix(parts[0], "booking:") || !strings.HasPrefix(parts[2], "signature:") {
		return uuid.Nil, fmt.Errorf("invalid QR data format")
	}
	return uuid.Parse(strings.TrimPrefix(parts[0], "booking:"))
}

func ValidBookingQR(qrData string, bookingID, eventID, userID uuid.UUID) bool {
	parts := strings.Split(qrData, ";")
	if len(parts) != 3 || !strings.HasPrefix(parts[2], "signature:") {
		return false
	}
	signature := strings.TrimPrefix(parts[2], "signature:")
	expected := BookingSignature(bookingID, eventID, userID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
