package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mfadhli/eventra/internal/helpers"
	"github.com/mfadhli/eventra/internal/models"
	"github.com/mfadhli/eventra/internal/ticketing"
)

type EventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Location    string `json:"location" binding:"required"`
	ImageURL    string `json:"image_url"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Date        string `json:"date"`
	StartAt     string `json:"start_at"`
	EndAt       string `json:"end_at"`
}

type TierRequest struct {
	Name     string `json:"name" binding:"required"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity" binding:"required"`
}

type SetTicketsRequest struct {
	Tickets []TierRequest `json:"tickets" binding:"required"`
}

type TierResponse struct {
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
	Sold      int    `json:"sold"`
	Available int    `json:"available"`
}

// EventResponse carries the tier list plus the derived legacy counters so
// older clients keep reading ticket_price/total_tickets/available_tickets
// off the event itself.
type EventResponse struct {
	ID               uuid.UUID      `json:"id"`
	OrganizerID      uuid.UUID      `json:"organizer_id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Category         string         `json:"category"`
	Location         string         `json:"location"`
	ImageURL         string         `json:"image_url,omitempty"`
	StartTime        time.Time      `json:"start_time"`
	EndTime          time.Time      `json:"end_time"`
	Status           string         `json:"status"`
	Tickets          []TierResponse `json:"tickets"`
	TicketPrice      int            `json:"ticket_price"`
	TotalTickets     int            `json:"total_tickets"`
	AvailableTickets int            `json:"available_tickets"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func newEventResponse(event *models.Event) EventResponse {
	tickets := make([]TierResponse, 0, len(event.Tiers))
	for i := range event.Tiers {
		tier := &event.Tiers[i]
		tickets = append(tickets, TierResponse{
			Name:      tier.Name,
			Price:     tier.Price,
			Quantity:  tier.Quantity,
			Sold:      tier.Sold,
			Available: ticketing.TierAvailable(tier),
		})
	}
	flat := ticketing.Flatten(event)
	return EventResponse{
		ID:               event.ID,
		OrganizerID:      event.OrganizerID,
		Title:            event.Title,
		Description:      event.Description,
		Category:         event.Category,
		Location:         event.Location,
		ImageURL:         event.ImageURL,
		StartTime:        event.StartTime,
		EndTime:          event.EndTime,
		Status:           event.Status,
		Tickets:          tickets,
		TicketPrice:      flat.TicketPrice,
		TotalTickets:     flat.TotalTickets,
		AvailableTickets: flat.AvailableTickets,
		CreatedAt:        event.CreatedAt,
		UpdatedAt:        event.UpdatedAt,
	}
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ticketing.ErrEventNotFound),
		errors.Is(err, ticketing.ErrTierNotFound),
		errors.Is(err, ticketing.ErrBookingNotFound):
		helpers.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ticketing.ErrNotOwner):
		helpers.RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ticketing.ErrValidation),
		errors.Is(err, ticketing.ErrNotBookable),
		errors.Is(err, ticketing.ErrInvalidQuantity),
		errors.Is(err, ticketing.ErrInsufficientInventory),
		errors.Is(err, ticketing.ErrNoTickets),
		errors.Is(err, ticketing.ErrAlreadyPublished),
		errors.Is(err, ticketing.ErrEventPublished):
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		slog.Error("ticketing operation failed", "error", err, "path", c.FullPath())
		helpers.RespondWithError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

func CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	startTime, endTime, err := helpers.ParseSchedule(req.StartTime, req.EndTime, req.Date, req.StartAt, req.EndAt)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
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

	event, err := service.CreateEvent(c.Request.Context(), userID.(uuid.UUID), ticketing.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		StartTime:   startTime,
		EndTime:     endTime,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully.",
		"event":   newEventResponse(event),
	})
}

func GetEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	svc, exists := c.Get("ticketing")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}
	service := svc.(*ticketing.Service)

	event, err := service.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newEventResponse(event))
}

func ListEvents(c *gin.Context) {
	svc, exists := c.Get("ticketing")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}
	service := svc.(*ticketing.Service)

	pageNum, err := helpers.StringToInt(c.DefaultQuery("page", "1"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return
	}
	limitNum, err := helpers.StringToInt(c.DefaultQuery("limit", "10"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
		return
	}
	if pageNum < 1 {
		pageNum = 1
	}
	if limitNum < 1 {
		limitNum = 10
	}

	events, total, err := service.ListEvents(c.Request.Context(), ticketing.EventFilter{
		Search:   c.Query("search"),
		Location: c.Query("location"),
		Category: c.Query("category"),
		Page:     pageNum,
		Limit:    limitNum,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, newEventResponse(&events[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"events":      responses,
		"total":       total,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (total + int64(limitNum) - 1) / int64(limitNum),
	})
}

func SetTickets(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	var req SetTicketsRequest
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

	tiers := make([]ticketing.TierInput, 0, len(req.Tickets))
	for _, tier := range req.Tickets {
		tiers = append(tiers, ticketing.TierInput{
			Name:     tier.Name,
			Price:    tier.Price,
			Quantity: tier.Quantity,
		})
	}

	event, err := service.SetTickets(c.Request.Context(), eventID, userID.(uuid.UUID), tiers)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tickets updated successfully.",
		"event":   newEventResponse(event),
	})
}

func PublishEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
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

	event, err := service.Publish(c.Request.Context(), eventID, userID.(uuid.UUID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event published successfully.",
		"event":   newEventResponse(event),
	})
}
