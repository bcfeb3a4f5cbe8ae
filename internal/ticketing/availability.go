package ticketing

import "github.com/mfadhli/eventra/internal/models"

// Available returns how many tickets are still bookable across all of the
// event's tiers. It never mutates the event and is cheap enough for
// listing pages.
func Available(e *models.Event) int {
	total := 0
	for _, tier := range e.Tiers {
		total += tier.Quantity - tier.Sold
	}
	return total
}

// TierAvailable returns the remaining allotment for a single tier.
func TierAvailable(t *models.TicketTier) int {
	return t.Quantity - t.Sold
}

// FlatCounters is the legacy single-price event shape. Older clients read
// ticket_price, total_tickets and available_tickets off the event itself;
// those fields are derived here at serialization time and never stored.
type FlatCounters struct {
	TicketPrice      int `json:"ticket_price"`
	TotalTickets     int `json:"total_tickets"`
	AvailableTickets int `json:"available_tickets"`
}

// Flatten derives the legacy counters from the tier list. The legacy price
// is the first tier's price, matching the old default-tier behavior.
func Flatten(e *models.Event) FlatCounters {
	flat := FlatCounters{}
	if len(e.Tiers) > 0 {
		flat.TicketPrice = e.Tiers[0].Price
	}
	for _, tier := range e.Tiers {
		flat.TotalTickets += tier.Quantity
		flat.AvailableTickets += tier.Quantity - tier.Sold
	}
	return flat
}
