// Package queue defines message payloads exchanged over the message
// broker and the background consumer that delivers guest email.
package queue

// BookingConfirmedEvent is published when a booking reaches CONFIRMED.
// It carries everything the consumer needs to email the guest without
// touching the primary database.
type BookingConfirmedEvent struct {
	BookingID        uint64 `json:"booking_id"`
	Reference        string `json:"reference"`
	UserID           uint64 `json:"user_id"`
	GuestName        string `json:"guest_name"`
	GuestEmail       string `json:"guest_email"`
	ListingID        uint64 `json:"listing_id"`
	ListingName      string `json:"listing_name"`
	LocationName     string `json:"location_name"`
	ResourceName     string `json:"resource_name"`
	CheckIn          string `json:"check_in"`
	CheckOut         string `json:"check_out"`
	Units            uint32 `json:"units"`
	Guests           uint32 `json:"guests"`
	TotalAmountCents uint32 `json:"total_amount_cents"`
	ConfirmedAt      string `json:"confirmed_at"`
}
