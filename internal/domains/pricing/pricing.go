// Package pricing holds the rate arithmetic for stays. Everything here is
// pure so both the wizard and the booking flow price a stay the same way.
package pricing

import "time"

const (
	airportPickupCharge     = 50
	breakfastChargePerGuest = 15
	lateCheckoutCharge      = 30
)

// Extras are the optional add-on services a guest can attach to a stay.
type Extras struct {
	AirportPickup bool `json:"airport_pickup"`
	Breakfast     bool `json:"breakfast"`
	LateCheckout  bool `json:"late_checkout"`
}

// Quote computes the amount charged at confirmation time. The base is the
// full nightly rate times the number of nights; the discount only affects
// the advertised rate (see DisplayRate), never the confirmed total. Keeping
// that policy in this one function makes it a one-line change if product
// decides the discount should carry through to checkout.
func Quote(nightlyPrice float64, nights, guestCount int, discountPercent float64, extras Extras) float64 {
	total := nightlyPrice * float64(nights)

	if extras.AirportPickup {
		total += airportPickupCharge
	}

	if extras.Breakfast {
		total += breakfastChargePerGuest * float64(guestCount)
	}

	if extras.LateCheckout {
		total += lateCheckoutCharge
	}

	return total
}

// DisplayRate is the advertised nightly rate after the discount is applied.
func DisplayRate(nightlyPrice, discountPercent float64) float64 {
	return nightlyPrice * (1 - discountPercent/100)
}

// Nights returns the whole-day difference between check-in and check-out.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}
