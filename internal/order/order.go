package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WakeNoneSentinel is stored in WakeDateTime when the family holds no wake
// service. The intake form substitutes it when the "no wake" toggle is set.
const WakeNoneSentinel = "なし"

var ErrValidation = errors.New("order validation failed")

// Order is one customer's completed flower-arrangement request. It is
// frozen on submit: a new submission builds a new Order, never mutates a
// prior one.
type Order struct {
	ID              string    `json:"id"`
	FlowerType      string    `json:"flower_type"`
	FamilyName      string    `json:"family_name"`
	FuneralLocation string    `json:"funeral_location"`
	WakeDateTime    string    `json:"wake_date_time"`
	FuneralDateTime string    `json:"funeral_date_time"`
	ContactName     string    `json:"contact_name"`
	ZipCode         string    `json:"zip_code"`
	Address         string    `json:"address"`
	AddressDetail   string    `json:"address_detail"`
	PhoneNumber     string    `json:"phone_number"`
	TransferName    string    `json:"transfer_name"`
	PlacardName     string    `json:"placard_name"`
	Email           string    `json:"email"`
	Remarks         string    `json:"remarks"`
	HasSpecialChars bool      `json:"has_special_chars"`
	CreatedAt       time.Time `json:"created_at"`
}

// New stamps a draft with identity and creation time. The draft is expected
// to have passed Validate.
func New(draft Order) Order {
	draft.ID = uuid.NewString()
	draft.CreatedAt = time.Now().UTC()
	return draft
}

// Validate enforces the intake policy: every field is required except
// remarks; the wake date-time may instead equal WakeNoneSentinel.
func (o Order) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"flower_type", o.FlowerType},
		{"family_name", o.FamilyName},
		{"funeral_location", o.FuneralLocation},
		{"wake_date_time", o.WakeDateTime},
		{"funeral_date_time", o.FuneralDateTime},
		{"contact_name", o.ContactName},
		{"zip_code", o.ZipCode},
		{"address", o.Address},
		{"address_detail", o.AddressDetail},
		{"phone_number", o.PhoneNumber},
		{"transfer_name", o.TransferName},
		{"placard_name", o.PlacardName},
		{"email", o.Email},
	}

	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, f.name)
		}
	}
	return nil
}
