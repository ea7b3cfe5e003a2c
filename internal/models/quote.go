package models

import (
	"time"

	"github.com/google/uuid"
)

// Service types accepted on the plain quote form.
const (
	ServiceResidential     = "residential"
	ServiceCommercial      = "commercial"
	ServiceGutterCleaning  = "gutter-cleaning"
	ServiceScreenRepair    = "screen-repair"
	ServicePressureWashing = "pressure-washing"
	ServiceOther           = "other"
)

// CalculatorServiceLabel is the service label persisted for calculator-sourced
// quotes, which carry a package selection instead of a service type.
const CalculatorServiceLabel = "Calculator Quote"

// QuoteRequest is the plain contact-form submission.
type QuoteRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100,name_chars"`
	Contact string `json:"contact" validate:"required,email_or_phone"`
	Service string `json:"service" validate:"required,oneof=residential commercial gutter-cleaning screen-repair pressure-washing other"`
	Message string `json:"message" validate:"omitempty,max=1000"`
}

// CalculatorQuoteRequest is the submission produced by the pricing calculator
// wizard. Discriminated from QuoteRequest by quoteSource == "calculator".
type CalculatorQuoteRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100,name_chars"`
	Phone string `json:"phone" validate:"required,phone_loose"`
	Email string `json:"email" validate:"omitempty,email"`

	ZipCode        string `json:"zipCode" validate:"required,zip5"`
	HomeSize       string `json:"homeSize" validate:"required,oneof=small medium large xl"`
	Stories        string `json:"stories" validate:"required,oneof=1 2 3+"`
	LastCleaned    string `json:"lastCleaned" validate:"required,oneof=recent 1-2yr over2yr never"`
	TrackCondition string `json:"trackCondition" validate:"required,oneof=clean dusty dirty neglected"`

	SelectedPackage string `json:"selectedPackage" validate:"required,oneof=basic deluxe luxury"`
	// CalculatedPrice is a pointer so an absent key fails validation while an
	// explicit $0 passes.
	CalculatedPrice *float64 `json:"calculatedPrice" validate:"required,gte=0,lte=10000"`

	// AIInsights is optional: the wizard submits without it when insight
	// generation failed client-side.
	AIInsights *Insight `json:"aiInsights,omitempty"`

	QuoteSource string `json:"quoteSource" validate:"required,eq=calculator"`
	Message     string `json:"message" validate:"omitempty,max=1000"`

	Services          []string `json:"services,omitempty"`
	RequestedServices []string `json:"requestedServices,omitempty"`
}

// Assessment returns the four property-assessment answers plus location,
// the inputs consumed by scoring and insight generation.
func (r *CalculatorQuoteRequest) Assessment() Assessment {
	return Assessment{
		ZipCode:        r.ZipCode,
		HomeSize:       r.HomeSize,
		Stories:        r.Stories,
		LastCleaned:    r.LastCleaned,
		TrackCondition: r.TrackCondition,
	}
}

// CalculatorData is the serialized blob persisted alongside a
// calculator-sourced quote.
type CalculatorData struct {
	ZipCode         string  `json:"zipCode"`
	HomeSize        string  `json:"homeSize"`
	Stories         string  `json:"stories"`
	LastCleaned     string  `json:"lastCleaned"`
	TrackCondition  string  `json:"trackCondition"`
	SelectedPackage string  `json:"selectedPackage"`
	CalculatedPrice float64 `json:"calculatedPrice"`
	HealthScore     *int    `json:"healthScore"`
}

// Quote is the persisted lead record. Append-only: created once per accepted
// request, never mutated by this service.
type Quote struct {
	ID             uuid.UUID
	Name           string
	Contact        string
	Service        string
	Message        *string
	IPAddress      string
	UserAgent      *string
	CalculatorData *string
	CreatedAt      time.Time
}

// SubmitQuoteResponse is the JSON body returned by the quote endpoint.
type SubmitQuoteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// QuoteNotification carries the fields forwarded to the email notifier.
type QuoteNotification struct {
	Name      string
	Contact   string
	Service   string
	Message   string
	Timestamp time.Time
}
