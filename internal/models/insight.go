package models

// Assessment is the property assessment collected by the pricing calculator.
// Immutable per submission; consumed by the health-score estimator and the
// insight generator, never stored on its own.
type Assessment struct {
	ZipCode        string `json:"zipCode" validate:"required,zip5"`
	HomeSize       string `json:"homeSize" validate:"required,oneof=small medium large xl"`
	Stories        string `json:"stories" validate:"required,oneof=1 2 3+"`
	LastCleaned    string `json:"lastCleaned" validate:"required,oneof=recent 1-2yr over2yr never"`
	TrackCondition string `json:"trackCondition" validate:"required,oneof=clean dusty dirty neglected"`
}

// Insight is the narrative assessment shown to the user at the step 3→4
// transition and forwarded verbatim into the final submitted quote.
type Insight struct {
	Observation     string `json:"observation"`
	RiskFactor      string `json:"riskFactor"`
	FinancialImpact string `json:"financialImpact"`
	ProTip          string `json:"proTip"`
	HealthScore     int    `json:"healthScore" validate:"gte=0,lte=100"`
}

// InsightRequest is the calculator's insight call: the assessment plus the
// contact identity captured before pricing is shown, which also feeds the
// new-lead notification.
type InsightRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100,name_chars"`
	Phone string `json:"phone" validate:"required,phone_loose"`
	Email string `json:"email" validate:"omitempty,email"`

	ZipCode        string `json:"zipCode" validate:"required,zip5"`
	HomeSize       string `json:"homeSize" validate:"required,oneof=small medium large xl"`
	Stories        string `json:"stories" validate:"required,oneof=1 2 3+"`
	LastCleaned    string `json:"lastCleaned" validate:"required,oneof=recent 1-2yr over2yr never"`
	TrackCondition string `json:"trackCondition" validate:"required,oneof=clean dusty dirty neglected"`

	Services []string `json:"services,omitempty"`
}

// Assessment extracts the assessment portion of the request.
func (r *InsightRequest) Assessment() Assessment {
	return Assessment{
		ZipCode:        r.ZipCode,
		HomeSize:       r.HomeSize,
		Stories:        r.Stories,
		LastCleaned:    r.LastCleaned,
		TrackCondition: r.TrackCondition,
	}
}

// InsightResponse is the JSON body returned by the insights endpoint.
type InsightResponse struct {
	Success bool     `json:"success"`
	Insight *Insight `json:"insight,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// PackageSelectionRequest is fired when the user picks a package in the
// calculator. The price range is resolved server-side from the pricing table.
type PackageSelectionRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100,name_chars"`
	Phone string `json:"phone" validate:"required,phone_loose"`

	ZipCode        string `json:"zipCode" validate:"required,zip5"`
	HomeSize       string `json:"homeSize" validate:"required,oneof=small medium large xl"`
	LastCleaned    string `json:"lastCleaned" validate:"required,oneof=recent 1-2yr over2yr never"`
	TrackCondition string `json:"trackCondition" validate:"required,oneof=clean dusty dirty neglected"`

	SelectedPackage string `json:"selectedPackage" validate:"required,oneof=basic deluxe luxury"`
}
