// Package store defines the paylater twin's domain types and in-memory store.
// JSON field names match the original paylater seed fixtures exactly; the
// dev dashboard depends on them.
package store

import "time"

// Instalment statuses.
const (
	StatusPaid     = "PAID"
	StatusUpcoming = "UPCOMING"
	StatusDue      = "DUE"
	StatusFailed   = "FAILED"
)

// AgreementActive is the only agreement status this twin produces.
const AgreementActive = "ACTIVE"

// ValidInstalmentStatus reports whether s is one of the four instalment statuses.
func ValidInstalmentStatus(s string) bool {
	switch s {
	case StatusPaid, StatusUpcoming, StatusDue, StatusFailed:
		return true
	}
	return false
}

// User is a seed-only shopper record.
type User struct {
	UserID              string `json:"user_id" yaml:"user_id"`
	Name                string `json:"name" yaml:"name"`
	Verified            bool   `json:"verified" yaml:"verified"`
	PriorSuccessfulTxns int    `json:"prior_successful_txns" yaml:"prior_successful_txns"`
	HasPaymentMethod    bool   `json:"has_payment_method" yaml:"has_payment_method"`
	DefaultPMLast4      string `json:"default_pm_last4,omitempty" yaml:"default_pm_last4,omitempty"`
	Timezone            string `json:"timezone" yaml:"timezone"`
	Locale              string `json:"locale" yaml:"locale"`
}

// Cart is a seed-only shopping cart. Many carts may reference one user.
type Cart struct {
	CartID            string  `json:"cart_id" yaml:"cart_id"`
	UserID            string  `json:"user_id" yaml:"user_id"`
	TotalAmount       float64 `json:"total_amount" yaml:"total_amount"`
	Currency          string  `json:"currency" yaml:"currency"`
	EligibleThreshold float64 `json:"eligible_threshold" yaml:"eligible_threshold"`
	ItemCount         int     `json:"item_count" yaml:"item_count"`
	Notes             string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Scenario is a seed-only test trajectory: one intended outcome per
// instalment. Selecting a scenario records it; it drives no transitions.
type Scenario struct {
	ScenarioID         string `json:"scenario_id" yaml:"scenario_id"`
	UserID             string `json:"user_id" yaml:"user_id"`
	CartID             string `json:"cart_id" yaml:"cart_id"`
	Instalment1Outcome string `json:"instalment1_outcome" yaml:"instalment1_outcome"`
	Instalment2Outcome string `json:"instalment2_outcome" yaml:"instalment2_outcome"`
	Instalment3Outcome string `json:"instalment3_outcome" yaml:"instalment3_outcome"`
	Description        string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Instalment is one of the three scheduled payments within an Agreement.
type Instalment struct {
	InstalmentNumber int       `json:"instalment_number"`
	DueDate          time.Time `json:"due_date"`
	Amount           float64   `json:"amount"`
	Status           string    `json:"status"`
}

// Agreement is a pay-in-3 contract tied to one user and one cart. Its
// schedule always holds exactly three instalments.
type Agreement struct {
	AgreementID string       `json:"agreement_id"`
	UserID      string       `json:"user_id"`
	CartID      string       `json:"cart_id"`
	TotalAmount float64      `json:"total_amount"`
	Currency    string       `json:"currency"`
	Schedule    []Instalment `json:"schedule"`
	Status      string       `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ActivityLogEntry is one append-only audit record for an agreement.
type ActivityLogEntry struct {
	AgreementID string    `json:"agreement_id"`
	Timestamp   time.Time `json:"timestamp"`
	Action      string    `json:"action"`
	Detail      string    `json:"detail,omitempty"`
}

// Activity log actions.
const (
	ActionAgreementCreated  = "agreement_created"
	ActionChargeAttempted   = "charge_attempted"
	ActionChargeSucceeded   = "charge_succeeded"
	ActionChargeFailed      = "charge_failed"
	ActionInstalmentUpdated = "instalment_updated"
	ActionRetry             = "retry"
)

// Meta is seed-only reference data for the dev dashboard.
type Meta struct {
	GeneratedOnUTC    string            `json:"generated_on_utc" yaml:"generated_on_utc"`
	Currency          string            `json:"currency" yaml:"currency"`
	EligibleThreshold float64           `json:"eligible_threshold" yaml:"eligible_threshold"`
	OutcomeLegend     map[string]string `json:"outcome_legend" yaml:"outcome_legend"`
	ScheduleTemplate  []string          `json:"schedule_template" yaml:"schedule_template"`
}
