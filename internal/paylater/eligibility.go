package paylater

// EligibilityResult is the outcome of an eligibility check. Reason is set
// only when Eligible is false.
type EligibilityResult struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

// Eligibility reasons, in evaluation order. The first failing check wins;
// reasons are never aggregated.
const (
	ReasonEntityNotFound  = "user or cart not found"
	ReasonNotVerified     = "user not verified"
	ReasonNoPriorTxns     = "no prior successful transactions"
	ReasonNoPaymentMethod = "no linked payment method"
	ReasonBelowThreshold  = "cart total below eligible threshold"
)

// CheckEligibility decides whether the user/cart pair may open a pay-in-3
// agreement. Pure: no side effects, no log entries.
func (s *Service) CheckEligibility(userID, cartID string) EligibilityResult {
	user, userOK := s.store.Users.Get(userID)
	cart, cartOK := s.store.Carts.Get(cartID)
	if !userOK || !cartOK {
		return EligibilityResult{Eligible: false, Reason: ReasonEntityNotFound}
	}
	if !user.Verified {
		return EligibilityResult{Eligible: false, Reason: ReasonNotVerified}
	}
	if user.PriorSuccessfulTxns < 1 {
		return EligibilityResult{Eligible: false, Reason: ReasonNoPriorTxns}
	}
	if !user.HasPaymentMethod {
		return EligibilityResult{Eligible: false, Reason: ReasonNoPaymentMethod}
	}
	if cart.TotalAmount < cart.EligibleThreshold {
		return EligibilityResult{Eligible: false, Reason: ReasonBelowThreshold}
	}
	return EligibilityResult{Eligible: true}
}
