package paylater_test

import (
	"testing"

	"github.com/wondertwin-ai/twin-paylater/internal/paylater"
	"github.com/wondertwin-ai/twin-paylater/internal/store"
)

func newTestService(t *testing.T) (*paylater.Service, *store.MemoryStore) {
	t.Helper()
	st := store.New(testSeed())
	return paylater.New(st), st
}

func testSeed() store.SeedData {
	return store.SeedData{
		Meta: store.Meta{
			GeneratedOnUTC:    "2025-11-14T09:00:00Z",
			Currency:          "USD",
			EligibleThreshold: 30.0,
			OutcomeLegend:     map[string]string{"SUCCESS": "settles", "FAIL": "declined"},
			ScheduleTemplate:  []string{"t0", "t0+30d", "t0+60d"},
		},
		Users: []store.User{
			{UserID: "u1", Name: "Good Standing", Verified: true, PriorSuccessfulTxns: 2, HasPaymentMethod: true, Timezone: "UTC", Locale: "en-US"},
			{UserID: "u2", Name: "Unverified", Verified: false, PriorSuccessfulTxns: 3, HasPaymentMethod: true, Timezone: "UTC", Locale: "en-US"},
			{UserID: "u3", Name: "Fresh Account", Verified: true, PriorSuccessfulTxns: 0, HasPaymentMethod: false, Timezone: "UTC", Locale: "en-US"},
			{UserID: "u4", Name: "No Card", Verified: true, PriorSuccessfulTxns: 1, HasPaymentMethod: false, Timezone: "UTC", Locale: "en-US"},
		},
		Carts: []store.Cart{
			{CartID: "c1", UserID: "u1", TotalAmount: 90.00, Currency: "USD", EligibleThreshold: 30.0, ItemCount: 2},
			{CartID: "c2", UserID: "u1", TotalAmount: 20.00, Currency: "USD", EligibleThreshold: 30.0, ItemCount: 1},
			{CartID: "c3", UserID: "u1", TotalAmount: 100.00, Currency: "USD", EligibleThreshold: 30.0, ItemCount: 4},
		},
		Scenarios: []store.Scenario{
			{ScenarioID: "s1", UserID: "u1", CartID: "c1", Instalment1Outcome: "SUCCESS", Instalment2Outcome: "FAIL", Instalment3Outcome: "SUCCESS"},
			{ScenarioID: "s2", UserID: "u1", CartID: "c3", Instalment1Outcome: "SUCCESS", Instalment2Outcome: "SUCCESS", Instalment3Outcome: "SUCCESS"},
		},
	}
}

func TestCheckEligibility(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name     string
		userID   string
		cartID   string
		eligible bool
		reason   string
	}{
		{"eligible", "u1", "c1", true, ""},
		{"unknown user", "nobody", "c1", false, paylater.ReasonEntityNotFound},
		{"unknown cart", "u1", "no-cart", false, paylater.ReasonEntityNotFound},
		{"not verified", "u2", "c1", false, paylater.ReasonNotVerified},
		{"no prior transactions", "u3", "c1", false, paylater.ReasonNoPriorTxns},
		{"no payment method", "u4", "c1", false, paylater.ReasonNoPaymentMethod},
		{"below threshold", "u1", "c2", false, paylater.ReasonBelowThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.CheckEligibility(tt.userID, tt.cartID)
			if got.Eligible != tt.eligible {
				t.Errorf("eligible = %v, want %v", got.Eligible, tt.eligible)
			}
			if got.Reason != tt.reason {
				t.Errorf("reason = %q, want %q", got.Reason, tt.reason)
			}
		})
	}
}

// Check order is fixed: a user failing both the prior-transactions and
// payment-method checks must report the prior-transactions reason.
func TestCheckEligibilityOrder(t *testing.T) {
	svc, _ := newTestService(t)

	got := svc.CheckEligibility("u3", "c1") // 0 txns AND no payment method
	if got.Reason != paylater.ReasonNoPriorTxns {
		t.Errorf("reason = %q, want %q", got.Reason, paylater.ReasonNoPriorTxns)
	}
}

// Eligibility is pure: it must not append log entries or touch state.
func TestCheckEligibilityHasNoSideEffects(t *testing.T) {
	svc, st := newTestService(t)

	svc.CheckEligibility("u1", "c1")
	svc.CheckEligibility("u2", "c1")

	if st.Logs.Len() != 0 {
		t.Errorf("expected no log entries, got %d", st.Logs.Len())
	}
	if st.Agreements.Count() != 0 {
		t.Errorf("expected no agreements, got %d", st.Agreements.Count())
	}
}
