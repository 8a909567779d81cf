package paylater

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wondertwin-ai/twin-paylater/internal/store"
)

const scheduleLength = 3

// instalmentAmount is round(total/3, 2), half-up. The same rounded value is
// used for all three instalments; the sum may drift from the cart total by a
// few cents, which is accepted behavior.
func instalmentAmount(total float64) float64 {
	return decimal.NewFromFloat(total).
		Div(decimal.NewFromInt(scheduleLength)).
		Round(2).
		InexactFloat64()
}

// CreateAgreement opens a pay-in-3 agreement for the user/cart pair. The
// first instalment is charged synchronously and starts PAID; the remaining
// two are due 30 and 60 days out and start UPCOMING. Eligibility is NOT
// re-checked here; callers run CheckEligibility first.
func (s *Service) CreateAgreement(userID, cartID string) (store.Agreement, error) {
	if _, ok := s.store.Users.Get(userID); !ok {
		return store.Agreement{}, &NotFoundError{Kind: "user", ID: userID}
	}
	cart, ok := s.store.Carts.Get(cartID)
	if !ok {
		return store.Agreement{}, &NotFoundError{Kind: "cart", ID: cartID}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.store.Clock.Now()
	per := instalmentAmount(cart.TotalAmount)

	agreement := store.Agreement{
		AgreementID: uuid.NewString(),
		UserID:      userID,
		CartID:      cartID,
		TotalAmount: cart.TotalAmount,
		Currency:    cart.Currency,
		Schedule: []store.Instalment{
			{InstalmentNumber: 1, DueDate: now, Amount: per, Status: store.StatusPaid},
			{InstalmentNumber: 2, DueDate: now.AddDate(0, 0, 30), Amount: per, Status: store.StatusUpcoming},
			{InstalmentNumber: 3, DueDate: now.AddDate(0, 0, 60), Amount: per, Status: store.StatusUpcoming},
		},
		Status:    store.AgreementActive,
		CreatedAt: now,
	}

	s.store.Agreements.Set(agreement.AgreementID, agreement)

	// The first instalment is charged at creation time, so the log records
	// the attempt and its success alongside the creation itself.
	s.log(agreement.AgreementID, store.ActionAgreementCreated, "")
	s.log(agreement.AgreementID, store.ActionChargeAttempted, "instalment 1")
	s.log(agreement.AgreementID, store.ActionChargeSucceeded, "instalment 1")

	s.emit("agreement.created", map[string]any{
		"agreement_id": agreement.AgreementID,
		"user_id":      userID,
		"cart_id":      cartID,
		"total_amount": cart.TotalAmount,
		"currency":     cart.Currency,
	})

	return agreement, nil
}

// GetAgreement returns the agreement with the given ID.
func (s *Service) GetAgreement(agreementID string) (store.Agreement, error) {
	agreement, ok := s.store.Agreements.Get(agreementID)
	if !ok {
		return store.Agreement{}, &NotFoundError{Kind: "agreement", ID: agreementID}
	}
	return agreement, nil
}
