package paylater

import "github.com/wondertwin-ai/twin-paylater/internal/store"

// ActivityLog returns audit entries in append order. An empty agreementID
// returns the full log; otherwise only that agreement's entries, preserving
// relative order.
func (s *Service) ActivityLog(agreementID string) []store.ActivityLogEntry {
	if agreementID == "" {
		return s.store.Logs.All()
	}
	return s.store.Logs.Where(func(e store.ActivityLogEntry) bool {
		return e.AgreementID == agreementID
	})
}
