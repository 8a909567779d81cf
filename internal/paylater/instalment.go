package paylater

import (
	"fmt"

	"github.com/wondertwin-ai/twin-paylater/internal/store"
)

// log appends an activity entry stamped with the store clock. Appends under
// the service mutex keep per-agreement timestamps non-decreasing.
func (s *Service) log(agreementID, action, detail string) {
	s.store.Logs.Append(store.ActivityLogEntry{
		AgreementID: agreementID,
		Timestamp:   s.store.Clock.Now(),
		Action:      action,
		Detail:      detail,
	})
}

// SetInstalmentStatus overwrites the status of the instalment at the 0-based
// idx, unconditionally, for any of the four statuses. This is the permissive
// manual path used by dev tooling; it bypasses the retry guard.
func (s *Service) SetInstalmentStatus(agreementID string, idx int, status string) (store.Agreement, error) {
	if !store.ValidInstalmentStatus(status) {
		return store.Agreement{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	agreement, ok := s.store.Agreements.Get(agreementID)
	if !ok {
		return store.Agreement{}, &NotFoundError{Kind: "agreement", ID: agreementID}
	}
	if idx < 0 || idx >= len(agreement.Schedule) {
		return store.Agreement{}, &NotFoundError{Kind: "instalment", ID: fmt.Sprintf("%d", idx+1)}
	}

	prev := agreement.Schedule[idx].Status
	agreement.Schedule = cloneSchedule(agreement.Schedule)
	agreement.Schedule[idx].Status = status
	s.store.Agreements.Set(agreementID, agreement)

	s.log(agreementID, store.ActionInstalmentUpdated,
		fmt.Sprintf("Instalment %d: %s => %s", idx+1, prev, status))

	s.emit("instalment.updated", map[string]any{
		"agreement_id":      agreementID,
		"instalment_number": idx + 1,
		"previous_status":   prev,
		"status":            status,
	})

	return agreement, nil
}

// RetryInstalment retries a failed charge. Guarded: the instalment must
// currently be FAILED, and on success it becomes PAID. Addressed by 1-based
// instalment number.
func (s *Service) RetryInstalment(agreementID string, instalmentNumber int) (store.Agreement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agreement, idx, err := s.resolve(agreementID, instalmentNumber)
	if err != nil {
		return store.Agreement{}, err
	}

	if agreement.Schedule[idx].Status != store.StatusFailed {
		return store.Agreement{}, ErrRetryNotAllowed
	}

	agreement.Schedule = cloneSchedule(agreement.Schedule)
	agreement.Schedule[idx].Status = store.StatusPaid
	s.store.Agreements.Set(agreementID, agreement)

	s.log(agreementID, store.ActionRetry,
		fmt.Sprintf("Retry instalment %d => PAID", instalmentNumber))

	s.emit("instalment.retried", map[string]any{
		"agreement_id":      agreementID,
		"instalment_number": instalmentNumber,
	})

	return agreement, nil
}

// FailInstalment marks the instalment FAILED regardless of its prior status,
// including PAID. This is the simulation path. Addressed by 1-based
// instalment number.
func (s *Service) FailInstalment(agreementID string, instalmentNumber int) (store.Agreement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agreement, idx, err := s.resolve(agreementID, instalmentNumber)
	if err != nil {
		return store.Agreement{}, err
	}

	agreement.Schedule = cloneSchedule(agreement.Schedule)
	agreement.Schedule[idx].Status = store.StatusFailed
	s.store.Agreements.Set(agreementID, agreement)

	s.log(agreementID, store.ActionChargeFailed,
		fmt.Sprintf("Fail instalment %d", instalmentNumber))

	s.emit("instalment.failed", map[string]any{
		"agreement_id":      agreementID,
		"instalment_number": instalmentNumber,
	})

	return agreement, nil
}

// cloneSchedule copies the schedule so stored agreements and copies handed
// to earlier readers never share a backing array.
func cloneSchedule(schedule []store.Instalment) []store.Instalment {
	out := make([]store.Instalment, len(schedule))
	copy(out, schedule)
	return out
}

// resolve looks up the agreement and converts a 1-based instalment number to
// a schedule index, returning not-found for either miss.
func (s *Service) resolve(agreementID string, instalmentNumber int) (store.Agreement, int, error) {
	agreement, ok := s.store.Agreements.Get(agreementID)
	if !ok {
		return store.Agreement{}, 0, &NotFoundError{Kind: "agreement", ID: agreementID}
	}
	idx := instalmentNumber - 1
	if idx < 0 || idx >= len(agreement.Schedule) {
		return store.Agreement{}, 0, &NotFoundError{Kind: "instalment", ID: fmt.Sprintf("%d", instalmentNumber)}
	}
	return agreement, idx, nil
}
