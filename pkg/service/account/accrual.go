package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/unnamedbank/banking/pkg/domain/account"
)

// CapExceededError identifies the account that saturated during a tick. It
// signals a misconfiguration (an account left past saturation) and is
// surfaced to the operator log, never to API clients.
type CapExceededError struct {
	AccountID uint
}

func (e *CapExceededError) Error() string {
	return fmt.Sprintf(
		"the maximum balance limit has been exceeded for account ID: %d", e.AccountID)
}

// Unwrap lets errors.Is match the domain sentinel.
func (e *CapExceededError) Unwrap() error {
	return domain.ErrBalanceCapExceeded
}

// StartAccrualScheduler runs the accrual job every AccrualInterval until the
// context is cancelled. The first tick fires one interval after start, not
// at start. A failed tick is logged and the next one still runs; the process
// never crashes on accrual errors.
func (s *Service) StartAccrualScheduler(ctx context.Context) {
	go s.runAccrualLoop(ctx)
}

func (s *Service) runAccrualLoop(ctx context.Context) {
	ticker := time.NewTicker(domain.AccrualInterval)
	defer ticker.Stop()

	log := s.logger.With("context", "AccrualScheduler")
	log.Info("Accrual scheduler started", "interval", domain.AccrualInterval)

	for {
		select {
		case <-ctx.Done():
			log.Info("Accrual scheduler stopped")
			return
		case <-ticker.C:
			if err := s.Accrue(ctx); err != nil {
				var capErr *CapExceededError
				if errors.As(err, &capErr) {
					log.Error("Accrual tick aborted",
						"accountID", capErr.AccountID, "error", err)
				} else {
					log.Error("Accrual tick failed", "error", err)
				}
			}
		}
	}
}
