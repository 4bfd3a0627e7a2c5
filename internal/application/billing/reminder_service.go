package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spicetrade/backend/internal/domain/billing"
	"go.uber.org/zap"
)

// DismissalStore remembers which reminders a session has waved away.
// Dismissals are per login session, so the reminder comes back the
// next time the user signs in.
type DismissalStore interface {
	Dismiss(ctx context.Context, sessionID string, billID uuid.UUID) error
	IsDismissed(ctx context.Context, sessionID string, billID uuid.UUID) (bool, error)
}

// ReminderService surfaces bills that fall due within the next two
// days so the owner can chase payment before it slips
type ReminderService struct {
	billRepo   billing.BillRepository
	dismissals DismissalStore
	logger     *zap.Logger
}

// NewReminderService creates a new ReminderService
func NewReminderService(billRepo billing.BillRepository, dismissals DismissalStore, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		billRepo:   billRepo,
		dismissals: dismissals,
		logger:     logger,
	}
}

// DueSoon returns outstanding bills due today through two days out,
// minus the ones this session has dismissed
func (s *ReminderService) DueSoon(ctx context.Context, sessionID string) ([]ReminderResponse, error) {
	now := time.Now()
	from := now
	to := now.AddDate(0, 0, billing.DueSoonWindowDays)

	bills, err := s.billRepo.FindDueBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	reminders := make([]ReminderResponse, 0, len(bills))
	for i := range bills {
		bill := &bills[i]
		if !bill.IsDueSoon(now) {
			continue
		}
		dismissed, err := s.dismissals.IsDismissed(ctx, sessionID, bill.ID)
		if err != nil {
			return nil, err
		}
		if dismissed {
			continue
		}
		reminders = append(reminders, ReminderResponse{
			BillID:       bill.ID,
			BillNumber:   bill.BillNumber,
			CatererName:  bill.CatererName,
			DueDate:      bill.DueDate,
			DaysUntilDue: bill.DaysUntilDue(now),
			Outstanding:  bill.OutstandingAmount(),
		})
	}

	return reminders, nil
}

// Dismiss hides one bill's reminder for the rest of this session
func (s *ReminderService) Dismiss(ctx context.Context, sessionID string, billID uuid.UUID) error {
	if _, err := s.billRepo.FindByID(ctx, billID); err != nil {
		return err
	}
	if err := s.dismissals.Dismiss(ctx, sessionID, billID); err != nil {
		return err
	}

	s.logger.Debug("reminder dismissed",
		zap.String("session_id", sessionID),
		zap.String("bill_id", billID.String()),
	)
	return nil
}
