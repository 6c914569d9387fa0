package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceSweeper transitions sent invoices past their due date to overdue
type InvoiceSweeper interface {
	SweepOverdue(ctx context.Context, companyID uuid.UUID, now time.Time) (int, error)
}

// QuoteSweeper sends due quote reminders and reschedules them
type QuoteSweeper interface {
	SweepReminders(ctx context.Context, now time.Time) (int, error)
}

// CompanySource lists the companies the overdue sweep must visit
type CompanySource interface {
	CompaniesWithOpenInvoices(ctx context.Context) ([]uuid.UUID, error)
}

// SweepScheduler runs the periodic billing sweeps: overdue invoice
// transitions per company and quote reminders across the installation.
// Both sweeps are idempotent, so an overlapping run after a missed tick is
// harmless.
type SweepScheduler struct {
	interval  time.Duration
	invoices  InvoiceSweeper
	quotes    QuoteSweeper
	companies CompanySource
	logger    *zap.Logger

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewSweepScheduler creates a new SweepScheduler
func NewSweepScheduler(
	interval time.Duration,
	invoices InvoiceSweeper,
	quotes QuoteSweeper,
	companies CompanySource,
	logger *zap.Logger,
) *SweepScheduler {
	return &SweepScheduler{
		interval:  interval,
		invoices:  invoices,
		quotes:    quotes,
		companies: companies,
		logger:    logger.Named("sweep_scheduler"),
	}
}

// Start launches the background sweep loop. It returns immediately.
func (s *SweepScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stopChan = make(chan struct{})

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("sweep scheduler started", zap.Duration("interval", s.interval))
}

// Stop halts the sweep loop and waits for an in-flight sweep to finish
func (s *SweepScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("sweep scheduler stopped")
}

func (s *SweepScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx, time.Now())
		}
	}
}

// RunOnce executes a single sweep pass. Errors are logged, not returned:
// one company's failure must not stop the sweep for the others.
func (s *SweepScheduler) RunOnce(ctx context.Context, now time.Time) {
	companyIDs, err := s.companies.CompaniesWithOpenInvoices(ctx)
	if err != nil {
		s.logger.Error("failed to list companies for overdue sweep", zap.Error(err))
	} else {
		for _, companyID := range companyIDs {
			swept, err := s.invoices.SweepOverdue(ctx, companyID, now)
			if err != nil {
				s.logger.Error("overdue sweep failed",
					zap.String("company_id", companyID.String()),
					zap.Error(err))
				continue
			}
			if swept > 0 {
				s.logger.Info("invoices marked overdue",
					zap.String("company_id", companyID.String()),
					zap.Int("count", swept))
			}
		}
	}

	sent, err := s.quotes.SweepReminders(ctx, now)
	if err != nil {
		s.logger.Error("quote reminder sweep failed", zap.Error(err))
		return
	}
	if sent > 0 {
		s.logger.Info("quote reminders sent", zap.Int("count", sent))
	}
}
