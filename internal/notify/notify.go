package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"libraryapi/internal/loan"
)

// Subject line of every overdue reminder.
const overdueSubject = "Livro com empréstimo atrasado."

// Mailer is the outgoing mail transport.
type Mailer interface {
	Send(ctx context.Context, subject, body string, to ...string) error
}

// LoanFinder locates overdue loans. *loan.Service satisfies it.
type LoanFinder interface {
	Overdue(ctx context.Context, threshold time.Time) ([]loan.Loan, error)
}

// Job scans for loans overdue by more than the grace period and sends one
// reminder email per loan. A failed send is logged and counted but does
// not stop the remaining sends.
type Job struct {
	loans     LoanFinder
	mailer    Mailer
	graceDays int
	logger    *slog.Logger
	now       func() time.Time
}

func NewJob(loans LoanFinder, mailer Mailer, graceDays int, logger *slog.Logger) *Job {
	return &Job{
		loans:     loans,
		mailer:    mailer,
		graceDays: graceDays,
		logger:    logger,
		now:       time.Now,
	}
}

// Run implements cron.Job.
func (j *Job) Run() {
	if err := j.RunOnce(context.Background()); err != nil {
		j.logger.Error("overdue loan scan failed", slog.Any("error", err))
	}
}

// RunOnce performs a single scan-and-notify pass.
func (j *Job) RunOnce(ctx context.Context) error {
	threshold := j.now().AddDate(0, 0, -j.graceDays)

	overdue, err := j.loans.Overdue(ctx, threshold)
	if err != nil {
		return fmt.Errorf("finding overdue loans: %w", err)
	}
	if len(overdue) == 0 {
		j.logger.Info("no overdue loans")
		return nil
	}

	var sent int
	var failures []error
	for _, l := range overdue {
		body := reminderBody(l)
		if err := j.mailer.Send(ctx, overdueSubject, body, l.CustomerEmail); err != nil {
			j.logger.Error("overdue reminder failed",
				slog.Int64("loan_id", l.ID),
				slog.String("to", l.CustomerEmail),
				slog.Any("error", err),
			)
			failures = append(failures, fmt.Errorf("loan %d: %w", l.ID, err))
			continue
		}
		sent++
	}

	j.logger.Info("overdue loan scan finished",
		slog.Int("overdue", len(overdue)),
		slog.Int("sent", sent),
		slog.Int("failed", len(failures)),
	)

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d reminders failed: %w", len(failures), len(overdue), errors.Join(failures...))
	}
	return nil
}

func reminderBody(l loan.Loan) string {
	return fmt.Sprintf(
		"Olá %s,\n\nO livro %q (ISBN %s) emprestado em %s está com a devolução atrasada. Por favor, devolva o livro à biblioteca.\n",
		l.Customer, l.Book.Title, l.Book.ISBN, l.LoanDate.Format("2006-01-02"),
	)
}
