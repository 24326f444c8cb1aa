package repository

import (
	"context"
	"crypto/subtle"
	"time"

	authDomain "github.com/allisson/streamgate/internal/auth/domain"
	authService "github.com/allisson/streamgate/internal/auth/service"
	"github.com/allisson/streamgate/internal/clock"
)

// MemoryOTPLedger keeps at most one live passcode per subject in process memory.
// Operations on a subject are serialized by its shard lock.
type MemoryOTPLedger struct {
	records   *lockTable[*authDomain.OTPRecord]
	generator authService.CodeGenerator
	clock     clock.Clock
}

// NewMemoryOTPLedger creates an empty ledger.
func NewMemoryOTPLedger(generator authService.CodeGenerator, clk clock.Clock) *MemoryOTPLedger {
	if clk == nil {
		clk = clock.Real{}
	}
	return &MemoryOTPLedger{
		records:   newLockTable[*authDomain.OTPRecord](defaultShardCount),
		generator: generator,
		clock:     clk,
	}
}

// Issue generates a new code for subject, replacing any previous one.
// The code is generated before the shard lock is taken; a random-source failure leaves
// the existing record untouched.
func (l *MemoryOTPLedger) Issue(ctx context.Context, subject string) (*authDomain.OTPRecord, error) {
	if subject == "" {
		return nil, authDomain.ErrInvalidSubject
	}

	code, err := l.generator.Generate()
	if err != nil {
		return nil, err
	}

	var issued authDomain.OTPRecord
	l.records.with(subject, func(entries map[string]*authDomain.OTPRecord) {
		record := authDomain.NewOTPRecord(subject, code, l.clock.Now())
		entries[subject] = record
		issued = *record
	})

	return &issued, nil
}

// Verify checks candidate against the live code for subject.
//
// Every call that reaches a live record increments its attempt counter before the
// comparison. A wrong guess that uses up the last attempt removes the record and
// reports TooManyAttempts, so a later correct guess sees NotFound.
func (l *MemoryOTPLedger) Verify(ctx context.Context, subject, candidate string) authDomain.VerifyOutcome {
	outcome := authDomain.VerifyNotFound

	l.records.with(subject, func(entries map[string]*authDomain.OTPRecord) {
		record, ok := entries[subject]
		if !ok {
			return
		}

		if record.IsExpired(l.clock.Now()) {
			delete(entries, subject)
			outcome = authDomain.VerifyExpired
			return
		}

		if record.Attempts >= authDomain.OTPMaxAttempts {
			delete(entries, subject)
			outcome = authDomain.VerifyTooManyAttempts
			return
		}

		record.Attempts++

		if subtle.ConstantTimeCompare([]byte(record.Code), []byte(candidate)) == 1 {
			delete(entries, subject)
			outcome = authDomain.VerifySuccess
			return
		}

		if record.Attempts >= authDomain.OTPMaxAttempts {
			delete(entries, subject)
			outcome = authDomain.VerifyTooManyAttempts
			return
		}

		outcome = authDomain.VerifyMismatch
	})

	return outcome
}

// RemainingTTL returns the time left on subject's live code, or 0 when none exists.
func (l *MemoryOTPLedger) RemainingTTL(ctx context.Context, subject string) time.Duration {
	var remaining time.Duration
	l.records.with(subject, func(entries map[string]*authDomain.OTPRecord) {
		if record, ok := entries[subject]; ok {
			remaining = record.RemainingTTL(l.clock.Now())
		}
	})
	return remaining
}

// Sweep removes every expired record and returns how many were removed.
func (l *MemoryOTPLedger) Sweep(ctx context.Context) int {
	now := l.clock.Now()
	removed := 0

	l.records.each(func(entries map[string]*authDomain.OTPRecord) {
		for subject, record := range entries {
			if record.IsExpired(now) {
				delete(entries, subject)
				removed++
			}
		}
	})

	return removed
}

// Len returns the number of live records.
func (l *MemoryOTPLedger) Len() int {
	return l.records.len()
}
