package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicateKey reports a unique-constraint violation (user email,
	// room number). Nothing is written when it fires.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrOverlap reports the bookings exclusion constraint firing; it is
	// the cross-process backstop behind the in-process admission check.
	ErrOverlap = errors.New("overlapping booking")

	// ErrTimeout reports that a store call exceeded its bounded deadline.
	// Safe for the caller to retry.
	ErrTimeout = errors.New("store timed out")
)

const storeTimeout = 5 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}

const overbookingConstraint = "idx_no_overbooking"

// translate maps driver-level failures onto repository sentinels so that
// services never see postgres or sqlite error shapes.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 unique_violation, 23P01 exclusion_violation
		if pgErr.Code == "23505" || pgErr.Code == "23P01" {
			if pgErr.ConstraintName == overbookingConstraint {
				return ErrOverlap
			}
			return ErrDuplicateKey
		}
		return err
	}

	// modernc sqlite surfaces constraint failures as plain strings
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicateKey
	}
	return err
}
