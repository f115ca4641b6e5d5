package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/waithaka/dukasoko/internal/pkg/logger"
	"github.com/waithaka/dukasoko/internal/pkg/models"
	"github.com/waithaka/dukasoko/internal/pkg/retry"
	"github.com/waithaka/dukasoko/services/payment"
)

// The gateway answers a status query with this error code while the
// push is still waiting on the handset
const gatewayStillProcessing = "500.001.1001"

const sweepBatchSize = 50

// RequeryTransaction asks the gateway for the current state of a
// pending transaction and reconciles it the same way a callback would.
// Terminal transactions are returned unchanged.
func (uc *paymentUC) RequeryTransaction(ctx context.Context, ref string) (*models.Transaction, error) {
	txn, err := uc.paymentRepo.GetTransactionByRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	if txn.IsComplete {
		return txn, nil
	}

	resp, err := uc.paymentGW.QueryStatus(ctx, txn.CheckoutRequestID)
	if err != nil {
		var gwErr *payment.GatewayError
		if errors.As(err, &gwErr) && gwErr.Code == gatewayStillProcessing {
			// Still waiting on the handset; leave the row pending
			return txn, nil
		}
		return nil, err
	}

	resultCode, err := strconv.Atoi(resp.ResultCode)
	if err != nil {
		// No resolved outcome yet
		return txn, nil
	}

	completion := &models.TransactionCompletion{
		ResultCode:        resultCode,
		ResultDescription: resp.ResultDesc,
		ReceivedAt:        time.Now(),
	}
	if resultCode == 0 {
		// A status query confirms the payment but carries no receipt
		// number; the row completes without one
		completion.Status = models.TransactionStatusSuccess
	} else {
		completion.Status = models.TransactionStatusFailed
	}

	updated, err := uc.paymentRepo.CompleteTransaction(ctx, txn.CheckoutRequestID, completion)
	if err != nil {
		if errors.Is(err, payment.ErrTransactionAlreadyComplete) {
			// A callback won the race while we were querying
			return uc.paymentRepo.GetTransactionByRef(ctx, ref)
		}
		return nil, err
	}

	uc.publishOutcome(ctx, updated)

	logger.Info("Transaction reconciled by status query",
		logger.String("transaction_id", updated.TransactionID),
		logger.String("status", string(updated.Status)))

	return updated, nil
}

// StartSweep runs the reconciliation sweep until ctx is cancelled. It
// periodically requeries pending transactions whose callback never
// arrived. Transport failures are retried with backoff; anything else
// is left for the next tick.
func (uc *paymentUC) StartSweep(ctx context.Context) {
	if !uc.cfg.Mpesa.SweepEnabled {
		logger.Info("Reconciliation sweep disabled")
		return
	}

	interval := time.Duration(uc.cfg.Mpesa.SweepIntervalSecs) * time.Second
	if interval <= 0 {
		interval = 2 * time.Minute
	}
	staleAfter := time.Duration(uc.cfg.Mpesa.SweepAfterSecs) * time.Second
	if staleAfter <= 0 {
		staleAfter = 3 * time.Minute
	}

	retrier := retry.New(retry.Config{
		MaxRetries: 2,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   5 * time.Second,
		Multiplier: 2.0,
		Jitter:     true,
		RetryableFunc: func(err error) bool {
			var transportErr *payment.TransportError
			return errors.As(err, &transportErr)
		},
	}, logger.GetGlobalLogger())

	logger.Info("Starting reconciliation sweep",
		logger.Duration("interval", interval),
		logger.Duration("stale_after", staleAfter))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Reconciliation sweep stopped")
			return
		case <-ticker.C:
			uc.sweepOnce(ctx, retrier, staleAfter)
		}
	}
}

func (uc *paymentUC) sweepOnce(ctx context.Context, retrier *retry.Retrier, staleAfter time.Duration) {
	stale, err := uc.paymentRepo.ListStalePending(ctx, staleAfter, sweepBatchSize)
	if err != nil {
		logger.Error("Sweep failed to list stale transactions", logger.Err(err))
		return
	}

	if len(stale) == 0 {
		return
	}

	logger.Info("Sweeping stale pending transactions", logger.Int("count", len(stale)))

	for _, txn := range stale {
		ref := txn.TransactionID
		err := retrier.Execute(ctx, func(ctx context.Context) error {
			_, err := uc.RequeryTransaction(ctx, ref)
			return err
		})
		if err != nil {
			logger.Warn("Sweep could not reconcile transaction",
				logger.String("transaction_id", ref),
				logger.Err(err))
		}
	}
}
