package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
)

func TestAccountRepository_Integration(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewAccountRepository(pool)

	t.Run("GetOrCreateAccount", func(t *testing.T) {
		account, err := repo.GetOrCreateAccount(ctx, "user-1", "alice")
		if err != nil {
			t.Fatalf("GetOrCreateAccount failed: %v", err)
		}
		if account.AvailableSpins != 0 || account.TotalSpinsUsed != 0 || account.TotalChipsEarned != 0 {
			t.Errorf("expected fresh account counters to be zero, got %+v", account)
		}

		// Second call returns the same row, updating the username.
		again, err := repo.GetOrCreateAccount(ctx, "user-1", "alice2")
		if err != nil {
			t.Fatalf("GetOrCreateAccount (existing) failed: %v", err)
		}
		if again.Username != "alice2" {
			t.Errorf("expected username alice2, got %s", again.Username)
		}
	})

	t.Run("GetAccount missing", func(t *testing.T) {
		_, err := repo.GetAccount(ctx, "nobody")
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("AddSpins and SpendSpins", func(t *testing.T) {
		if _, err := repo.GetOrCreateAccount(ctx, "user-2", "bob"); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}
		if err := repo.AddSpins(ctx, "user-2", 5); err != nil {
			t.Fatalf("AddSpins failed: %v", err)
		}

		tx, err := repo.BeginSpinTx(ctx)
		if err != nil {
			t.Fatalf("BeginSpinTx failed: %v", err)
		}
		account, err := tx.SpendSpins(ctx, "user-2", 3)
		if err != nil {
			t.Fatalf("SpendSpins failed: %v", err)
		}
		if account.AvailableSpins != 2 {
			t.Errorf("expected 2 spins remaining, got %d", account.AvailableSpins)
		}
		if account.TotalSpinsUsed != 3 {
			t.Errorf("expected 3 spins used, got %d", account.TotalSpinsUsed)
		}
		if err := tx.Commit(ctx); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}
	})

	t.Run("SpendSpins insufficient", func(t *testing.T) {
		if _, err := repo.GetOrCreateAccount(ctx, "user-3", "carol"); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}
		if err := repo.AddSpins(ctx, "user-3", 2); err != nil {
			t.Fatalf("AddSpins failed: %v", err)
		}

		tx, err := repo.BeginSpinTx(ctx)
		if err != nil {
			t.Fatalf("BeginSpinTx failed: %v", err)
		}
		defer func() { _ = tx.Rollback(ctx) }()

		_, err = tx.SpendSpins(ctx, "user-3", 3)
		if !errors.Is(err, domain.ErrInsufficientCredits) {
			t.Fatalf("expected ErrInsufficientCredits, got %v", err)
		}
	})

	t.Run("SpendSpins rollback leaves counters untouched", func(t *testing.T) {
		if _, err := repo.GetOrCreateAccount(ctx, "user-4", "dave"); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}
		if err := repo.AddSpins(ctx, "user-4", 10); err != nil {
			t.Fatalf("AddSpins failed: %v", err)
		}

		tx, err := repo.BeginSpinTx(ctx)
		if err != nil {
			t.Fatalf("BeginSpinTx failed: %v", err)
		}
		if _, err := tx.SpendSpins(ctx, "user-4", 4); err != nil {
			t.Fatalf("SpendSpins failed: %v", err)
		}
		if err := tx.Rollback(ctx); err != nil {
			t.Fatalf("Rollback failed: %v", err)
		}

		account, err := repo.GetAccount(ctx, "user-4")
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}
		if account.AvailableSpins != 10 || account.TotalSpinsUsed != 0 {
			t.Errorf("expected rollback to restore counters, got %+v", account)
		}
	})

	t.Run("CreditEarnings", func(t *testing.T) {
		if _, err := repo.GetOrCreateAccount(ctx, "user-5", "erin"); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}
		if err := repo.CreditEarnings(ctx, "user-5", 25); err != nil {
			t.Fatalf("CreditEarnings failed: %v", err)
		}
		if err := repo.CreditEarnings(ctx, "user-5", 10); err != nil {
			t.Fatalf("CreditEarnings failed: %v", err)
		}
		account, err := repo.GetAccount(ctx, "user-5")
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}
		if account.TotalChipsEarned != 35 {
			t.Errorf("expected 35 chips earned, got %d", account.TotalChipsEarned)
		}
	})
}

func TestLedgerRepository_Integration(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	accounts := NewAccountRepository(pool)
	ledger := NewLedgerRepository(pool)

	insertEvents := func(t *testing.T, userID string, chips ...int) []uuid.UUID {
		t.Helper()
		tx, err := accounts.BeginSpinTx(ctx)
		if err != nil {
			t.Fatalf("BeginSpinTx failed: %v", err)
		}
		var events []domain.SpinEvent
		var ids []uuid.UUID
		for i, c := range chips {
			e := domain.SpinEvent{
				ID:             uuid.New(),
				UserID:         userID,
				SpinNumber:     i + 1,
				DisplayOutcome: "Golden Pineapple",
				RewardLabel:    "Chip Stack",
				RewardSource:   domain.RewardSourceMilestone,
				ChipValue:      c,
				Status:         domain.EventStatusPending,
				CreatedAt:      time.Now().UTC(),
			}
			events = append(events, e)
			ids = append(ids, e.ID)
		}
		if err := tx.InsertEvents(ctx, events); err != nil {
			t.Fatalf("InsertEvents failed: %v", err)
		}
		if err := tx.Commit(ctx); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}
		return ids
	}

	t.Run("ListPending", func(t *testing.T) {
		if _, err := accounts.GetOrCreateAccount(ctx, "ledger-1", "frank"); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}
		insertEvents(t, "ledger-1", 5, 10)

		pending, err := ledger.ListPending(ctx, "ledger-1")
		if err != nil {
			t.Fatalf("ListPending failed: %v", err)
		}
		if len(pending) != 2 {
			t.Fatalf("expected 2 pending events, got %d", len(pending))
		}
		if pending[0].SpinNumber != 1 {
			t.Errorf("expected oldest-first ordering, got spin %d first", pending[0].SpinNumber)
		}
	})

	t.Run("ApproveEvents credits chip sum once", func(t *testing.T) {
		if _, err := accounts.GetOrCreateAccount(ctx, "ledger-2", "grace"); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}
		ids := insertEvents(t, "ledger-2", 5, 25)

		credited, err := ledger.ApproveEvents(ctx, "ledger-2", ids)
		if err != nil {
			t.Fatalf("ApproveEvents failed: %v", err)
		}
		if credited != 30 {
			t.Errorf("expected 30 chips credited, got %d", credited)
		}

		// Second approval of the same events is a no-op.
		credited, err = ledger.ApproveEvents(ctx, "ledger-2", ids)
		if err != nil {
			t.Fatalf("repeat ApproveEvents failed: %v", err)
		}
		if credited != 0 {
			t.Errorf("expected repeat approval to credit 0, got %d", credited)
		}

		account, err := accounts.GetAccount(ctx, "ledger-2")
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}
		if account.TotalChipsEarned != 30 {
			t.Errorf("expected 30 chips earned after both calls, got %d", account.TotalChipsEarned)
		}

		pending, err := ledger.ListPending(ctx, "ledger-2")
		if err != nil {
			t.Fatalf("ListPending failed: %v", err)
		}
		if len(pending) != 0 {
			t.Errorf("expected no pending events after approval, got %d", len(pending))
		}
	})

	t.Run("Concurrent approvals credit exactly once", func(t *testing.T) {
		if _, err := accounts.GetOrCreateAccount(ctx, "ledger-3", "heidi"); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}
		ids := insertEvents(t, "ledger-3", 50)

		const resolvers = 8
		results := make([]int, resolvers)
		var wg sync.WaitGroup
		for i := 0; i < resolvers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				credited, err := ledger.ApproveEvents(ctx, "ledger-3", ids)
				if err != nil {
					t.Errorf("ApproveEvents failed: %v", err)
					return
				}
				results[i] = credited
			}(i)
		}
		wg.Wait()

		total := 0
		winners := 0
		for _, c := range results {
			total += c
			if c > 0 {
				winners++
			}
		}
		if winners != 1 || total != 50 {
			t.Errorf("expected exactly one resolver to credit 50, got %d winners totaling %d", winners, total)
		}

		account, err := accounts.GetAccount(ctx, "ledger-3")
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}
		if account.TotalChipsEarned != 50 {
			t.Errorf("expected 50 chips earned, got %d", account.TotalChipsEarned)
		}
	})

	t.Run("DiscardEvents", func(t *testing.T) {
		if _, err := accounts.GetOrCreateAccount(ctx, "ledger-4", "ivan"); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}
		ids := insertEvents(t, "ledger-4", 10, 5)

		if err := ledger.DiscardEvents(ctx, "ledger-4", ids); err != nil {
			t.Fatalf("DiscardEvents failed: %v", err)
		}
		pending, err := ledger.ListPending(ctx, "ledger-4")
		if err != nil {
			t.Fatalf("ListPending failed: %v", err)
		}
		if len(pending) != 0 {
			t.Errorf("expected pending set to be empty after discard, got %d", len(pending))
		}
		account, err := accounts.GetAccount(ctx, "ledger-4")
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}
		if account.TotalChipsEarned != 0 {
			t.Errorf("expected no earnings after rejection, got %d", account.TotalChipsEarned)
		}
	})
}

func TestTransferRepository_Integration(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	transfers := NewTransferRepository(pool)

	newRequest := func(t *testing.T, direction domain.TransferDirection, amount float64) *domain.TransferRequest {
		t.Helper()
		req := &domain.TransferRequest{
			ID:        uuid.New(),
			UserID:    "transfer-user",
			Username:  "judy",
			Direction: direction,
			Amount:    amount,
			Status:    domain.ApprovalStatusPending,
			CreatedAt: time.Now().UTC(),
		}
		if err := transfers.CreateRequest(ctx, req); err != nil {
			t.Fatalf("CreateRequest failed: %v", err)
		}
		return req
	}

	t.Run("Create and Get", func(t *testing.T) {
		req := newRequest(t, domain.TransferDeposit, 500)

		got, err := transfers.GetRequest(ctx, req.ID)
		if err != nil {
			t.Fatalf("GetRequest failed: %v", err)
		}
		if got.Direction != domain.TransferDeposit || got.Amount != 500 {
			t.Errorf("unexpected stored request: %+v", got)
		}
		if got.Status != domain.ApprovalStatusPending {
			t.Errorf("expected pending status, got %s", got.Status)
		}
	})

	t.Run("GetRequest missing", func(t *testing.T) {
		_, err := transfers.GetRequest(ctx, uuid.New())
		if !errors.Is(err, domain.ErrRequestNotFound) {
			t.Errorf("expected ErrRequestNotFound, got %v", err)
		}
	})

	t.Run("ResolveRequestIfPending wins once", func(t *testing.T) {
		req := newRequest(t, domain.TransferWithdrawal, 250)

		affected, err := transfers.ResolveRequestIfPending(ctx, req.ID, domain.ApprovalStatusApproved, "operator-a")
		if err != nil {
			t.Fatalf("ResolveRequestIfPending failed: %v", err)
		}
		if affected != 1 {
			t.Fatalf("expected first resolve to affect 1 row, got %d", affected)
		}

		affected, err = transfers.ResolveRequestIfPending(ctx, req.ID, domain.ApprovalStatusRejected, "operator-b")
		if err != nil {
			t.Fatalf("second ResolveRequestIfPending failed: %v", err)
		}
		if affected != 0 {
			t.Errorf("expected second resolve to affect 0 rows, got %d", affected)
		}

		got, err := transfers.GetRequest(ctx, req.ID)
		if err != nil {
			t.Fatalf("GetRequest failed: %v", err)
		}
		if got.Status != domain.ApprovalStatusApproved || got.ResolvedBy != "operator-a" {
			t.Errorf("expected first resolver to stick, got status=%s resolvedBy=%s", got.Status, got.ResolvedBy)
		}
	})
}
