package persistence

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
	"github.com/finance-tracker/companion/internal/integration/persistence/model"
)

// newTestDB opens a private in-memory sqlite database with every table migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(uuid.NewString(), "-", "") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newRecord(name string, kind entity.TransactionKind, amount string, createdAt time.Time) *entity.Transaction {
	record := entity.NewTransaction(name, "", "Food", kind, decimal.RequireFromString(amount),
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	record.CreatedAt = createdAt
	record.UpdatedAt = createdAt
	return record
}

func TestTransactionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTestDB(t))
	base := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	first := newRecord("Lunch", entity.TransactionKindExpense, "12.50", base)
	second := newRecord("Salary", entity.TransactionKindIncome, "2500.00", base.Add(time.Minute))
	for _, record := range []*entity.Transaction{first, second} {
		if err := repo.Create(ctx, record); err != nil {
			t.Fatalf("unexpected error creating %s: %v", record.Name, err)
		}
	}

	t.Run("list keeps insertion order", func(t *testing.T) {
		records, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if records[0].ID != first.ID || records[1].ID != second.ID {
			t.Error("expected records in creation order")
		}
	})

	t.Run("find round trips amount, date and direction", func(t *testing.T) {
		found, err := repo.FindByID(ctx, first.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found.AmountString() != "12.50" {
			t.Errorf("expected amount 12.50, got %s", found.AmountString())
		}
		if found.DateString() != "2024-03-15" {
			t.Errorf("expected date 2024-03-15, got %s", found.DateString())
		}
		if found.Direction != entity.TransactionDirectionDebit {
			t.Errorf("expected debit, got %s", found.Direction)
		}
	})

	t.Run("update replaces fields", func(t *testing.T) {
		first.Name = "Dinner"
		first.Amount = decimal.RequireFromString("30.00")
		if err := repo.Update(ctx, first); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		found, err := repo.FindByID(ctx, first.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found.Name != "Dinner" || found.AmountString() != "30.00" {
			t.Errorf("expected updated record, got %s %s", found.Name, found.AmountString())
		}
	})

	t.Run("update of unknown record is not found", func(t *testing.T) {
		ghost := newRecord("Ghost", entity.TransactionKindExpense, "1.00", base)
		if err := repo.Update(ctx, ghost); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})

	t.Run("delete hides the record", func(t *testing.T) {
		if err := repo.Delete(ctx, second.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := repo.FindByID(ctx, second.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
		if err := repo.Delete(ctx, second.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound on second delete, got %v", err)
		}
	})
}

func TestGoalRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepository(newTestDB(t))

	goal := entity.NewGoal("Bike", "Road bike", "", "Save monthly", decimal.NewFromInt(800), nil)
	if err := repo.Create(ctx, goal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("progress survives a round trip", func(t *testing.T) {
		if !goal.ApplyProgress(decimal.NewFromInt(800)) {
			t.Fatal("expected progress to apply")
		}
		if err := repo.Update(ctx, goal); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		found, err := repo.FindByID(ctx, goal.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !found.Completed() || !found.Current().Equal(decimal.NewFromInt(800)) {
			t.Errorf("expected completed goal at 800, got %s completed=%v", found.Current(), found.Completed())
		}
	})

	t.Run("reset is persisted", func(t *testing.T) {
		goal.Reset()
		if err := repo.Update(ctx, goal); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		found, err := repo.FindByID(ctx, goal.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found.Completed() || !found.Current().IsZero() {
			t.Errorf("expected reset goal, got %s completed=%v", found.Current(), found.Completed())
		}
	})

	t.Run("list and delete", func(t *testing.T) {
		goals, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(goals) != 1 {
			t.Fatalf("expected 1 goal, got %d", len(goals))
		}
		if err := repo.Delete(ctx, goal.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := repo.FindByID(ctx, goal.ID); !errors.Is(err, domainerror.ErrGoalNotFound) {
			t.Errorf("expected ErrGoalNotFound, got %v", err)
		}
	})
}

func TestTokenRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTokenRepository(newTestDB(t))
	expiresAt := time.Now().UTC().Add(time.Hour)

	if err := repo.SaveIssuedToken(ctx, "jti-1", "owner", expiresAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.SaveIssuedToken(ctx, "jti-2", "owner", expiresAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.SaveIssuedToken(ctx, "jti-old", "owner", time.Now().UTC().Add(-time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("issued token is active", func(t *testing.T) {
		active, err := repo.IsTokenActive(ctx, "jti-1")
		if err != nil || !active {
			t.Errorf("expected active token, got %v (err %v)", active, err)
		}
	})

	t.Run("expired and unknown tokens are inactive", func(t *testing.T) {
		for _, id := range []string{"jti-old", "jti-unknown"} {
			active, err := repo.IsTokenActive(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if active {
				t.Errorf("expected %s to be inactive", id)
			}
		}
	})

	t.Run("revoked token is inactive", func(t *testing.T) {
		if err := repo.RevokeToken(ctx, "jti-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		active, _ := repo.IsTokenActive(ctx, "jti-1")
		if active {
			t.Error("expected revoked token to be inactive")
		}
	})

	t.Run("revoke all for subject", func(t *testing.T) {
		n, err := repo.RevokeAllForSubject(ctx, "owner")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 2 {
			t.Errorf("expected 2 revoked rows, got %d", n)
		}
		active, _ := repo.IsTokenActive(ctx, "jti-2")
		if active {
			t.Error("expected jti-2 to be inactive")
		}
	})
}

func TestChatRepository(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := NewChatRepository(client, "companion:chat")
	at := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

	welcome := entity.NewChatMessage("Hi there", entity.ChatSenderBot, at)
	question := entity.NewChatMessage("What is my balance?", entity.ChatSenderUser, at.Add(time.Second))
	for _, m := range []entity.ChatMessage{welcome, question} {
		if err := repo.Append(ctx, m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	messages, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].ID != welcome.ID || messages[1].ID != question.ID {
		t.Error("expected messages in append order")
	}
	if !messages[1].IsFromUser() || !messages[1].Timestamp.Equal(question.Timestamp) {
		t.Errorf("expected user message at %s, got %+v", question.Timestamp, messages[1])
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	messages, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("expected empty log after clear, got %d", len(messages))
	}
}
