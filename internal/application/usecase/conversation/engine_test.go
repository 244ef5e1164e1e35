// Package conversation contains the assistant conversation use cases.
package conversation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

const (
	testWelcome = "Hi there! I'm your financial assistant. How can I help you today?"
	testReply   = "I'm your financial assistant. How can I help you manage your money better?"
	testDelay   = time.Second
)

type responderFunc func(ctx context.Context, history []entity.ChatMessage, trigger entity.ChatMessage) (string, error)

func (f responderFunc) Reply(ctx context.Context, history []entity.ChatMessage, trigger entity.ChatMessage) (string, error) {
	return f(ctx, history, trigger)
}

// memoryMirror is an in-memory ChatRepository that can be told to fail.
type memoryMirror struct {
	mu       sync.Mutex
	messages []entity.ChatMessage
	failWith error
}

func (m *memoryMirror) Append(ctx context.Context, message entity.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.messages = append(m.messages, message)
	return nil
}

func (m *memoryMirror) List(ctx context.Context) ([]entity.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.ChatMessage(nil), m.messages...), nil
}

func (m *memoryMirror) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
	return nil
}

func newTestEngine(responder responderFunc, mirror *memoryMirror, supersede bool) (*Engine, *ManualScheduler) {
	scheduler := NewManualScheduler()
	if responder == nil {
		responder = func(ctx context.Context, history []entity.ChatMessage, trigger entity.ChatMessage) (string, error) {
			return testReply, nil
		}
	}
	cfg := EngineConfig{
		WelcomeMessage:   testWelcome,
		ReplyDelay:       testDelay,
		ReplyTimeout:     time.Second,
		SupersedePending: supersede,
	}
	var engine *Engine
	if mirror != nil {
		engine = NewEngine(responder, mirror, scheduler, nil, cfg)
	} else {
		engine = NewEngine(responder, nil, scheduler, nil, cfg)
	}
	return engine, scheduler
}

func TestEngine_Open(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(nil, nil, false)

	appended, err := engine.Open(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !appended {
		t.Error("expected the first open to append a welcome message")
	}

	for i := 0; i < 3; i++ {
		appended, err := engine.Open(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if appended {
			t.Error("expected repeated opens to be a no-op")
		}
	}

	messages := engine.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected exactly one message, got %d", len(messages))
	}
	if messages[0].Sender != entity.ChatSenderBot || messages[0].Text != testWelcome {
		t.Errorf("unexpected welcome message: %+v", messages[0])
	}
}

func TestEngine_SubmitAddsUserThenBotTurn(t *testing.T) {
	ctx := context.Background()
	engine, scheduler := newTestEngine(nil, nil, false)
	if _, err := engine.Open(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := len(engine.Messages())

	message, err := engine.SubmitUserMessage(ctx, "How do I budget?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if message == nil || message.Sender != entity.ChatSenderUser {
		t.Fatalf("expected a user message, got %+v", message)
	}

	if got := len(engine.Messages()); got != before+1 {
		t.Errorf("expected %d messages before the delay, got %d", before+1, got)
	}
	if engine.Pending() != 1 {
		t.Errorf("expected 1 pending reply, got %d", engine.Pending())
	}

	scheduler.Advance(testDelay / 2)
	if got := len(engine.Messages()); got != before+1 {
		t.Errorf("expected no reply before the delay elapses, got %d messages", got)
	}

	scheduler.Advance(testDelay / 2)
	messages := engine.Messages()
	if len(messages) != before+2 {
		t.Fatalf("expected %d messages after the delay, got %d", before+2, len(messages))
	}
	if messages[before].Sender != entity.ChatSenderUser {
		t.Error("expected the user turn first")
	}
	if messages[before+1].Sender != entity.ChatSenderBot || messages[before+1].Text != testReply {
		t.Errorf("unexpected bot turn: %+v", messages[before+1])
	}
	if engine.Pending() != 0 {
		t.Errorf("expected no pending replies, got %d", engine.Pending())
	}
}

func TestEngine_BlankSubmissionIsNoOp(t *testing.T) {
	engine, scheduler := newTestEngine(nil, nil, false)

	for _, text := range []string{"", "   ", "\n\t"} {
		message, err := engine.SubmitUserMessage(context.Background(), text)
		if err != nil || message != nil {
			t.Errorf("expected no-op for %q, got %+v, %v", text, message, err)
		}
	}

	if len(engine.Messages()) != 0 {
		t.Error("expected the log to stay empty")
	}
	if scheduler.Scheduled() != 0 {
		t.Error("expected nothing to be scheduled")
	}
}

func TestEngine_FailedReplyAppendsNothing(t *testing.T) {
	tests := []struct {
		name      string
		responder responderFunc
	}{
		{
			name: "responder error",
			responder: func(ctx context.Context, history []entity.ChatMessage, trigger entity.ChatMessage) (string, error) {
				return "", errors.New("script unavailable")
			},
		},
		{
			name: "responder panic",
			responder: func(ctx context.Context, history []entity.ChatMessage, trigger entity.ChatMessage) (string, error) {
				panic("boom")
			},
		},
		{
			name: "empty reply",
			responder: func(ctx context.Context, history []entity.ChatMessage, trigger entity.ChatMessage) (string, error) {
				return "  ", nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, scheduler := newTestEngine(tt.responder, nil, false)

			if _, err := engine.SubmitUserMessage(context.Background(), "hello"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			scheduler.Advance(testDelay)

			messages := engine.Messages()
			if len(messages) != 1 {
				t.Fatalf("expected only the user message, got %d", len(messages))
			}
			if messages[0].Sender != entity.ChatSenderUser {
				t.Error("expected the log to be unchanged")
			}
			if engine.Pending() != 0 {
				t.Errorf("expected the failed reply to leave the pending set, got %d", engine.Pending())
			}
		})
	}
}

func TestEngine_HistoryIsSnapshotAtFiring(t *testing.T) {
	var seen []int
	responder := func(ctx context.Context, history []entity.ChatMessage, trigger entity.ChatMessage) (string, error) {
		seen = append(seen, len(history))
		return "ok", nil
	}
	engine, scheduler := newTestEngine(responder, nil, false)
	ctx := context.Background()

	if _, err := engine.SubmitUserMessage(ctx, "first"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scheduler.Advance(testDelay / 2)
	if _, err := engine.SubmitUserMessage(ctx, "second"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scheduler.Advance(testDelay)

	// The first reply fires with both user messages in the log; the second
	// also sees the first reply.
	if len(seen) != 2 || seen[0] != 2 || seen[1] != 3 {
		t.Errorf("unexpected history sizes: %v", seen)
	}
	if got := len(engine.Messages()); got != 4 {
		t.Errorf("expected 4 messages, got %d", got)
	}
}

func TestEngine_SupersedePending(t *testing.T) {
	var triggers []string
	responder := func(ctx context.Context, history []entity.ChatMessage, trigger entity.ChatMessage) (string, error) {
		triggers = append(triggers, trigger.Text)
		return "reply to " + trigger.Text, nil
	}
	engine, scheduler := newTestEngine(responder, nil, true)
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		if _, err := engine.SubmitUserMessage(ctx, text); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if engine.Pending() != 1 {
		t.Errorf("expected only the latest reply pending, got %d", engine.Pending())
	}

	scheduler.Advance(testDelay)
	engine.Wait()

	if len(triggers) != 1 || triggers[0] != "three" {
		t.Errorf("expected a single reply to the latest message, got %v", triggers)
	}
	if got := len(engine.Messages()); got != 4 {
		t.Errorf("expected 4 messages, got %d", got)
	}
}

func TestEngine_IndependentRepliesByDefault(t *testing.T) {
	engine, scheduler := newTestEngine(nil, nil, false)
	ctx := context.Background()

	for _, text := range []string{"one", "two"} {
		if _, err := engine.SubmitUserMessage(ctx, text); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if engine.Pending() != 2 {
		t.Errorf("expected 2 pending replies, got %d", engine.Pending())
	}

	scheduler.Advance(testDelay)
	engine.Wait()

	messages := engine.Messages()
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	if messages[2].Sender != entity.ChatSenderBot || messages[3].Sender != entity.ChatSenderBot {
		t.Error("expected two bot replies after the two user turns")
	}
}

func TestEngine_Mirror(t *testing.T) {
	ctx := context.Background()

	t.Run("appends are mirrored and restored", func(t *testing.T) {
		mirror := &memoryMirror{}
		engine, scheduler := newTestEngine(nil, mirror, false)
		if _, err := engine.Open(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := engine.SubmitUserMessage(ctx, "hi"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		scheduler.Advance(testDelay)

		restored, _ := newTestEngine(nil, mirror, false)
		if err := restored.Restore(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := len(restored.Messages()); got != 3 {
			t.Fatalf("expected 3 restored messages, got %d", got)
		}

		appended, err := restored.Open(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if appended {
			t.Error("expected open after restore not to add a second welcome")
		}
	})

	t.Run("mirror failure leaves the log untouched", func(t *testing.T) {
		mirror := &memoryMirror{failWith: errors.New("connection reset")}
		engine, scheduler := newTestEngine(nil, mirror, false)

		_, err := engine.SubmitUserMessage(ctx, "hi")
		if !errors.Is(err, domainerror.ErrChatMirrorUnavailable) {
			t.Fatalf("expected ErrChatMirrorUnavailable, got %v", err)
		}
		if len(engine.Messages()) != 0 {
			t.Error("expected no message after a failed mirror append")
		}
		if scheduler.Scheduled() != 0 {
			t.Error("expected no reply to be scheduled")
		}
	})

	t.Run("clear empties log and mirror", func(t *testing.T) {
		mirror := &memoryMirror{}
		engine, scheduler := newTestEngine(nil, mirror, false)
		if _, err := engine.SubmitUserMessage(ctx, "hi"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := engine.Clear(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		scheduler.Advance(testDelay)
		engine.Wait()

		if len(engine.Messages()) != 0 {
			t.Error("expected an empty log")
		}
		stored, _ := mirror.List(ctx)
		if len(stored) != 0 {
			t.Error("expected an empty mirror")
		}
	})
}

func TestEngine_Subscribe(t *testing.T) {
	engine, scheduler := newTestEngine(nil, nil, false)
	notifications, unsubscribe := engine.Subscribe()
	defer unsubscribe()

	ctx := context.Background()
	if _, err := engine.Open(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := engine.SubmitUserMessage(ctx, "hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scheduler.Advance(testDelay)

	for want := 1; want <= 3; want++ {
		select {
		case n := <-notifications:
			if n.Length != want {
				t.Errorf("expected length %d, got %d", want, n.Length)
			}
		default:
			t.Fatalf("expected notification %d", want)
		}
	}
}

func TestEngine_CloseStopsReplies(t *testing.T) {
	engine, scheduler := newTestEngine(nil, nil, false)
	ctx := context.Background()

	if _, err := engine.SubmitUserMessage(ctx, "hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	engine.Close()
	scheduler.Advance(testDelay)
	engine.Wait()

	if got := len(engine.Messages()); got != 1 {
		t.Errorf("expected no reply after close, got %d messages", got)
	}
}

func TestEngine_CloseEndsSubscriptions(t *testing.T) {
	engine, _ := newTestEngine(nil, nil, false)
	notifications, unsubscribe := engine.Subscribe()

	engine.Close()

	select {
	case _, ok := <-notifications:
		if ok {
			t.Error("expected the subscription channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("expected close to end the subscription")
	}

	// Unsubscribing after close must not close the channel twice.
	unsubscribe()
	unsubscribe()

	late, lateUnsubscribe := engine.Subscribe()
	defer lateUnsubscribe()
	if _, ok := <-late; ok {
		t.Error("expected a subscription opened after close to be closed")
	}

	// Appends after close no longer reach the closed channels.
	if _, err := engine.SubmitUserMessage(context.Background(), "still here"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestKeywordResponder(t *testing.T) {
	responder := NewKeywordResponder(DefaultKeywordRules, NewStaticResponder(testReply))
	ctx := context.Background()

	tests := []struct {
		text string
		want string
	}{
		{"How should I BUDGET this month?", DefaultKeywordRules[0].Reply},
		{"I want to save more", DefaultKeywordRules[1].Reply},
		{"what's the weather", testReply},
		{"this", testReply},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := responder.Reply(ctx, nil, entity.ChatMessage{Text: tt.text})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

type ledgerStore struct {
	records []*entity.Transaction
}

func (s *ledgerStore) List(ctx context.Context) ([]*entity.Transaction, error) {
	return s.records, nil
}

func (s *ledgerStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}

func (s *ledgerStore) Create(ctx context.Context, transaction *entity.Transaction) error { return nil }

func (s *ledgerStore) Update(ctx context.Context, transaction *entity.Transaction) error { return nil }

func (s *ledgerStore) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func TestLedgerResponder(t *testing.T) {
	date := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	store := &ledgerStore{records: []*entity.Transaction{
		entity.NewTransaction("Pay", "", "Salary", entity.TransactionKindIncome, decimal.NewFromInt(2000), date),
		entity.NewTransaction("Rent", "", "Housing", entity.TransactionKindExpense, decimal.RequireFromString("750.50"), date),
	}}
	responder := NewLedgerResponder(store, NewStaticResponder(testReply))
	ctx := context.Background()

	balance, err := responder.Reply(ctx, nil, entity.ChatMessage{Text: "What's my balance?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != "Your income is 2000.00 and your expenses are 750.50, leaving a balance of 1249.50." {
		t.Errorf("unexpected balance reply: %q", balance)
	}

	spent, err := responder.Reply(ctx, nil, entity.ChatMessage{Text: "how much have I spent"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spent != "You have spent 750.50 across 1 transactions." {
		t.Errorf("unexpected spending reply: %q", spent)
	}

	other, err := responder.Reply(ctx, nil, entity.ChatMessage{Text: "thanks"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other != testReply {
		t.Errorf("expected fallback reply, got %q", other)
	}
}
