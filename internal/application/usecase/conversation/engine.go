// Package conversation contains the assistant conversation use cases.
package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

// subscriberBuffer is how many notifications a slow subscriber may fall behind.
const subscriberBuffer = 16

// EngineConfig holds the assistant behaviour settings.
type EngineConfig struct {
	WelcomeMessage string
	ReplyDelay     time.Duration
	ReplyTimeout   time.Duration

	// SupersedePending cancels older pending replies when a new user message
	// arrives. When false every message gets its own reply.
	SupersedePending bool
}

// Notification tells subscribers the log grew and which message is now last.
type Notification struct {
	Length int
	Latest entity.ChatMessage
}

// Engine is the append-only assistant conversation. Every state change is
// applied under one mutex, so events are processed one at a time.
type Engine struct {
	responder adapter.Responder
	mirror    adapter.ChatRepository // Optional
	scheduler Scheduler
	clock     func() time.Time
	cfg       EngineConfig

	mu          sync.Mutex
	log         []entity.ChatMessage
	pending     map[uuid.UUID]Timer
	subscribers map[int]chan Notification
	nextSubID   int
	closed      bool

	replies sync.WaitGroup
}

// NewEngine creates a new Engine. A nil scheduler uses the runtime timer, a
// nil clock uses time.Now and a nil mirror keeps the log in memory only.
func NewEngine(
	responder adapter.Responder,
	mirror adapter.ChatRepository,
	scheduler Scheduler,
	clock func() time.Time,
	cfg EngineConfig,
) *Engine {
	if scheduler == nil {
		scheduler = RealScheduler{}
	}
	if clock == nil {
		clock = time.Now
	}
	return &Engine{
		responder:   responder,
		mirror:      mirror,
		scheduler:   scheduler,
		clock:       clock,
		cfg:         cfg,
		pending:     make(map[uuid.UUID]Timer),
		subscribers: make(map[int]chan Notification),
	}
}

// Restore loads the mirrored log. It only applies to an empty engine.
func (e *Engine) Restore(ctx context.Context) error {
	if e.mirror == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.log) > 0 {
		return nil
	}

	messages, err := e.mirror.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore chat log: %w", err)
	}
	e.log = messages

	slog.Info("Chat log restored", "messages", len(messages))
	return nil
}

// Open shows the assistant. The welcome message is appended only when the
// log is empty, so repeated opens leave one welcome message. It reports
// whether a message was appended.
func (e *Engine) Open(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.log) > 0 {
		return false, nil
	}

	welcome := entity.NewChatMessage(e.cfg.WelcomeMessage, entity.ChatSenderBot, e.clock())
	if err := e.appendLocked(ctx, welcome); err != nil {
		return false, err
	}
	return true, nil
}

// SubmitUserMessage appends a user turn and schedules the scripted reply.
// Blank text is ignored and returns a nil message.
func (e *Engine) SubmitUserMessage(ctx context.Context, text string) (*entity.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	message := entity.NewChatMessage(text, entity.ChatSenderUser, e.clock())
	if err := e.appendLocked(ctx, message); err != nil {
		return nil, err
	}

	if e.closed {
		return &message, nil
	}

	if e.cfg.SupersedePending {
		e.cancelPendingLocked()
	}

	triggerID := message.ID
	e.replies.Add(1)
	e.pending[triggerID] = e.scheduler.AfterFunc(e.cfg.ReplyDelay, func() {
		defer e.replies.Done()
		e.fireReply(triggerID)
	})

	return &message, nil
}

// fireReply generates and appends the reply to triggerID. The log is
// snapshotted when the timer fires; a failed generation appends nothing.
func (e *Engine) fireReply(triggerID uuid.UUID) {
	e.mu.Lock()
	if _, ok := e.pending[triggerID]; !ok {
		e.mu.Unlock()
		return
	}
	history := append([]entity.ChatMessage(nil), e.log...)
	e.mu.Unlock()

	var trigger entity.ChatMessage
	for _, m := range history {
		if m.ID == triggerID {
			trigger = m
			break
		}
	}

	genCtx := context.Background()
	if e.cfg.ReplyTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(genCtx, e.cfg.ReplyTimeout)
		defer cancel()
	}

	text, err := e.generate(genCtx, history, trigger)

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.pending[triggerID]; !ok {
		return
	}
	delete(e.pending, triggerID)

	if err != nil {
		slog.Error("Assistant reply dropped", "trigger_id", triggerID, "error", err)
		return
	}

	reply := entity.NewChatMessage(text, entity.ChatSenderBot, e.clock())
	if err := e.appendLocked(context.Background(), reply); err != nil {
		slog.Error("Assistant reply not appended", "trigger_id", triggerID, "error", err)
	}
}

// generate calls the responder, turning panics and empty text into errors.
func (e *Engine) generate(ctx context.Context, history []entity.ChatMessage, trigger entity.ChatMessage) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = domainerror.NewConversationError(
				domainerror.ErrCodeResponderPanicked,
				fmt.Sprintf("responder panicked: %v", r),
				domainerror.ErrResponderPanicked,
			)
		}
	}()

	text, err = e.responder.Reply(ctx, history, trigger)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", domainerror.NewConversationError(
			domainerror.ErrCodeEmptyReply,
			"responder returned an empty reply",
			domainerror.ErrEmptyReply,
		)
	}
	return text, nil
}

// appendLocked mirrors the message first so a mirror failure leaves the
// in-memory log untouched. The caller must hold e.mu.
func (e *Engine) appendLocked(ctx context.Context, message entity.ChatMessage) error {
	if e.mirror != nil {
		if err := e.mirror.Append(ctx, message); err != nil {
			return domainerror.NewConversationError(
				domainerror.ErrCodeChatMirrorUnavailable,
				"failed to store chat message",
				fmt.Errorf("%w: %w", domainerror.ErrChatMirrorUnavailable, err),
			)
		}
	}

	e.log = append(e.log, message)

	notification := Notification{Length: len(e.log), Latest: message}
	for id, ch := range e.subscribers {
		select {
		case ch <- notification:
		default:
			slog.Warn("Chat subscriber is behind, notification dropped", "subscriber", id)
		}
	}
	return nil
}

// cancelPendingLocked stops every queued reply. The caller must hold e.mu.
func (e *Engine) cancelPendingLocked() {
	for id, timer := range e.pending {
		if timer.Stop() {
			e.replies.Done()
		}
		delete(e.pending, id)
	}
}

// Messages returns a copy of the log in insertion order.
func (e *Engine) Messages() []entity.ChatMessage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]entity.ChatMessage(nil), e.log...)
}

// Pending returns the number of replies waiting to fire.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// Subscribe returns a channel that receives a notification after every
// append, and a function that ends the subscription.
func (e *Engine) Subscribe() (<-chan Notification, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch := make(chan Notification, subscriberBuffer)
	if e.closed {
		close(ch)
		return ch, func() {}
	}

	id := e.nextSubID
	e.nextSubID++
	e.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			// Close may already have closed the channel.
			if _, ok := e.subscribers[id]; ok {
				delete(e.subscribers, id)
				close(ch)
			}
		})
	}
}

// Clear drops the whole conversation, including queued replies.
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mirror != nil {
		if err := e.mirror.Clear(ctx); err != nil {
			return domainerror.NewConversationError(
				domainerror.ErrCodeChatMirrorUnavailable,
				"failed to clear chat log",
				fmt.Errorf("%w: %w", domainerror.ErrChatMirrorUnavailable, err),
			)
		}
	}

	e.cancelPendingLocked()
	e.log = nil
	return nil
}

// Wait blocks until every scheduled reply has fired or been cancelled.
func (e *Engine) Wait() {
	e.replies.Wait()
}

// Close cancels queued replies, stops scheduling new ones and closes every
// subscriber channel so open streams end. Messages can still be appended.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	e.cancelPendingLocked()

	for id, ch := range e.subscribers {
		delete(e.subscribers, id)
		close(ch)
	}
}
