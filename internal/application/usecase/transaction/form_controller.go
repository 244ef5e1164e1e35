// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

// FormMode selects whether a submission creates a record or replaces one.
type FormMode string

const (
	FormModeCreate FormMode = "create"
	FormModeEdit   FormMode = "edit"
)

// SubmitInput represents the input for a form submission.
type SubmitInput struct {
	Mode     FormMode
	Draft    Draft
	Existing *entity.Transaction // Required for FormModeEdit
}

// SubmitOutput represents the output of a successful submission.
// Completed tells the caller it may close the input surface.
type SubmitOutput struct {
	Record    *entity.Transaction
	Completed bool
}

// FormController orchestrates create and edit submissions for one form
// instance. At most one submission is in flight at a time; repeats made while
// one is pending are rejected and never reach the store.
type FormController struct {
	store      adapter.TransactionStore
	categories entity.CategorySet
	now        func() time.Time

	inFlight atomic.Bool

	mu    sync.Mutex
	draft *Draft
}

// NewFormController creates a new FormController instance. A nil clock uses time.Now.
func NewFormController(store adapter.TransactionStore, categories entity.CategorySet, clock func() time.Time) *FormController {
	if clock == nil {
		clock = time.Now
	}
	return &FormController{
		store:      store,
		categories: categories,
		now:        clock,
	}
}

// Begin opens the form. For an edit the draft starts from the existing
// record's values; otherwise it starts empty with the given kind.
func (c *FormController) Begin(kind entity.TransactionKind, existing *entity.Transaction) Draft {
	draft := Draft{Kind: kind}
	if existing != nil {
		draft = Draft{
			Name:     existing.Name,
			Note:     existing.Note,
			Category: existing.Category,
			Kind:     existing.Kind,
			Amount:   existing.AmountString(),
			Date:     existing.DateString(),
		}
	}

	c.mu.Lock()
	c.draft = &draft
	c.mu.Unlock()

	return draft
}

// Draft returns the retained draft, if any. A draft survives failed
// submissions and is cleared by a successful one.
func (c *FormController) Draft() (Draft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft == nil {
		return Draft{}, false
	}
	return *c.draft, true
}

// InFlight reports whether a submission is currently pending.
func (c *FormController) InFlight() bool {
	return c.inFlight.Load()
}

// Submit validates the draft, builds the record and hands it to the store.
func (c *FormController) Submit(ctx context.Context, input SubmitInput) (*SubmitOutput, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeSubmissionInFlight,
			"a submission is already in progress",
			domainerror.ErrSubmissionInFlight,
		)
	}
	defer c.inFlight.Store(false)

	c.retain(input.Draft)

	if input.Mode == FormModeEdit && input.Existing == nil {
		return nil, domainerror.NewValidationError(
			FieldExisting,
			domainerror.ErrCodeMissingExistingRecord,
			"an edit needs the record being edited",
			domainerror.ErrMissingExistingRecord,
		)
	}

	validated, err := ValidateDraft(input.Draft, c.categories)
	if err != nil {
		return nil, err
	}

	var existing *entity.Transaction
	if input.Mode == FormModeEdit {
		existing = input.Existing
	}
	record := BuildRecord(validated, existing, c.now())

	if existing == nil {
		err = c.store.Create(ctx, record)
	} else {
		err = c.store.Update(ctx, record)
	}
	if errors.Is(err, domainerror.ErrTransactionNotFound) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"the transaction being edited no longer exists",
			err,
		)
	}
	if err != nil {
		slog.Error("Failed to persist transaction",
			"transaction_id", record.ID,
			"mode", input.Mode,
			"error", err,
		)
		op := "create"
		if existing != nil {
			op = "update"
		}
		return nil, domainerror.NewPersistenceError(op, err)
	}

	c.mu.Lock()
	c.draft = nil
	c.mu.Unlock()

	return &SubmitOutput{
		Record:    record,
		Completed: true,
	}, nil
}

func (c *FormController) retain(draft Draft) {
	c.mu.Lock()
	c.draft = &draft
	c.mu.Unlock()
}

// Default limits for FormSessions.
const (
	DefaultMaxFormSessions = 1000
	DefaultFormSessionIdle = 30 * time.Minute
)

// formSession is an open form and the last time a client used it.
type formSession struct {
	controller *FormController
	touched    time.Time
}

// FormSessions keys form controllers by a client-supplied form id so that a
// stateless transport still gets single-flight per form. Sessions idle for
// longer than the idle limit are dropped by Cleanup, and opening a session
// beyond the size limit evicts the least recently used one.
type FormSessions struct {
	store      adapter.TransactionStore
	categories entity.CategorySet
	clock      func() time.Time

	mu          sync.Mutex
	sessions    map[string]*formSession
	maxSessions int
	maxIdle     time.Duration
}

// NewFormSessions creates a new FormSessions instance with the default limits.
func NewFormSessions(store adapter.TransactionStore, categories entity.CategorySet, clock func() time.Time) *FormSessions {
	if clock == nil {
		clock = time.Now
	}
	return &FormSessions{
		store:       store,
		categories:  categories,
		clock:       clock,
		sessions:    make(map[string]*formSession),
		maxSessions: DefaultMaxFormSessions,
		maxIdle:     DefaultFormSessionIdle,
	}
}

// SetLimits changes the size and idle limits. Non-positive values keep the
// current setting.
func (s *FormSessions) SetLimits(maxSessions int, maxIdle time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if maxSessions > 0 {
		s.maxSessions = maxSessions
	}
	if maxIdle > 0 {
		s.maxIdle = maxIdle
	}
}

// Get returns the controller for formID, creating one when needed.
// An empty formID always gets a fresh, unshared controller.
func (s *FormSessions) Get(formID string) *FormController {
	if formID == "" {
		return NewFormController(s.store, s.categories, s.clock)
	}

	now := s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[formID]
	if !ok {
		if len(s.sessions) >= s.maxSessions {
			s.evictLocked(now)
		}
		session = &formSession{controller: NewFormController(s.store, s.categories, s.clock)}
		s.sessions[formID] = session
	}
	session.touched = now
	return session.controller
}

// evictLocked drops idle sessions and, if the map is still full, the least
// recently used session that has no submission in flight. The caller must
// hold s.mu.
func (s *FormSessions) evictLocked(now time.Time) {
	s.dropIdleLocked(now)
	if len(s.sessions) < s.maxSessions {
		return
	}

	var (
		oldestID string
		oldest   *formSession
	)
	for id, session := range s.sessions {
		if session.controller.InFlight() {
			continue
		}
		if oldest == nil || session.touched.Before(oldest.touched) {
			oldestID, oldest = id, session
		}
	}
	if oldest != nil {
		delete(s.sessions, oldestID)
	}
}

func (s *FormSessions) dropIdleLocked(now time.Time) int {
	removed := 0
	for id, session := range s.sessions {
		if session.controller.InFlight() {
			continue
		}
		if now.Sub(session.touched) > s.maxIdle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Cleanup drops sessions idle for longer than the idle limit and returns
// how many were removed.
func (s *FormSessions) Cleanup() int {
	now := s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropIdleLocked(now)
}

// Lookup returns the open controller for formID without creating one.
func (s *FormSessions) Lookup(formID string) (*FormController, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[formID]
	if !ok {
		return nil, false
	}
	return session.controller, true
}

// Submit routes a submission to the controller for formID and releases the
// session once the submission completes.
func (s *FormSessions) Submit(ctx context.Context, formID string, input SubmitInput) (*SubmitOutput, error) {
	controller := s.Get(formID)

	output, err := controller.Submit(ctx, input)
	if err != nil {
		return nil, err
	}

	s.Release(formID, controller)
	return output, nil
}

// Release drops the session for formID if it still belongs to controller.
func (s *FormSessions) Release(formID string, controller *FormController) {
	if formID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.sessions[formID]; ok && current.controller == controller {
		delete(s.sessions, formID)
	}
}

// Len returns the number of open sessions.
func (s *FormSessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
