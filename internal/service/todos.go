package service

import (
	"context"
	"expvar"
	"fmt"
	"log/slog"
	"time"

	"github.com/CatalinMihaiIonescu/ndcd-capstone-project/internal/events"
	"github.com/CatalinMihaiIonescu/ndcd-capstone-project/internal/models"

	"github.com/google/uuid"
)

// TodoStore is the slice of the record store the todo service needs.
type TodoStore interface {
	ListTodos(ctx context.Context, userID string) ([]models.Todo, error)
	PutTodo(ctx context.Context, t models.Todo) error
	GetTodo(ctx context.Context, userID, todoID string) (*models.Todo, error)
	UpdateTodo(ctx context.Context, userID, todoID string, upd models.TodoUpdate) error
	DeleteTodo(ctx context.Context, userID, todoID string) error
}

// Publisher sends a message to subscribers whose filter matches userID.
type Publisher interface {
	Publish(ctx context.Context, userID, message string) error
}

// UploadSigner mints a time-bounded write credential for one object key.
type UploadSigner interface {
	UploadURL(ctx context.Context, objectID string) (string, error)
}

// OutcomeRecorder receives the result of each creation-notification
// attempt. Recording is best-effort; a recorder failure is counted and
// logged but never propagates.
type OutcomeRecorder interface {
	PublishOutcome(ctx context.Context, o events.NotificationOutcome) error
}

// Counters kept alongside the outcome stream so a down Kafka broker
// doesn't also take out the numbers.
var (
	notifySent          = expvar.NewInt("notifications_sent")
	notifySkipped       = expvar.NewInt("notifications_skipped_no_profile")
	notifyFailed        = expvar.NewInt("notifications_failed")
	outcomePublishFails = expvar.NewInt("notification_outcome_publish_failures")
)

// Todos orchestrates todo CRUD, attachment references, upload
// authorization, and the creation notification.
type Todos struct {
	store    TodoStore
	profiles ProfileStore
	broker   Publisher
	signer   UploadSigner
	outcomes OutcomeRecorder // nil disables the stream
	log      *slog.Logger

	// attachmentBase is the public read prefix; the todo id is the key.
	attachmentBase string

	newID func() string
	now   func() time.Time
}

func NewTodos(store TodoStore, profiles ProfileStore, broker Publisher, signer UploadSigner, outcomes OutcomeRecorder, attachmentBase string) *Todos {
	return &Todos{
		store:          store,
		profiles:       profiles,
		broker:         broker,
		signer:         signer,
		outcomes:       outcomes,
		log:            slog.With("component", "todos"),
		attachmentBase: attachmentBase,
		newID:          uuid.NewString,
		now:            time.Now,
	}
}

func (s *Todos) List(ctx context.Context, userID string) ([]models.Todo, error) {
	todos, err := s.store.ListTodos(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return todos, nil
}

// Create persists a new todo and fires the creation notification. The
// attachment reference is computed up front from the todo id; it points
// where an upload would land, not at anything that exists yet. By the
// time the notification step runs the todo is already durable, so nothing
// in that step can fail the call.
func (s *Todos) Create(ctx context.Context, userID, name, dueDate string) (models.Todo, error) {
	todoID := s.newID()

	todo := models.Todo{
		UserID:        userID,
		TodoID:        todoID,
		Name:          name,
		DueDate:       dueDate,
		Done:          false,
		CreatedAt:     s.now().UTC().Format(time.RFC3339),
		AttachmentURL: s.attachmentBase + "/" + todoID,
	}

	if err := s.store.PutTodo(ctx, todo); err != nil {
		return models.Todo{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.notifyCreated(ctx, todo)

	return todo, nil
}

func (s *Todos) Update(ctx context.Context, userID, todoID string, upd models.TodoUpdate) error {
	if err := s.store.UpdateTodo(ctx, userID, todoID, upd); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Todos) Delete(ctx context.Context, userID, todoID string) error {
	if err := s.store.DeleteTodo(ctx, userID, todoID); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// GenerateUploadURL confirms the todo exists for this user before minting
// a credential; an id the user does not own is indistinguishable from one
// that was never created.
func (s *Todos) GenerateUploadURL(ctx context.Context, userID, todoID string) (string, error) {
	todo, err := s.store.GetTodo(ctx, userID, todoID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if todo == nil {
		return "", fmt.Errorf("%w: %s", ErrTodoNotFound, todoID)
	}

	url, err := s.signer.UploadURL(ctx, todoID)
	if err != nil {
		return "", fmt.Errorf("sign upload url: %w", err)
	}
	return url, nil
}

// notifyCreated publishes the creation notification if the owner has a
// profile. Every path lands in exactly one outcome: sent, skipped because
// there is no profile, or failed. Failures are logged and recorded, never
// returned.
func (s *Todos) notifyCreated(ctx context.Context, todo models.Todo) {
	outcome := events.NotificationOutcome{
		UserID: todo.UserID,
		TodoID: todo.TodoID,
		At:     s.now().UnixMilli(),
	}

	profile, err := s.profiles.GetProfile(ctx, todo.UserID)
	switch {
	case err != nil:
		notifyFailed.Add(1)
		outcome.Outcome = events.OutcomeFailed
		outcome.Error = err.Error()
		s.log.Error("creation notification: profile lookup failed", "userId", todo.UserID, "todoId", todo.TodoID, "err", err)
	case profile == nil:
		notifySkipped.Add(1)
		outcome.Outcome = events.OutcomeSkipped
	default:
		msg := fmt.Sprintf("Todo %s with due date %s has been created!", todo.TodoID, todo.DueDate)
		if err := s.broker.Publish(ctx, todo.UserID, msg); err != nil {
			notifyFailed.Add(1)
			outcome.Outcome = events.OutcomeFailed
			outcome.Error = err.Error()
			s.log.Error("creation notification: publish failed", "userId", todo.UserID, "todoId", todo.TodoID, "err", err)
		} else {
			notifySent.Add(1)
			outcome.Outcome = events.OutcomeSent
		}
	}

	if s.outcomes == nil {
		return
	}
	if err := s.outcomes.PublishOutcome(ctx, outcome); err != nil {
		outcomePublishFails.Add(1)
		s.log.Error("outcome event publish failed", "todoId", todo.TodoID, "outcome", outcome.Outcome, "err", err)
	}
}
