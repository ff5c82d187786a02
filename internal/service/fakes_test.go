package service

import (
	"context"
	"fmt"

	"github.com/CatalinMihaiIonescu/ndcd-capstone-project/internal/events"
	"github.com/CatalinMihaiIonescu/ndcd-capstone-project/internal/models"
)

// fakeStore implements TodoStore and ProfileStore in memory. Each mutating
// call appends to trace (when set) so tests can assert ordering across
// collaborators.
type fakeStore struct {
	todos    map[string]map[string]models.Todo // userID -> todoID -> todo
	profiles map[string]models.Profile
	trace    *[]string

	listErr          error
	putTodoErr       error
	getTodoErr       error
	getProfileErr    error
	putProfileErr    error
	deleteProfileErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		todos:    map[string]map[string]models.Todo{},
		profiles: map[string]models.Profile{},
	}
}

func (f *fakeStore) record(op string) {
	if f.trace != nil {
		*f.trace = append(*f.trace, op)
	}
}

func (f *fakeStore) ListTodos(_ context.Context, userID string) ([]models.Todo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.Todo{}
	for _, t := range f.todos[userID] {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeStore) PutTodo(_ context.Context, t models.Todo) error {
	if f.putTodoErr != nil {
		return f.putTodoErr
	}
	if f.todos[t.UserID] == nil {
		f.todos[t.UserID] = map[string]models.Todo{}
	}
	f.todos[t.UserID][t.TodoID] = t
	return nil
}

func (f *fakeStore) GetTodo(_ context.Context, userID, todoID string) (*models.Todo, error) {
	if f.getTodoErr != nil {
		return nil, f.getTodoErr
	}
	t, ok := f.todos[userID][todoID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeStore) UpdateTodo(_ context.Context, userID, todoID string, upd models.TodoUpdate) error {
	t, ok := f.todos[userID][todoID]
	if !ok {
		return nil // store-level no-op, matching the adapter contract
	}
	t.Name = upd.Name
	t.DueDate = upd.DueDate
	t.Done = upd.Done
	f.todos[userID][todoID] = t
	return nil
}

func (f *fakeStore) DeleteTodo(_ context.Context, userID, todoID string) error {
	delete(f.todos[userID], todoID)
	return nil
}

func (f *fakeStore) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	if f.getProfileErr != nil {
		return nil, f.getProfileErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeStore) PutProfile(_ context.Context, p models.Profile) error {
	if f.putProfileErr != nil {
		return f.putProfileErr
	}
	f.record("store.PutProfile")
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeStore) DeleteProfile(_ context.Context, userID string) error {
	if f.deleteProfileErr != nil {
		return f.deleteProfileErr
	}
	f.record("store.DeleteProfile")
	delete(f.profiles, userID)
	return nil
}

type publishedMessage struct {
	userID  string
	message string
}

type fakeBroker struct {
	published  []publishedMessage
	publishErr error
}

func (f *fakeBroker) Publish(_ context.Context, userID, message string) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, publishedMessage{userID: userID, message: message})
	return nil
}

type subscription struct {
	userID string
	email  string
}

// fakeSubs hands out sequential handles and tracks which are live and
// which were retired, in order.
type fakeSubs struct {
	n       int
	active  map[string]subscription
	retired []string
	trace   *[]string

	subscribeErr   error
	unsubscribeErr error
}

func newFakeSubs() *fakeSubs {
	return &fakeSubs{active: map[string]subscription{}}
}

func (f *fakeSubs) record(op string) {
	if f.trace != nil {
		*f.trace = append(*f.trace, op)
	}
}

func (f *fakeSubs) Subscribe(_ context.Context, userID, email string) (string, error) {
	if f.subscribeErr != nil {
		return "", f.subscribeErr
	}
	f.n++
	handle := fmt.Sprintf("sub-%d", f.n)
	f.active[handle] = subscription{userID: userID, email: email}
	f.record("subs.Subscribe")
	return handle, nil
}

func (f *fakeSubs) Unsubscribe(_ context.Context, subscriptionID string) error {
	if f.unsubscribeErr != nil {
		return f.unsubscribeErr
	}
	// already-retired handles are tolerated, like the SNS adapter
	delete(f.active, subscriptionID)
	f.retired = append(f.retired, subscriptionID)
	f.record("subs.Unsubscribe")
	return nil
}

type fakeSigner struct {
	err error
}

func (f *fakeSigner) UploadURL(_ context.Context, objectID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://uploads.example.com/" + objectID + "?sig=fake", nil
}

type fakeRecorder struct {
	outcomes []events.NotificationOutcome
	err      error
}

func (f *fakeRecorder) PublishOutcome(_ context.Context, o events.NotificationOutcome) error {
	if f.err != nil {
		return f.err
	}
	f.outcomes = append(f.outcomes, o)
	return nil
}
