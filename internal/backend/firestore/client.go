// Package firestore implements the service.Store interface on Cloud
// Firestore.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	fstore "cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"firetask/internal/config"
	"firetask/internal/service"
)

const (
	// CollectionTasks is the single logical collection of task documents.
	CollectionTasks = "tasks"

	// APITimeout is the timeout for one-shot API calls. The live listener
	// runs on the caller's context instead.
	APITimeout = 5 * time.Second
)

// taskDoc is the wire form of a task. The owner id field is the sole query
// predicate; createdAt is assigned by the server on create.
type taskDoc struct {
	Title       string       `firestore:"title"`
	Description string       `firestore:"description"`
	DueDate     time.Time    `firestore:"dueDate"`
	Completed   bool         `firestore:"completed"`
	Category    string       `firestore:"category"`
	Priority    string       `firestore:"priority"`
	Subtasks    []subtaskDoc `firestore:"subtasks"`
	OwnerID     string       `firestore:"ownerId"`
	CreatedAt   time.Time    `firestore:"createdAt,serverTimestamp"`
}

type subtaskDoc struct {
	ID        string `firestore:"id"`
	Title     string `firestore:"title"`
	Completed bool   `firestore:"completed"`
}

// Client implements service.Store using Cloud Firestore.
type Client struct {
	c *fstore.Client
}

// New creates a new Firestore client for the configured project. Credentials
// come from the configured service account file, or application default
// credentials when none is set.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.Settings.ProjectID == "" {
		return nil, fmt.Errorf("project_id not configured (set it in %s)", cfg.SettingsPath())
	}
	var opts []option.ClientOption
	if cfg.Settings.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Settings.CredentialsFile))
	}
	c, err := fstore.NewClient(ctx, cfg.Settings.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &Client{c: c}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.c.Close()
}

// query scopes the collection to one principal. Sorting happens client-side;
// adding OrderBy here would require a composite index on every deployment.
func (c *Client) query(ownerID string) fstore.Query {
	return c.c.Collection(CollectionTasks).Where("ownerId", "==", ownerID)
}

// List returns a one-shot snapshot of the principal's tasks in store order.
func (c *Client) List(ctx context.Context, ownerID string) ([]service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	docs, err := c.query(ownerID).Documents(ctx).GetAll()
	if err != nil {
		return nil, wrapError(err)
	}
	return decodeDocs(docs), nil
}

// Create persists a new task for ownerID. The document id and createdAt are
// assigned by the store; completion always starts false.
func (c *Client) Create(ctx context.Context, ownerID string, t service.Task) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	t.OwnerID = ownerID
	t.Completed = false
	ref, _, err := c.c.Collection(CollectionTasks).Add(ctx, toDoc(t))
	if err != nil {
		return service.Task{}, wrapError(err)
	}
	t.ID = ref.ID
	return t, nil
}

// Update merges the set fields of u into the document. The caller does not
// resend the whole entity.
func (c *Client) Update(ctx context.Context, id string, u service.TaskUpdate) error {
	updates := fieldUpdates(u)
	if len(updates) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.c.Collection(CollectionTasks).Doc(id).Update(ctx, updates)
	return wrapError(err)
}

// Delete removes the document. Firestore treats deleting an absent document
// as a no-op, so delete is idempotent.
func (c *Client) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.c.Collection(CollectionTasks).Doc(id).Delete(ctx)
	return wrapError(err)
}

// ToggleCompletion flips the completed flag of t.
func (c *Client) ToggleCompletion(ctx context.Context, t service.Task) error {
	completed := !t.Completed
	return c.Update(ctx, t.ID, service.TaskUpdate{Completed: &completed})
}

// Subscribe establishes the live query for ownerID. Every server-observed
// change re-delivers the complete current snapshot; the initial load counts
// as one change. The returned handle stops all further callback invocations.
func (c *Client) Subscribe(ctx context.Context, ownerID string, onChange func([]service.Task), onError func(error)) (service.CancelFunc, error) {
	ctx, cancel := context.WithCancel(ctx)
	sub := newSubscription(onChange, onError)
	it := c.query(ownerID).Snapshots(ctx)

	go func() {
		defer it.Stop()
		for {
			qs, err := it.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || errors.Is(err, context.Canceled) {
					return
				}
				sub.fail(wrapError(err))
				return
			}
			docs, err := qs.Documents.GetAll()
			if err != nil {
				sub.fail(wrapError(err))
				return
			}
			sub.deliver(decodeDocs(docs))
		}
	}()

	return func() {
		sub.close()
		cancel()
	}, nil
}

func toDoc(t service.Task) taskDoc {
	subtasks := make([]subtaskDoc, len(t.Subtasks))
	for i, st := range t.Subtasks {
		subtasks[i] = subtaskDoc(st)
	}
	return taskDoc{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
		Category:    string(t.Category),
		Priority:    string(t.Priority),
		Subtasks:    subtasks,
		OwnerID:     t.OwnerID,
	}
}

func toTask(id string, d taskDoc) service.Task {
	subtasks := make([]service.Subtask, len(d.Subtasks))
	for i, st := range d.Subtasks {
		subtasks[i] = service.Subtask(st)
	}
	return service.Task{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
		Completed:   d.Completed,
		Category:    service.Category(d.Category),
		Priority:    service.Priority(d.Priority),
		Subtasks:    subtasks,
		OwnerID:     d.OwnerID,
		CreatedAt:   d.CreatedAt,
	}
}

func decodeDocs(docs []*fstore.DocumentSnapshot) []service.Task {
	var tasks []service.Task
	for _, doc := range docs {
		var d taskDoc
		if err := doc.DataTo(&d); err != nil {
			// Skip documents that no longer match the schema rather than
			// killing the whole snapshot.
			continue
		}
		tasks = append(tasks, toTask(doc.Ref.ID, d))
	}
	return tasks
}

func toSubtaskDocs(subtasks []service.Subtask) []subtaskDoc {
	out := make([]subtaskDoc, len(subtasks))
	for i, st := range subtasks {
		out[i] = subtaskDoc(st)
	}
	return out
}

// fieldUpdates translates the typed patch into Firestore field updates. Only
// named fields are merged; the subtask sequence is replaced whole so parent
// and subtasks persist atomically.
func fieldUpdates(u service.TaskUpdate) []fstore.Update {
	var updates []fstore.Update
	if u.Title != nil {
		updates = append(updates, fstore.Update{Path: "title", Value: *u.Title})
	}
	if u.Description != nil {
		updates = append(updates, fstore.Update{Path: "description", Value: *u.Description})
	}
	if u.DueDate != nil {
		updates = append(updates, fstore.Update{Path: "dueDate", Value: *u.DueDate})
	}
	if u.Completed != nil {
		updates = append(updates, fstore.Update{Path: "completed", Value: *u.Completed})
	}
	if u.Category != nil {
		updates = append(updates, fstore.Update{Path: "category", Value: string(*u.Category)})
	}
	if u.Priority != nil {
		updates = append(updates, fstore.Update{Path: "priority", Value: string(*u.Priority)})
	}
	if u.Subtasks != nil {
		updates = append(updates, fstore.Update{Path: "subtasks", Value: toSubtaskDocs(*u.Subtasks)})
	}
	return updates
}

// wrapError translates store errors into the service taxonomy.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.PermissionDenied, codes.Unauthenticated:
		return fmt.Errorf("%w: %v", service.ErrPermissionDenied, err)
	case codes.NotFound:
		return fmt.Errorf("%w: %v", service.ErrNotFound, err)
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %v", service.ErrTransport, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out", service.ErrTransport)
	}
	return fmt.Errorf("%w: %v", service.ErrTransport, err)
}
