// Package controller drives a directory session: the list/edit mode machine, the form
// being edited and the query parameters of the list.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/logger"
	"github.com/locvowork/employee_directory/internal/query"
	"github.com/locvowork/employee_directory/internal/validation"
)

var (
	ErrInvalidTransition = errors.New("action not allowed in current mode")
	ErrSaveInProgress    = errors.New("save already in progress")
	ErrUnknownField      = errors.New("unknown form field")
)

// DefaultSaveDelay is the pause between a confirmed save and the store update.
const DefaultSaveDelay = 500 * time.Millisecond

// Mode is the controller state.
type Mode int

const (
	Listing Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "listing"
}

// Directory is what the controller needs from the service layer.
type Directory interface {
	List(ctx context.Context, p query.Params) query.Result
	Get(ctx context.Context, id int) (domain.Employee, error)
	Validate(in domain.EmployeeInput) validation.Errors
	Create(ctx context.Context, in domain.EmployeeInput) (domain.Employee, error)
	Update(ctx context.Context, id int, in domain.EmployeeInput) (domain.Employee, error)
	Delete(ctx context.Context, id int) error
	ObserveSave(d time.Duration)
}

// Controller serialises one user's intents. It is safe for concurrent use, but a session
// is expected to have a single driver.
type Controller struct {
	mu        sync.Mutex
	dir       Directory
	state     *query.State
	confirm   Confirmer
	saveDelay time.Duration

	mode Mode
	form *form
}

type Option func(*Controller)

// WithSaveDelay overrides DefaultSaveDelay. Zero saves immediately.
func WithSaveDelay(d time.Duration) Option {
	return func(c *Controller) { c.saveDelay = d }
}

// WithConfirmer sets who answers delete prompts. Without one every delete is declined.
func WithConfirmer(cf Confirmer) Option {
	return func(c *Controller) { c.confirm = cf }
}

// WithState starts the session from an existing query state.
func WithState(s *query.State) Option {
	return func(c *Controller) { c.state = s }
}

func New(dir Directory, opts ...Option) *Controller {
	c := &Controller{
		dir:       dir,
		state:     query.NewState(),
		confirm:   Decline,
		saveDelay: DefaultSaveDelay,
		mode:      Listing,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// AddRequested opens a blank form.
func (c *Controller) AddRequested() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != Listing {
		return ErrInvalidTransition
	}
	c.mode = Editing
	c.form = newForm(nil)
	return nil
}

// EditRequested opens the form pre-filled with record id.
func (c *Controller) EditRequested(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != Listing {
		return ErrInvalidTransition
	}
	e, err := c.dir.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("edit employee %d: %w", id, err)
	}
	c.mode = Editing
	c.form = newForm(&e)
	return nil
}

// SetField changes one form value and clears that field's error.
func (c *Controller) SetField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != Editing {
		return ErrInvalidTransition
	}
	if c.form.submitting {
		return ErrSaveInProgress
	}
	return c.form.set(field, value)
}

// SaveConfirmed validates the form and, when it is valid, stores it after the save delay
// and returns to the list. Invalid input keeps the form open and returns its
// validation.Errors.
func (c *Controller) SaveConfirmed(ctx context.Context) error {
	start := time.Now()

	c.mu.Lock()
	if c.mode != Editing {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	if c.form.submitting {
		c.mu.Unlock()
		return ErrSaveInProgress
	}

	f := c.form
	if errs := c.dir.Validate(f.values); len(errs) > 0 {
		f.errors = errs
		c.mu.Unlock()
		return errs
	}
	f.submitting = true
	values := f.values
	target := f.target
	c.mu.Unlock()

	// The delay runs to completion even if ctx ends, like the form it replaces.
	if c.saveDelay > 0 {
		time.Sleep(c.saveDelay)
	}

	var err error
	if target == nil {
		_, err = c.dir.Create(ctx, values)
	} else {
		_, err = c.dir.Update(ctx, target.ID, values)
		if errors.Is(err, domain.ErrNotFound) {
			logger.WarnLog(ctx, "employee %d vanished before save, nothing updated", target.ID)
			err = nil
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	f.submitting = false
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			f.errors = verrs
		}
		return err
	}
	c.mode = Listing
	c.form = nil
	c.dir.ObserveSave(time.Since(start))
	return nil
}

// Cancelled discards the form.
func (c *Controller) Cancelled() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != Editing {
		return ErrInvalidTransition
	}
	if c.form.submitting {
		return ErrSaveInProgress
	}
	c.mode = Listing
	c.form = nil
	return nil
}

// DeleteRequested asks the confirmer and removes record id when it agrees. The current
// page is pulled back if the list got shorter than it.
func (c *Controller) DeleteRequested(ctx context.Context, id int) error {
	c.mu.Lock()
	if c.mode != Listing {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	c.mu.Unlock()

	if !c.confirm.Confirm(ctx, DeletePrompt) {
		logger.DebugLog(ctx, "delete of employee %d declined", id)
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.dir.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		logger.WarnLog(ctx, "employee %d already gone", id)
	}
	res := c.dir.List(ctx, c.state.Params())
	c.state.ClampPage(res.TotalPages)
	return nil
}
