package controller

import (
	"fmt"

	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/validation"
)

// Form labels.
const (
	TitleAdd      = "Add New Employee"
	TitleEdit     = "Edit Employee"
	SubmitAdd     = "Add Employee"
	SubmitEdit    = "Update Employee"
	SubmitPending = "Saving..."
)

type form struct {
	target     *domain.Employee
	values     domain.EmployeeInput
	errors     validation.Errors
	submitting bool
}

func newForm(target *domain.Employee) *form {
	f := &form{target: target, errors: validation.Errors{}}
	if target != nil {
		f.values = target.Input()
	}
	return f
}

func (f *form) set(field, value string) error {
	switch field {
	case validation.FieldFirstName:
		f.values.FirstName = value
	case validation.FieldLastName:
		f.values.LastName = value
	case validation.FieldEmail:
		f.values.Email = value
	case validation.FieldDepartment:
		f.values.Department = value
	case validation.FieldRole:
		f.values.Role = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	f.errors.Clear(field)
	return nil
}

// FormView is a snapshot of the open form.
type FormView struct {
	Title       string
	SubmitLabel string
	// Target is nil when adding.
	Target     *domain.Employee
	Values     domain.EmployeeInput
	Errors     validation.Errors
	Submitting bool
}

func (f *form) view() FormView {
	v := FormView{
		Title:       TitleAdd,
		SubmitLabel: SubmitAdd,
		Values:      f.values,
		Errors:      make(validation.Errors, len(f.errors)),
		Submitting:  f.submitting,
	}
	for k, msg := range f.errors {
		v.Errors[k] = msg
	}
	if f.target != nil {
		target := *f.target
		v.Target = &target
		v.Title = TitleEdit
		v.SubmitLabel = SubmitEdit
	}
	if f.submitting {
		v.SubmitLabel = SubmitPending
	}
	return v
}

// Form returns the open form, or false when the controller is listing.
func (c *Controller) Form() (FormView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != Editing || c.form == nil {
		return FormView{}, false
	}
	return c.form.view(), true
}
