package domain

// Department is one of the fixed organisational units an employee belongs to.
type Department string

const (
	DepartmentHR         Department = "HR"
	DepartmentIT         Department = "IT"
	DepartmentFinance    Department = "Finance"
	DepartmentMarketing  Department = "Marketing"
	DepartmentOperations Department = "Operations"
)

// Departments lists every department in display order.
var Departments = []Department{
	DepartmentHR,
	DepartmentIT,
	DepartmentFinance,
	DepartmentMarketing,
	DepartmentOperations,
}

// Valid reports whether d is one of the enumerated departments.
func (d Department) Valid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}

// Role is the position an employee holds.
type Role string

const (
	RoleManager     Role = "Manager"
	RoleDeveloper   Role = "Developer"
	RoleAnalyst     Role = "Analyst"
	RoleCoordinator Role = "Coordinator"
	RoleSpecialist  Role = "Specialist"
)

// Roles lists every role in display order.
var Roles = []Role{
	RoleManager,
	RoleDeveloper,
	RoleAnalyst,
	RoleCoordinator,
	RoleSpecialist,
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Employee is a directory record. ID is assigned by the store and never changes.
type Employee struct {
	ID         int        `json:"id" yaml:"id" db:"id"`
	FirstName  string     `json:"firstName" yaml:"firstName" db:"first_name"`
	LastName   string     `json:"lastName" yaml:"lastName" db:"last_name"`
	Email      string     `json:"email" yaml:"email" db:"email"`
	Department Department `json:"department" yaml:"department" db:"department"`
	Role       Role       `json:"role" yaml:"role" db:"role"`
}

// Input returns the editable fields of e.
func (e Employee) Input() EmployeeInput {
	return EmployeeInput{
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Department: string(e.Department),
		Role:       string(e.Role),
	}
}

// EmployeeInput carries the form fields of a record without its id. All fields are raw
// strings as typed by the user; validation decides whether they may enter the store.
type EmployeeInput struct {
	FirstName  string `json:"firstName" yaml:"firstName" validate:"nonblank"`
	LastName   string `json:"lastName" yaml:"lastName" validate:"nonblank"`
	Email      string `json:"email" yaml:"email" validate:"nonblank,email_format"`
	Department string `json:"department" yaml:"department" validate:"department"`
	Role       string `json:"role" yaml:"role" validate:"role"`
}

// WithID builds the stored record for in.
func (in EmployeeInput) WithID(id int) Employee {
	return Employee{
		ID:         id,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Department: Department(in.Department),
		Role:       Role(in.Role),
	}
}
