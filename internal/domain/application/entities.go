package application

import (
	"errors"
	"time"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownField    = errors.New("unknown form field")
)

// Loan reasons offered by the form. ReasonOther switches the letter to the
// free-text custom reason.
const (
	ReasonHouseConstruction = "House Construction"
	ReasonMedicalTreatment  = "Medical Treatment"
	ReasonChildEducation    = "Children's Education"
	ReasonDaughterMarriage  = "Daughter's marriage expenses"
	ReasonOther             = "Other"

	DefaultReason = ReasonHouseConstruction
)

// Reasons lists the selectable loan reasons in display order.
var Reasons = []string{
	ReasonHouseConstruction,
	ReasonMedicalTreatment,
	ReasonChildEducation,
	ReasonDaughterMarriage,
	ReasonOther,
}

func IsReason(s string) bool {
	for _, r := range Reasons {
		if r == s {
			return true
		}
	}
	return false
}

type Field string

const (
	FieldEmployeeName Field = "employee_name"
	FieldEBNumber     Field = "eb_number"
	FieldDepartment   Field = "department"
	FieldLoanAmount   Field = "loan_amount"
	FieldLoanReason   Field = "loan_reason"
	FieldCustomReason Field = "custom_reason"
	FieldMobileNumber Field = "mobile_number"
)

// FormState holds the raw values exactly as the user typed them.
type FormState struct {
	EmployeeName string `json:"employee_name"`
	EBNumber     string `json:"eb_number"`
	Department   string `json:"department"`
	LoanAmount   string `json:"loan_amount"`
	LoanReason   string `json:"loan_reason"`
	CustomReason string `json:"custom_reason"`
	MobileNumber string `json:"mobile_number"`
}

func NewFormState() FormState {
	return FormState{LoanReason: DefaultReason}
}

// Set assigns a single field. The value is stored verbatim.
func (f *FormState) Set(field Field, value string) error {
	switch field {
	case FieldEmployeeName:
		f.EmployeeName = value
	case FieldEBNumber:
		f.EBNumber = value
	case FieldDepartment:
		f.Department = value
	case FieldLoanAmount:
		f.LoanAmount = value
	case FieldLoanReason:
		f.LoanReason = value
	case FieldCustomReason:
		f.CustomReason = value
	case FieldMobileNumber:
		f.MobileNumber = value
	default:
		return ErrUnknownField
	}
	return nil
}

// Session is one user's working copy of the form. IssueDate is fixed when
// the session starts.
type Session struct {
	ID        string    `json:"id"`
	Form      FormState `json:"form"`
	IssueDate string    `json:"issue_date"`
	CreatedAt time.Time `json:"created_at"`
}
