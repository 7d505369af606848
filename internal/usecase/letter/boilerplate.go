package letter

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed boilerplate.yaml
var boilerplateYAML []byte

// Boilerplate is the fixed text of the letter. Only the placeholders and
// derived values change between sessions.
type Boilerplate struct {
	Title        string       `yaml:"title"`
	To           string       `yaml:"to"`
	Company      string       `yaml:"company"`
	Address      string       `yaml:"address"`
	Subject      string       `yaml:"subject"`
	Salutation   string       `yaml:"salutation"`
	Closing      string       `yaml:"closing"`
	Placeholders Placeholders `yaml:"placeholders"`
}

type Placeholders struct {
	EmployeeName string `yaml:"employee_name"`
	EBNumber     string `yaml:"eb_number"`
	Department   string `yaml:"department"`
	LoanAmount   string `yaml:"loan_amount"`
	Purpose      string `yaml:"purpose"`
	MobileNumber string `yaml:"mobile_number"`
}

func ParseBoilerplate(b []byte) (Boilerplate, error) {
	var bp Boilerplate
	if err := yaml.Unmarshal(b, &bp); err != nil {
		return Boilerplate{}, fmt.Errorf("parse boilerplate: %w", err)
	}
	if bp.Company == "" || bp.Subject == "" {
		return Boilerplate{}, fmt.Errorf("parse boilerplate: company and subject are required")
	}
	return bp, nil
}

// DefaultBoilerplate returns the embedded letter text.
func DefaultBoilerplate() Boilerplate {
	bp, err := ParseBoilerplate(boilerplateYAML)
	if err != nil {
		panic(err)
	}
	return bp
}
