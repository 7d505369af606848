package letter

import (
	"fmt"

	"pf-loan-generator/internal/domain/application"
)

// Letter is the rendered application, line by line. Every renderer (HTML
// preview, raster) reads the same structure.
type Letter struct {
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	Date       string   `json:"date"`
	Recipient  []string `json:"recipient"`
	Subject    string   `json:"subject"`
	Salutation string   `json:"salutation"`
	Body       []string `json:"body"`
	Closing    string   `json:"closing"`
	Signature  []string `json:"signature"`
}

func or(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v
}

func Compose(f application.FormState, issueDate string, bp Boilerplate) Letter {
	d := Derive(f, issueDate)
	ph := bp.Placeholders
	name := or(f.EmployeeName, ph.EmployeeName)
	eb := or(f.EBNumber, ph.EBNumber)
	mobile := or(f.MobileNumber, ph.MobileNumber)

	return Letter{
		Title:      bp.Title,
		Company:    bp.Company,
		Date:       d.CurrentDate,
		Recipient:  []string{bp.To, bp.Company, bp.Address},
		Subject:    "Subject: " + bp.Subject,
		Salutation: bp.Salutation,
		Body: []string{
			fmt.Sprintf("I, %s, EB No. %s, presently working as %s at %s, respectfully request the sanction of a non-refundable withdrawal against my Provident Fund account.",
				name, eb, or(f.Department, ph.Department), bp.Company),
			fmt.Sprintf("I seek to withdraw an amount of %s in order to meet expenses related to %s. The requirement is both urgent and essential, and the PF withdrawal will provide the necessary financial support.",
				or(d.FormattedAmount, ph.LoanAmount), or(d.ResolvedReason, ph.Purpose)),
			"I confirm that I have not availed a similar withdrawal for the same purpose in the recent past and undertake to furnish any additional documents that may be required to process my request.",
			fmt.Sprintf("You are kindly requested to process my application at the earliest. Should you need any clarification, I am reachable at %s.", mobile),
			"Thank you for your consideration.",
		},
		Closing:   bp.Closing,
		Signature: []string{name, "EB No. " + eb, "Mobile: " + mobile},
	}
}
