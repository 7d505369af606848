package letter

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pf-loan-generator/internal/domain/application"
)

const (
	// FallbackReason is used when "Other" is picked but nothing was typed.
	FallbackReason  = "Personal Reasons"
	RupeeSymbol     = "₹"
	IssueDateLayout = "02 January 2006"
)

var nonAmountChars = regexp.MustCompile(`[^0-9.]`)

func ResolveReason(loanReason, customReason string) string {
	if loanReason != application.ReasonOther {
		return loanReason
	}
	if r := strings.TrimSpace(customReason); r != "" {
		return r
	}
	return FallbackReason
}

// FormatAmount renders raw as whole rupees with Indian digit grouping
// (₹12,34,567). Input that does not parse to a finite positive number is
// returned unchanged so partially typed values still show up in the letter.
// A leading minus sign survives the cleanup and makes the amount negative.
func FormatAmount(raw string) string {
	n, err := strconv.ParseFloat(nonAmountChars.ReplaceAllString(raw, ""), 64)
	if strings.HasPrefix(strings.TrimSpace(raw), "-") {
		n = -n
	}
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) || n <= 0 {
		return raw
	}
	return RupeeSymbol + groupIndian(strconv.FormatFloat(math.Round(n), 'f', 0, 64))
}

// groupIndian inserts separators into a plain digit string: the last three
// digits form one group and every group before it has two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var b strings.Builder
	first := len(head) % 2
	if first > 0 {
		b.WriteString(head[:first])
	}
	for i := first; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}

func FormatDate(now time.Time) string { return now.Format(IssueDateLayout) }

// Derived is the display text computed from a FormState on every read.
type Derived struct {
	ResolvedReason  string `json:"resolved_reason"`
	FormattedAmount string `json:"formatted_amount"`
	CurrentDate     string `json:"current_date"`
}

func Derive(f application.FormState, issueDate string) Derived {
	return Derived{
		ResolvedReason:  ResolveReason(f.LoanReason, f.CustomReason),
		FormattedAmount: FormatAmount(f.LoanAmount),
		CurrentDate:     issueDate,
	}
}
