package booking

import (
	"regexp"
	"strings"

	"github.com/hbui/cinecli/internal/models"
)

// Agreements are the two consent checkboxes required before submitting.
type Agreements struct {
	Terms  bool
	Policy bool
}

// Both reports whether every required agreement is checked.
func (a Agreements) Both() bool { return a.Terms && a.Policy }

var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// DigitsOnly strips everything but ASCII digits from a phone number.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateCustomer checks the checkout form and returns every failure at
// once, one human-readable message per field, so the whole form can be
// annotated in a single pass. A nil result means the form is submittable.
func ValidateCustomer(info models.CustomerInfo, agreements Agreements) []string {
	var problems []string

	if strings.TrimSpace(info.FullName) == "" {
		problems = append(problems, "full name is required")
	}
	if len(DigitsOnly(info.Phone)) != 10 {
		problems = append(problems, "phone number must have exactly 10 digits")
	}
	if !emailShape.MatchString(info.Email) {
		problems = append(problems, "email address is not valid")
	}
	if !agreements.Terms {
		problems = append(problems, "you must agree to the terms of service")
	}
	if !agreements.Policy {
		problems = append(problems, "you must agree to the ticketing policy")
	}

	return problems
}
