package booking

import (
	"strings"
	"testing"

	"github.com/hbui/cinecli/internal/models"
)

func TestValidateCustomer(t *testing.T) {
	valid := models.CustomerInfo{
		FullName: "Nguyen Van A",
		Phone:    "(090) 123-4567",
		Email:    "a@example.com",
	}
	both := Agreements{Terms: true, Policy: true}

	t.Run("accepts a complete form", func(t *testing.T) {
		if problems := ValidateCustomer(valid, both); problems != nil {
			t.Errorf("expected no problems, got %v", problems)
		}
	})

	t.Run("collects every failure at once", func(t *testing.T) {
		bad := models.CustomerInfo{FullName: "   ", Phone: "12345", Email: "not-an-email"}
		problems := ValidateCustomer(bad, both)
		if len(problems) != 3 {
			t.Fatalf("expected 3 problems, got %d: %v", len(problems), problems)
		}
	})

	t.Run("phone is validated on digits only", func(t *testing.T) {
		cases := []struct {
			phone string
			ok    bool
		}{
			{"0901234567", true},
			{"090-123-4567", true},
			{"090123456", false},
			{"09012345678", false},
			{"", false},
		}
		for _, c := range cases {
			info := valid
			info.Phone = c.phone
			problems := ValidateCustomer(info, both)
			if c.ok && problems != nil {
				t.Errorf("phone %q: unexpected problems %v", c.phone, problems)
			}
			if !c.ok && len(problems) != 1 {
				t.Errorf("phone %q: expected exactly one problem, got %v", c.phone, problems)
			}
		}
	})

	t.Run("email needs an at sign and a dotted domain", func(t *testing.T) {
		for _, email := range []string{"a@b.c", "long.name@mail.example.org"} {
			info := valid
			info.Email = email
			if problems := ValidateCustomer(info, both); problems != nil {
				t.Errorf("email %q: unexpected problems %v", email, problems)
			}
		}
		for _, email := range []string{"a@b", "a b@c.d", "@b.c", ""} {
			info := valid
			info.Email = email
			if problems := ValidateCustomer(info, both); problems == nil {
				t.Errorf("email %q: expected a problem", email)
			}
		}
	})

	t.Run("each agreement is reported separately", func(t *testing.T) {
		problems := ValidateCustomer(valid, Agreements{})
		if len(problems) != 2 {
			t.Fatalf("expected 2 problems, got %v", problems)
		}
		joined := strings.Join(problems, "; ")
		if !strings.Contains(joined, "terms") || !strings.Contains(joined, "policy") {
			t.Errorf("expected both agreements mentioned, got %q", joined)
		}
	})
}

func TestDigitsOnly(t *testing.T) {
	if got := DigitsOnly("+84 (90) 123-45.67"); got != "84901234567" {
		t.Errorf("unexpected digits %q", got)
	}
}
