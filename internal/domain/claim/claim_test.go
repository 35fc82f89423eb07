package claim

import "testing"

func TestClaim_Amount(t *testing.T) {
	c := &Claim{HoursWorked: 10, HourlyRate: 50}

	if got := c.Amount(); got != 500 {
		t.Errorf("Amount() = %v, want 500", got)
	}

	// Amount is derived on every read; unchanged inputs cannot drift
	first := c.Amount()
	second := c.Amount()
	if first != second {
		t.Errorf("Amount() drifted between reads: %v then %v", first, second)
	}

	// Status changes never affect the derived amount
	c.Status = StatusApproved
	if got := c.Amount(); got != 500 {
		t.Errorf("Amount() after status change = %v, want 500", got)
	}
}
