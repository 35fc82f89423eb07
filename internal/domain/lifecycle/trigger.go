package lifecycle

// Trigger represents an event that can advance a claim through its lifecycle
type Trigger string

const (
	TriggerVerify  Trigger = "VERIFY"
	TriggerApprove Trigger = "APPROVE"
	TriggerReject  Trigger = "REJECT"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
