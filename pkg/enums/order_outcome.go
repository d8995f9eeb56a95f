package enums

import "fmt"

// OrderOutcome classifies how one order aggregate left the committer.
type OrderOutcome string

const (
	OrderOutcomeInserted OrderOutcome = "inserted"
	OrderOutcomeSkipped  OrderOutcome = "skipped"
	OrderOutcomeFailed   OrderOutcome = "failed"
)

var validOrderOutcomes = []OrderOutcome{
	OrderOutcomeInserted,
	OrderOutcomeSkipped,
	OrderOutcomeFailed,
}

// String implements fmt.Stringer.
func (o OrderOutcome) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderOutcome.
func (o OrderOutcome) IsValid() bool {
	for _, candidate := range validOrderOutcomes {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderOutcome converts raw input into an OrderOutcome.
func ParseOrderOutcome(value string) (OrderOutcome, error) {
	for _, candidate := range validOrderOutcomes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order outcome %q", value)
}
