package audit

import (
	"context"
	"strings"
)

// Report is the three-way delta between a source list of bill numbers and
// what the orders table actually holds.
type Report struct {
	SourceCount    int      `json:"source_count"`
	PersistedCount int      `json:"persisted_count"`
	MatchedCount   int      `json:"matched_count"`
	Missing        []string `json:"missing"`
	Extra          []string `json:"extra"`
}

// Service answers reconciliation questions against the persisted orders.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Delta compares the given bill numbers against the database. Entries are
// trimmed, empties are ignored and only the first occurrence of a value
// counts. Matching is exact; Missing keeps source order and Extra keeps
// insertion order.
func (s *Service) Delta(ctx context.Context, source []string) (*Report, error) {
	persisted, err := s.repo.ListBillNumbers(ctx)
	if err != nil {
		return nil, err
	}

	persistedSet := make(map[string]bool, len(persisted))
	for _, bill := range persisted {
		persistedSet[bill] = true
	}

	report := &Report{
		PersistedCount: len(persisted),
		Missing:        []string{},
		Extra:          []string{},
	}

	matched := make(map[string]bool)
	seen := make(map[string]bool, len(source))
	for _, raw := range source {
		bill := strings.TrimSpace(raw)
		if bill == "" || seen[bill] {
			continue
		}
		seen[bill] = true
		report.SourceCount++

		if persistedSet[bill] {
			matched[bill] = true
			report.MatchedCount++
		} else {
			report.Missing = append(report.Missing, bill)
		}
	}

	for _, bill := range persisted {
		if !matched[bill] {
			report.Extra = append(report.Extra, bill)
		}
	}
	return report, nil
}
