package review

import (
	"math"

	"karigar/models"
)

// Aggregate derives a provider's rating summary from the full set of visible
// reviews. The result depends only on the input set, so replaying it after
// any edit or moderation change converges to the same numbers.
func Aggregate(visible []models.Review) (float64, int) {
	if len(visible) == 0 {
		return 0.0, 0
	}
	sum := 0
	for _, r := range visible {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(visible))
	return math.Round(avg*10) / 10, len(visible)
}

// Recompute re-derives a provider's aggregates from the store. Used by the
// reconciliation cron and exposed for admin tooling.
func (s *DefaultReviewService) Recompute(providerID string) error {
	visible, err := s.Repo.ListVisibleByReviewee(providerID, 0)
	if err != nil {
		return err
	}
	avg, total := Aggregate(visible)
	return s.Repo.SetAggregates(providerID, avg, total)
}
