package review

import (
	"strings"
	"testing"
	"time"

	bookingRepo "karigar/database/repository/booking"
	reviewRepo "karigar/database/repository/review"
	"karigar/models"
	"karigar/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReviewRepo mirrors the Mongo implementation's semantics in memory,
// including the aggregate refresh that rides along with review writes.
type fakeReviewRepo struct {
	reviews    map[string]*models.Review
	aggregates map[string]struct {
		avg   float64
		total int
	}
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{
		reviews: make(map[string]*models.Review),
		aggregates: make(map[string]struct {
			avg   float64
			total int
		}),
	}
}

func (f *fakeReviewRepo) GetByID(id string) (*models.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReviewRepo) GetByBookingID(bookingID string) (*models.Review, error) {
	for _, r := range f.reviews {
		if r.BookingID == bookingID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) ListVisibleByReviewee(revieweeID string, limit int) ([]models.Review, error) {
	return f.ListByReviewee(revieweeID, false, limit)
}

func (f *fakeReviewRepo) ListByReviewee(revieweeID string, includeHidden bool, limit int) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.RevieweeID != revieweeID {
			continue
		}
		if !includeHidden && !r.IsVisible {
			continue
		}
		out = append(out, *r)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeReviewRepo) ListAll(includeHidden bool, limit int) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if !includeHidden && !r.IsVisible {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeReviewRepo) refreshAggregates(revieweeID string, agg reviewRepo.AggregateFn) {
	visible, _ := f.ListVisibleByReviewee(revieweeID, 0)
	avg, total := agg(visible)
	f.aggregates[revieweeID] = struct {
		avg   float64
		total int
	}{avg, total}
}

func (f *fakeReviewRepo) CreateWithAggregates(r *models.Review, agg reviewRepo.AggregateFn) error {
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	cp := *r
	f.reviews[r.ID] = &cp
	f.refreshAggregates(r.RevieweeID, agg)
	return nil
}

func (f *fakeReviewRepo) UpdateWithAggregates(r *models.Review, recompute bool, agg reviewRepo.AggregateFn) error {
	r.UpdatedAt = time.Now()
	cp := *r
	f.reviews[r.ID] = &cp
	if recompute {
		f.refreshAggregates(r.RevieweeID, agg)
	}
	return nil
}

func (f *fakeReviewRepo) SetAggregates(revieweeID string, averageRating float64, totalReviews int) error {
	f.aggregates[revieweeID] = struct {
		avg   float64
		total int
	}{averageRating, totalReviews}
	return nil
}

func (f *fakeReviewRepo) CountVisible() (int64, error)               { return 0, nil }
func (f *fakeReviewRepo) CountVisibleSince(time.Time) (int64, error) { return 0, nil }

// fakeBookingReader serves only the booking lookups the review service needs.
type fakeBookingReader struct {
	bookingRepo.BookingRepository
	bookings map[string]*models.Booking
}

func (f *fakeBookingReader) GetByID(id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	return b, nil
}

const (
	custID = "cust-1"
	provID = "prov-1"
)

var (
	reviewer = models.SessionUser{ID: custID, Role: models.RoleCustomer}
	modAdmin = models.SessionUser{ID: "admin-1", Role: models.RoleAdmin}
	intruder = models.SessionUser{ID: "other-9", Role: models.RoleCustomer}
)

func newTestService(bookings ...*models.Booking) (*DefaultReviewService, *fakeReviewRepo) {
	repo := newFakeReviewRepo()
	byID := make(map[string]*models.Booking)
	for _, b := range bookings {
		byID[b.ID] = b
	}
	svc := &DefaultReviewService{
		Repo:     repo,
		Bookings: &fakeBookingReader{bookings: byID},
	}
	return svc, repo
}

func completedBooking(id string) *models.Booking {
	return &models.Booking{
		ID:         id,
		CustomerID: custID,
		ProviderID: provID,
		Status:     models.BookingCompleted,
	}
}

func TestAggregate(t *testing.T) {
	avg, total := Aggregate(nil)
	assert.Equal(t, 0.0, avg)
	assert.Equal(t, 0, total)

	avg, total = Aggregate([]models.Review{{Rating: 5}})
	assert.Equal(t, 5.0, avg)
	assert.Equal(t, 1, total)

	avg, total = Aggregate([]models.Review{{Rating: 5}, {Rating: 4}, {Rating: 2}})
	assert.InDelta(t, 3.7, avg, 0.001)
	assert.Equal(t, 3, total)
}

func TestSubmitReview(t *testing.T) {
	svc, repo := newTestService(completedBooking("bk-1"))

	rev, err := svc.SubmitReview(reviewer, SubmitReviewInput{
		BookingID: "bk-1", Rating: 4, Comment: "  solid work  ",
	})
	require.NoError(t, err)
	assert.Equal(t, provID, rev.RevieweeID)
	assert.Equal(t, custID, rev.ReviewerID)
	assert.Equal(t, "solid work", rev.Comment)
	assert.True(t, rev.IsVisible)

	agg := repo.aggregates[provID]
	assert.Equal(t, 4.0, agg.avg)
	assert.Equal(t, 1, agg.total)
}

func TestSubmitReviewPreconditions(t *testing.T) {
	pending := completedBooking("bk-2")
	pending.Status = models.BookingConfirmed
	svc, _ := newTestService(completedBooking("bk-1"), pending)

	_, err := svc.SubmitReview(reviewer, SubmitReviewInput{BookingID: "bk-1", Rating: 0})
	assert.Equal(t, utils.CodeValidation, utils.AppErrorCode(err))

	_, err = svc.SubmitReview(reviewer, SubmitReviewInput{BookingID: "bk-1", Rating: 6})
	assert.Equal(t, utils.CodeValidation, utils.AppErrorCode(err))

	_, err = svc.SubmitReview(reviewer, SubmitReviewInput{
		BookingID: "bk-1", Rating: 5, Comment: strings.Repeat("x", 1001),
	})
	assert.Equal(t, utils.CodeValidation, utils.AppErrorCode(err))

	_, err = svc.SubmitReview(reviewer, SubmitReviewInput{BookingID: "missing", Rating: 5})
	assert.Equal(t, utils.CodeNotFound, utils.AppErrorCode(err))

	_, err = svc.SubmitReview(intruder, SubmitReviewInput{BookingID: "bk-1", Rating: 5})
	assert.Equal(t, utils.CodeForbidden, utils.AppErrorCode(err))

	_, err = svc.SubmitReview(reviewer, SubmitReviewInput{BookingID: "bk-2", Rating: 5})
	assert.Equal(t, utils.CodeInvalidState, utils.AppErrorCode(err))
}

func TestSubmitReviewOnePerBooking(t *testing.T) {
	svc, _ := newTestService(completedBooking("bk-1"))

	_, err := svc.SubmitReview(reviewer, SubmitReviewInput{BookingID: "bk-1", Rating: 5})
	require.NoError(t, err)

	_, err = svc.SubmitReview(reviewer, SubmitReviewInput{BookingID: "bk-1", Rating: 1})
	assert.Equal(t, utils.CodeValidation, utils.AppErrorCode(err))
}

func TestUpdateReviewRecomputesOnRatingChange(t *testing.T) {
	svc, repo := newTestService(completedBooking("bk-1"), completedBooking("bk-2"))

	first, err := svc.SubmitReview(reviewer, SubmitReviewInput{BookingID: "bk-1", Rating: 5})
	require.NoError(t, err)
	_, err = svc.SubmitReview(reviewer, SubmitReviewInput{BookingID: "bk-2", Rating: 3})
	require.NoError(t, err)
	assert.Equal(t, 4.0, repo.aggregates[provID].avg)

	newRating := 1
	_, err = svc.UpdateReview(reviewer, first.ID, UpdateReviewInput{Rating: &newRating})
	require.NoError(t, err)
	assert.Equal(t, 2.0, repo.aggregates[provID].avg)
	assert.Equal(t, 2, repo.aggregates[provID].total)
}

func TestUpdateReviewCommentOnlySkipsRecompute(t *testing.T) {
	svc, repo := newTestService(completedBooking("bk-1"))

	rev, err := svc.SubmitReview(reviewer, SubmitReviewInput{BookingID: "bk-1", Rating: 5})
	require.NoError(t, err)
	before := repo.aggregates[provID]

	comment := "edited"
	updated, err := svc.UpdateReview(reviewer, rev.ID, UpdateReviewInput{Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Comment)
	assert.Equal(t, before, repo.aggregates[provID])
}

func TestUpdateReviewAuthorization(t *testing.T) {
	svc, _ := newTestService(completedBooking("bk-1"))
	rev, err := svc.SubmitReview(reviewer, SubmitReviewInput{BookingID: "bk-1", Rating: 5})
	require.NoError(t, err)

	two := 2
	_, err = svc.UpdateReview(intruder, rev.ID, UpdateReviewInput{Rating: &two})
	assert.Equal(t, utils.CodeForbidden, utils.AppErrorCode(err))

	// The reviewer may withdraw their own review but not restore it.
	hidden := false
	_, err = svc.UpdateReview(reviewer, rev.ID, UpdateReviewInput{IsVisible: &hidden})
	require.NoError(t, err)

	shown := true
	_, err = svc.UpdateReview(reviewer, rev.ID, UpdateReviewInput{IsVisible: &shown})
	assert.Equal(t, utils.CodeForbidden, utils.AppErrorCode(err))

	_, err = svc.UpdateReview(modAdmin, rev.ID, UpdateReviewInput{IsVisible: &shown})
	require.NoError(t, err)

	_, err = svc.UpdateReview(modAdmin, "missing", UpdateReviewInput{Rating: &two})
	assert.Equal(t, utils.CodeNotFound, utils.AppErrorCode(err))
}

func TestHideReviewDropsFromAggregates(t *testing.T) {
	svc, repo := newTestService(completedBooking("bk-1"), completedBooking("bk-2"))

	rev, err := svc.SubmitReview(reviewer, SubmitReviewInput{BookingID: "bk-1", Rating: 1})
	require.NoError(t, err)
	_, err = svc.SubmitReview(reviewer, SubmitReviewInput{BookingID: "bk-2", Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, 3.0, repo.aggregates[provID].avg)

	require.NoError(t, svc.HideReview(modAdmin, rev.ID))
	assert.Equal(t, 5.0, repo.aggregates[provID].avg)
	assert.Equal(t, 1, repo.aggregates[provID].total)

	visible, err := svc.ListProviderReviews(provID, 0)
	require.NoError(t, err)
	assert.Len(t, visible, 1)
}

func TestHideLastReviewZeroesAggregates(t *testing.T) {
	svc, repo := newTestService(completedBooking("bk-1"))

	rev, err := svc.SubmitReview(reviewer, SubmitReviewInput{BookingID: "bk-1", Rating: 4})
	require.NoError(t, err)

	require.NoError(t, svc.HideReview(modAdmin, rev.ID))
	assert.Equal(t, 0.0, repo.aggregates[provID].avg)
	assert.Equal(t, 0, repo.aggregates[provID].total)
}

func TestRecompute(t *testing.T) {
	svc, repo := newTestService()
	repo.reviews["r1"] = &models.Review{ID: "r1", RevieweeID: provID, Rating: 3, IsVisible: true}
	repo.reviews["r2"] = &models.Review{ID: "r2", RevieweeID: provID, Rating: 4, IsVisible: true}
	repo.reviews["r3"] = &models.Review{ID: "r3", RevieweeID: provID, Rating: 1, IsVisible: false}

	require.NoError(t, svc.Recompute(provID))
	assert.Equal(t, 3.5, repo.aggregates[provID].avg)
	assert.Equal(t, 2, repo.aggregates[provID].total)
}
