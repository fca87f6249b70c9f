package booking

import (
	"errors"
	"strings"
	"testing"
	"time"

	serviceRepo "karigar/database/repository/service"
	"karigar/models"
	"karigar/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingRepo is an in-memory BookingRepository with the same conditional
// write semantics as the Mongo implementation.
type fakeBookingRepo struct {
	bookings      map[string]*models.Booking
	completedJobs map[string]int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:      make(map[string]*models.Booking),
		completedJobs: make(map[string]int),
	}
}

func (f *fakeBookingRepo) Create(b *models.Booking) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) ListByCustomer(customerID string, status models.BookingStatus) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.CustomerID == customerID && (status == "" || b.Status == status) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByProvider(providerID string, status models.BookingStatus) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ProviderID == providerID && (status == "" || b.Status == status) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListAll(status models.BookingStatus) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if status == "" || b.Status == status {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindActiveBySlot(providerID, date, timeOfDay, excludeID string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == excludeID {
			continue
		}
		if b.ProviderID == providerID && b.RequestedDate == date &&
			b.RequestedTime == timeOfDay && b.Status.Active() {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) updateIf(id string, expected models.BookingStatus, mutate func(*models.Booking)) (bool, error) {
	b, ok := f.bookings[id]
	if !ok || b.Status != expected {
		return false, nil
	}
	mutate(b)
	b.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeBookingRepo) TransitionIf(id string, expected, to models.BookingStatus) (bool, error) {
	return f.updateIf(id, expected, func(b *models.Booking) { b.Status = to })
}

func (f *fakeBookingRepo) ConfirmIf(id string, expected models.BookingStatus, confirmedDate, confirmedTime string) (bool, error) {
	return f.updateIf(id, expected, func(b *models.Booking) {
		b.Status = models.BookingConfirmed
		b.ConfirmedDate = confirmedDate
		b.ConfirmedTime = confirmedTime
	})
}

func (f *fakeBookingRepo) CancelIf(id string, expected models.BookingStatus, reason, cancelledByID string) (bool, error) {
	return f.updateIf(id, expected, func(b *models.Booking) {
		b.Status = models.BookingCancelled
		b.CancellationReason = reason
		b.CancelledByID = cancelledByID
	})
}

func (f *fakeBookingRepo) CompleteAndCountJob(id string, expected models.BookingStatus) (bool, error) {
	b, ok := f.bookings[id]
	if !ok {
		return false, nil
	}
	providerID := b.ProviderID
	matched, err := f.updateIf(id, expected, func(b *models.Booking) {
		b.Status = models.BookingCompleted
	})
	if matched {
		f.completedJobs[providerID]++
	}
	return matched, err
}

func (f *fakeBookingRepo) RescheduleIf(id string, expected models.BookingStatus, newDate, newTime, instructions string) (bool, error) {
	return f.updateIf(id, expected, func(b *models.Booking) {
		b.Status = models.BookingRequested
		b.RequestedDate = newDate
		b.RequestedTime = newTime
		b.ConfirmedDate = ""
		b.ConfirmedTime = ""
		b.SpecialInstructions = instructions
	})
}

func (f *fakeBookingRepo) Count() (int64, error) { return int64(len(f.bookings)), nil }
func (f *fakeBookingRepo) CountSince(time.Time) (int64, error) { return 0, nil }
func (f *fakeBookingRepo) CountByStatus() (map[models.BookingStatus]int64, error) {
	out := make(map[models.BookingStatus]int64)
	for _, b := range f.bookings {
		out[b.Status]++
	}
	return out, nil
}

type fakeServiceRepo struct {
	services map[string]*models.Service
}

func (f *fakeServiceRepo) Create(s *models.Service) error { f.services[s.ID] = s; return nil }
func (f *fakeServiceRepo) Update(s *models.Service) error { f.services[s.ID] = s; return nil }
func (f *fakeServiceRepo) GetByID(id string) (*models.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}
func (f *fakeServiceRepo) ListByProvider(string, bool) ([]models.Service, error) { return nil, nil }
func (f *fakeServiceRepo) ListActiveByProviders([]string, string) ([]models.Service, error) {
	return nil, nil
}
func (f *fakeServiceRepo) Deactivate(id string) error {
	if s, ok := f.services[id]; ok {
		s.IsActive = false
	}
	return nil
}
func (f *fakeServiceRepo) CountByCategory(int) ([]serviceRepo.CategoryCount, error) { return nil, nil }

type fakeProviderRepo struct {
	infos map[string]*models.ProviderInfo
}

func (f *fakeProviderRepo) Create(info *models.ProviderInfo) error {
	f.infos[info.UserID] = info
	return nil
}
func (f *fakeProviderRepo) GetByUserID(userID string) (*models.ProviderInfo, error) {
	info, ok := f.infos[userID]
	if !ok {
		return nil, nil
	}
	return info, nil
}
func (f *fakeProviderRepo) GetByUserIDs([]string) ([]models.ProviderInfo, error) { return nil, nil }
func (f *fakeProviderRepo) ListActive() ([]models.ProviderInfo, error) { return nil, nil }
func (f *fakeProviderRepo) ListAllUserIDs() ([]string, error) { return nil, nil }
func (f *fakeProviderRepo) Update(info *models.ProviderInfo) error {
	f.infos[info.UserID] = info
	return nil
}
func (f *fakeProviderRepo) SetActive(userID string, active bool) error {
	if info, ok := f.infos[userID]; ok {
		info.IsActive = active
	}
	return nil
}
func (f *fakeProviderRepo) SetVerificationStatus(userID string, status models.VerificationStatus) error {
	if info, ok := f.infos[userID]; ok {
		info.VerificationStatus = status
	}
	return nil
}
func (f *fakeProviderRepo) ListTopRated(int) ([]models.ProviderInfo, error) { return nil, nil }
func (f *fakeProviderRepo) CountPendingVerifications() (int64, error) { return 0, nil }

type fakeReminderScheduler struct {
	scheduled []string
	fail      bool
}

func (f *fakeReminderScheduler) ScheduleBookingReminders(b *models.Booking) error {
	if f.fail {
		return errors.New("queue unavailable")
	}
	f.scheduled = append(f.scheduled, b.ID)
	return nil
}

const (
	testCustomerID = "cust-1"
	testProviderID = "prov-1"
	testServiceID  = "svc-1"
)

var (
	customer = models.SessionUser{ID: testCustomerID, Role: models.RoleCustomer}
	provider = models.SessionUser{ID: testProviderID, Role: models.RoleProvider}
	admin    = models.SessionUser{ID: "admin-1", Role: models.RoleAdmin}
	stranger = models.SessionUser{ID: "other-1", Role: models.RoleCustomer}
)

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func newTestService() (*DefaultBookingService, *fakeBookingRepo, *fakeProviderRepo, *fakeReminderScheduler) {
	repo := newFakeBookingRepo()
	providers := &fakeProviderRepo{infos: map[string]*models.ProviderInfo{
		testProviderID: {UserID: testProviderID, IsActive: true},
	}}
	services := &fakeServiceRepo{services: map[string]*models.Service{
		testServiceID: {ID: testServiceID, ProviderID: testProviderID, IsActive: true},
	}}
	reminders := &fakeReminderScheduler{}
	svc := &DefaultBookingService{
		Repo:      repo,
		Services:  services,
		Providers: providers,
		Reminders: reminders,
	}
	return svc, repo, providers, reminders
}

func requestBooking(t *testing.T, svc *DefaultBookingService) *models.Booking {
	t.Helper()
	b, err := svc.RequestBooking(customer, RequestBookingInput{
		ProviderID:    testProviderID,
		ServiceID:     testServiceID,
		RequestedDate: futureDate(3),
		RequestedTime: "10:00",
	})
	require.NoError(t, err)
	return b
}

func TestRequestBooking(t *testing.T) {
	svc, _, _, _ := newTestService()

	b := requestBooking(t, svc)
	assert.Equal(t, models.BookingRequested, b.Status)
	assert.Equal(t, testCustomerID, b.CustomerID)
	assert.NotEmpty(t, b.ID)
	assert.Empty(t, b.ConfirmedDate)
}

func TestRequestBookingValidation(t *testing.T) {
	svc, _, providers, _ := newTestService()

	_, err := svc.RequestBooking(provider, RequestBookingInput{
		ProviderID: testProviderID, ServiceID: testServiceID,
		RequestedDate: futureDate(3), RequestedTime: "10:00",
	})
	assert.Equal(t, utils.CodeForbidden, utils.AppErrorCode(err))

	_, err = svc.RequestBooking(customer, RequestBookingInput{
		ProviderID: testProviderID, ServiceID: testServiceID,
		RequestedDate: "03-05-2026", RequestedTime: "10:00",
	})
	assert.Equal(t, utils.CodeValidation, utils.AppErrorCode(err))

	_, err = svc.RequestBooking(customer, RequestBookingInput{
		ProviderID: testProviderID, ServiceID: testServiceID,
		RequestedDate: "2020-01-01", RequestedTime: "10:00",
	})
	assert.Equal(t, utils.CodeValidation, utils.AppErrorCode(err))

	_, err = svc.RequestBooking(customer, RequestBookingInput{
		ProviderID: testProviderID, ServiceID: "missing",
		RequestedDate: futureDate(3), RequestedTime: "10:00",
	})
	assert.Equal(t, utils.CodeNotFound, utils.AppErrorCode(err))

	providers.infos[testProviderID].IsActive = false
	_, err = svc.RequestBooking(customer, RequestBookingInput{
		ProviderID: testProviderID, ServiceID: testServiceID,
		RequestedDate: futureDate(3), RequestedTime: "10:00",
	})
	assert.Equal(t, utils.CodeValidation, utils.AppErrorCode(err))
}

func TestRequestBookingSlotConflict(t *testing.T) {
	svc, _, _, _ := newTestService()
	requestBooking(t, svc)

	_, err := svc.RequestBooking(customer, RequestBookingInput{
		ProviderID: testProviderID, ServiceID: testServiceID,
		RequestedDate: futureDate(3), RequestedTime: "10:00",
	})
	assert.Equal(t, utils.CodeSlotConflict, utils.AppErrorCode(err))

	// A minute apart is not a conflict.
	_, err = svc.RequestBooking(customer, RequestBookingInput{
		ProviderID: testProviderID, ServiceID: testServiceID,
		RequestedDate: futureDate(3), RequestedTime: "10:01",
	})
	assert.NoError(t, err)
}

func TestCancelledBookingFreesSlot(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := requestBooking(t, svc)

	_, err := svc.ChangeStatus(customer, b.ID, models.BookingCancelled, "changed plans")
	require.NoError(t, err)

	_, err = svc.RequestBooking(customer, RequestBookingInput{
		ProviderID: testProviderID, ServiceID: testServiceID,
		RequestedDate: b.RequestedDate, RequestedTime: b.RequestedTime,
	})
	assert.NoError(t, err)
}

func TestConfirmSnapshotsRequestedSlot(t *testing.T) {
	svc, _, _, reminders := newTestService()
	b := requestBooking(t, svc)

	updated, err := svc.ChangeStatus(provider, b.ID, models.BookingConfirmed, "")
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, updated.Status)
	assert.Equal(t, b.RequestedDate, updated.ConfirmedDate)
	assert.Equal(t, b.RequestedTime, updated.ConfirmedTime)
	assert.Equal(t, []string{b.ID}, reminders.scheduled)
}

func TestCustomerCannotConfirm(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := requestBooking(t, svc)

	_, err := svc.ChangeStatus(customer, b.ID, models.BookingConfirmed, "")
	assert.Equal(t, utils.CodeForbidden, utils.AppErrorCode(err))
}

func TestStrangerCannotTouchBooking(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := requestBooking(t, svc)

	_, err := svc.ChangeStatus(stranger, b.ID, models.BookingCancelled, "")
	assert.Equal(t, utils.CodeUnauthorized, utils.AppErrorCode(err))

	_, err = svc.GetBooking(stranger, b.ID)
	assert.Equal(t, utils.CodeUnauthorized, utils.AppErrorCode(err))
}

func TestIllegalTransitionRejected(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := requestBooking(t, svc)

	_, err := svc.ChangeStatus(provider, b.ID, models.BookingCompleted, "")
	assert.Equal(t, utils.CodeInvalidTransition, utils.AppErrorCode(err))

	_, err = svc.ChangeStatus(provider, b.ID, "made_up", "")
	assert.Equal(t, utils.CodeValidation, utils.AppErrorCode(err))
}

func TestTerminalBookingRejectsEverything(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := requestBooking(t, svc)

	_, err := svc.ChangeStatus(provider, b.ID, models.BookingRejected, "")
	require.NoError(t, err)

	for _, to := range []models.BookingStatus{
		models.BookingConfirmed, models.BookingCancelled, models.BookingCompleted,
	} {
		_, err := svc.ChangeStatus(provider, b.ID, to, "")
		assert.Equalf(t, utils.CodeInvalidTransition, utils.AppErrorCode(err), "to %s", to)
	}
}

func TestCancelRecordsReasonAndActor(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := requestBooking(t, svc)

	updated, err := svc.ChangeStatus(customer, b.ID, models.BookingCancelled, "found someone closer")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, updated.Status)
	assert.Equal(t, "found someone closer", updated.CancellationReason)
	assert.Equal(t, testCustomerID, updated.CancelledByID)
}

func TestCompleteIncrementsJobsExactlyOnce(t *testing.T) {
	svc, repo, _, _ := newTestService()
	b := requestBooking(t, svc)

	_, err := svc.ChangeStatus(provider, b.ID, models.BookingConfirmed, "")
	require.NoError(t, err)
	_, err = svc.ChangeStatus(provider, b.ID, models.BookingInProgress, "")
	require.NoError(t, err)
	_, err = svc.ChangeStatus(provider, b.ID, models.BookingCompleted, "")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.completedJobs[testProviderID])

	// Replaying the transition must not count the job again.
	_, err = svc.ChangeStatus(provider, b.ID, models.BookingCompleted, "")
	assert.Equal(t, utils.CodeInvalidTransition, utils.AppErrorCode(err))
	assert.Equal(t, 1, repo.completedJobs[testProviderID])
}

func TestConcurrentTransitionLosesCAS(t *testing.T) {
	svc, repo, _, _ := newTestService()
	b := requestBooking(t, svc)

	// Simulate another actor moving the booking after our validation read.
	repo.bookings[b.ID].Status = models.BookingCancelled

	_, err := svc.ChangeStatus(provider, b.ID, models.BookingConfirmed, "")
	assert.Equal(t, utils.CodeInvalidTransition, utils.AppErrorCode(err))
}

func TestAdminCanDriveLifecycle(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := requestBooking(t, svc)

	_, err := svc.ChangeStatus(admin, b.ID, models.BookingConfirmed, "")
	assert.NoError(t, err)
}

func TestRemindersAreBestEffort(t *testing.T) {
	svc, _, _, reminders := newTestService()
	reminders.fail = true
	b := requestBooking(t, svc)

	updated, err := svc.ChangeStatus(provider, b.ID, models.BookingConfirmed, "")
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, updated.Status)
}

func TestRescheduleResetsToRequested(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := requestBooking(t, svc)

	_, err := svc.ChangeStatus(provider, b.ID, models.BookingConfirmed, "")
	require.NoError(t, err)

	newDate := futureDate(5)
	updated, err := svc.RescheduleBooking(customer, b.ID, newDate, "14:00", "work came up")
	require.NoError(t, err)
	assert.Equal(t, models.BookingRequested, updated.Status)
	assert.Equal(t, newDate, updated.RequestedDate)
	assert.Equal(t, "14:00", updated.RequestedTime)
	assert.Empty(t, updated.ConfirmedDate)
	assert.True(t, strings.Contains(updated.SpecialInstructions, "[Reschedule Request]: work came up"),
		updated.SpecialInstructions)
}

func TestRescheduleKeepsExistingInstructions(t *testing.T) {
	svc, _, _, _ := newTestService()
	b, err := svc.RequestBooking(customer, RequestBookingInput{
		ProviderID: testProviderID, ServiceID: testServiceID,
		RequestedDate: futureDate(3), RequestedTime: "10:00",
		SpecialInstructions: "ring the bell twice",
	})
	require.NoError(t, err)

	updated, err := svc.RescheduleBooking(customer, b.ID, futureDate(4), "10:00", "travelling")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(updated.SpecialInstructions, "ring the bell twice"))
	assert.True(t, strings.HasSuffix(updated.SpecialInstructions, "[Reschedule Request]: travelling"))
}

func TestRescheduleRejectsOccupiedSlot(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := requestBooking(t, svc)
	other, err := svc.RequestBooking(customer, RequestBookingInput{
		ProviderID: testProviderID, ServiceID: testServiceID,
		RequestedDate: futureDate(4), RequestedTime: "11:00",
	})
	require.NoError(t, err)

	_, err = svc.RescheduleBooking(customer, b.ID, other.RequestedDate, other.RequestedTime, "")
	assert.Equal(t, utils.CodeSlotConflict, utils.AppErrorCode(err))

	// Rescheduling onto its own slot is fine.
	_, err = svc.RescheduleBooking(customer, b.ID, b.RequestedDate, b.RequestedTime, "")
	assert.NoError(t, err)
}

func TestRescheduleRejectsTerminalAndInProgress(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := requestBooking(t, svc)

	_, err := svc.ChangeStatus(provider, b.ID, models.BookingConfirmed, "")
	require.NoError(t, err)
	_, err = svc.ChangeStatus(provider, b.ID, models.BookingInProgress, "")
	require.NoError(t, err)

	_, err = svc.RescheduleBooking(customer, b.ID, futureDate(5), "09:00", "")
	assert.Equal(t, utils.CodeInvalidState, utils.AppErrorCode(err))
}

func TestReschedulePastDateRejected(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := requestBooking(t, svc)

	_, err := svc.RescheduleBooking(customer, b.ID, "2020-01-01", "09:00", "")
	assert.Equal(t, utils.CodeValidation, utils.AppErrorCode(err))
}

func TestListBookingsByRole(t *testing.T) {
	svc, _, _, _ := newTestService()
	requestBooking(t, svc)

	mine, err := svc.ListBookings(customer, "")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := svc.ListBookings(provider, models.BookingRequested)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)

	none, err := svc.ListBookings(stranger, "")
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := svc.ListBookings(admin, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.ListBookings(admin, "bogus")
	assert.Equal(t, utils.CodeValidation, utils.AppErrorCode(err))
}
