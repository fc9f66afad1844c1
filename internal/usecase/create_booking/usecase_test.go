package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	discountRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/discount"
	catalogService "github.com/m04kA/SMC-StudioBooking/internal/service/catalog"
	discountService "github.com/m04kA/SMC-StudioBooking/internal/service/discounts"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/metrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// memStore хранилище в памяти с сериализуемыми транзакциями:
// транзакции выполняются строго по одной, при ошибке состояние откатывается
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	bookings []*domain.Booking
	nextID   int64
	promos   map[string]*domain.PromoCode
	cards    map[string]*domain.GiftCard

	// имитация ограничения исключения в БД
	constraintEnabled bool
}

func newMemStore() *memStore {
	return &memStore{
		nextID:            1,
		promos:            map[string]*domain.PromoCode{},
		cards:             map[string]*domain.GiftCard{},
		constraintEnabled: true,
	}
}

type snapshot struct {
	bookings []*domain.Booking
	nextID   int64
	promos   map[string]domain.PromoCode
	cards    map[string]domain.GiftCard
}

func (s *memStore) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		bookings: append([]*domain.Booking(nil), s.bookings...),
		nextID:   s.nextID,
		promos:   map[string]domain.PromoCode{},
		cards:    map[string]domain.GiftCard{},
	}
	for k, v := range s.promos {
		snap.promos[k] = *v
	}
	for k, v := range s.cards {
		snap.cards[k] = *v
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = snap.bookings
	s.nextID = snap.nextID
	for k, v := range snap.promos {
		v := v
		s.promos[k] = &v
	}
	for k, v := range snap.cards {
		v := v
		s.cards[k] = &v
	}
}

func (s *memStore) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *memStore) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.constraintEnabled {
		start, end := b.HourRange()
		for _, other := range s.bookings {
			if other.Status == domain.StatusCancelled || !other.BookingDate.Equal(b.BookingDate) {
				continue
			}
			os, oe := other.HourRange()
			if start < oe && os < end {
				return nil, bookingRepo.ErrSlotNotAvailable
			}
		}
	}

	created := *b
	created.ID = s.nextID
	s.nextID++
	s.bookings = append(s.bookings, &created)
	result := created
	return &result, nil
}

func (s *memStore) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.BookingDate.Equal(*filter.StartDate) {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s *memStore) GetPromoCode(_ context.Context, code string) (*domain.PromoCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.promos[code]
	if !ok {
		return nil, discountRepo.ErrPromoCodeNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *memStore) GetGiftCard(_ context.Context, code string) (*domain.GiftCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[code]
	if !ok {
		return nil, discountRepo.ErrGiftCardNotFound
	}
	copied := *c
	return &copied, nil
}

func (s *memStore) IncrementPromoUsage(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.promos[code]
	if !ok || !p.Active || p.IsExhausted() {
		return discountRepo.ErrPromoCodeExhausted
	}
	p.UsedCount++
	return nil
}

func (s *memStore) RedeemGiftCard(_ context.Context, code string, bookingID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[code]
	if !ok || c.IsUsed {
		return discountRepo.ErrGiftCardAlreadyUsed
	}
	c.IsUsed = true
	c.RedeemedBookingID = ptr.Ptr(bookingID)
	return nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

type fakeCatalog struct {
	mu       sync.Mutex
	services map[int64]*domain.ServiceType
}

func (f *fakeCatalog) ResolvePackage(_ context.Context, serviceID, packageID int64) (*domain.ServiceType, *domain.Package, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.services[serviceID]
	if !ok {
		return nil, nil, catalogService.ErrServiceNotFound
	}
	p, ok := s.FindPackage(packageID)
	if !ok {
		return nil, nil, catalogService.ErrPackageNotFound
	}
	copiedService := *s
	copiedPackage := *p
	return &copiedService, &copiedPackage, nil
}

type fakeSettings struct{ s *domain.StudioSettings }

func (f *fakeSettings) Current(context.Context) (*domain.StudioSettings, error) {
	copied := *f.s
	return &copied, nil
}

type recordingMetrics struct {
	mu        sync.Mutex
	created   map[string]int
	conflicts map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{created: map[string]int{}, conflicts: map[string]int{}}
}

func (m *recordingMetrics) BookingCreated(mode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created[mode]++
}

func (m *recordingMetrics) BookingConflict(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts[reason]++
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type abortingTx struct{}

func (abortingTx) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return txmanager.ErrTransactionAborted
}

const (
	portraitID = 1
	weddingID  = 2

	miniID    = 10
	classicID = 11
	fullDayID = 20
)

var (
	bookingDate = time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	now         = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
)

type fixture struct {
	uc       *UseCase
	store    *memStore
	catalog  *fakeCatalog
	settings *domain.StudioSettings
	metrics  *recordingMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	catalog := &fakeCatalog{services: map[int64]*domain.ServiceType{
		portraitID: {ID: portraitID, Name: "Portrait", Mode: domain.ModeHourly, Active: true, Packages: []domain.Package{
			{ID: miniID, ServiceID: portraitID, Name: "Mini", DurationHours: 1, Price: 20000, Active: true},
			{ID: classicID, ServiceID: portraitID, Name: "Classic", DurationHours: 2, Price: 35000, Active: true},
		}},
		weddingID: {ID: weddingID, Name: "Wedding", Mode: domain.ModeWholeDay, RequiresVenue: true, Active: true, Packages: []domain.Package{
			{ID: fullDayID, ServiceID: weddingID, Name: "Full day", DurationHours: 10, Price: 500000, Active: true},
		}},
	}}
	settings := &domain.StudioSettings{
		OpenHour:                8,
		CloseHour:               20,
		MinBookingNoticeMinutes: 60,
		Location:                time.UTC,
	}
	settingsProvider := &fakeSettings{s: settings}
	m := newRecordingMetrics()

	discounts := discountService.NewService(store, settingsProvider, (*metrics.Metrics)(nil), logger.Nop())

	uc := NewUseCase(store, store, discounts, catalog, settingsProvider, store, m, logger.Nop())
	uc.timeProvider = fixedTime{t: now}

	return &fixture{uc: uc, store: store, catalog: catalog, settings: settings, metrics: m}
}

func hourlyRequest(packageID int64, start string) *Request {
	return &Request{
		ServiceID:  portraitID,
		PackageID:  packageID,
		Date:       bookingDate,
		StartTime:  types.MustTimeString(start),
		ClientName: "Anna Smith",
		Email:      "anna@example.com",
	}
}

func weddingRequest() *Request {
	return &Request{
		ServiceID:  weddingID,
		PackageID:  fullDayID,
		Date:       bookingDate,
		ClientName: "Bride Groom",
		Email:      "couple@example.com",
		VenueCity:  ptr.Ptr("Tbilisi"),
		VenuePlace: ptr.Ptr("Old Town Hall"),
	}
}

func TestExecute_HourlyBookingCreated(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), hourlyRequest(classicID, "10:00"))
	require.NoError(t, err)

	b := resp.Booking
	assert.NotZero(t, b.ID)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, "Portrait", b.ServiceName)
	assert.Equal(t, "Classic", b.PackageName)
	assert.Equal(t, 2, b.DurationHours)
	assert.Equal(t, "10:00", b.StartTime.String())
	assert.Equal(t, "12:00", b.EndTime.String())
	assert.Equal(t, int64(35000), b.Price)
	assert.Equal(t, int64(35000), b.OriginalPrice)
	assert.Nil(t, b.VenueCity)
	assert.Equal(t, 1, f.metrics.created[string(domain.ModeHourly)])
}

func TestExecute_WholeDayBookingIgnoresTimes(t *testing.T) {
	f := newFixture(t)

	req := weddingRequest()
	req.StartTime = types.MustTimeString("09:00")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Booking.StartTime.IsZero())
	assert.True(t, resp.Booking.EndTime.IsZero())
	assert.Equal(t, domain.ModeWholeDay, resp.Booking.SchedulingMode)
	assert.Equal(t, "Tbilisi", *resp.Booking.VenueCity)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"missing name", func(r *Request) { r.ClientName = "  " }, ErrInvalidInput},
		{"bad email", func(r *Request) { r.Email = "not-an-email" }, ErrInvalidInput},
		{"missing start", func(r *Request) { r.StartTime = types.TimeString{} }, ErrInvalidInput},
		{"half hour start", func(r *Request) { r.StartTime = types.MustTimeString("10:30") }, ErrInvalidInput},
		{"end mismatch", func(r *Request) { r.EndTime = types.MustTimeString("13:00") }, ErrInvalidTimeSlot},
		{"notes too long", func(r *Request) { r.Notes = ptr.Ptr(string(make([]byte, domain.MaxNotesLength+1))) }, ErrInvalidInput},
		{"unknown service", func(r *Request) { r.ServiceID = 99 }, ErrServiceNotFound},
		{"package of another service", func(r *Request) { r.PackageID = fullDayID }, ErrPackageNotFound},
		{"date in past", func(r *Request) { r.Date = now.AddDate(0, 0, -1) }, ErrInvalidDate},
		{"ends after close", func(r *Request) { r.StartTime = types.MustTimeString("19:00") }, ErrInvalidTimeSlot},
		{"starts before open", func(r *Request) { r.StartTime = types.MustTimeString("07:00") }, ErrInvalidTimeSlot},
		{"stale hours", func(r *Request) { r.QuotedHours = ptr.Ptr(1) }, ErrPriceChanged},
		{"stale price", func(r *Request) { r.QuotedPrice = ptr.Ptr(int64(30000)) }, ErrPriceChanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := hourlyRequest(classicID, "10:00")
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.store.count())
		})
	}
}

func TestExecute_VenueRequired(t *testing.T) {
	f := newFixture(t)

	req := weddingRequest()
	req.VenuePlace = ptr.Ptr(" ")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_DateTooFarInFuture(t *testing.T) {
	f := newFixture(t)
	f.settings.AdvanceBookingDays = 7

	_, err := f.uc.Execute(context.Background(), hourlyRequest(miniID, "10:00"))
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_TooLateToBookToday(t *testing.T) {
	f := newFixture(t)

	req := hourlyRequest(miniID, "09:00")
	req.Date = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)

	req.StartTime = types.MustTimeString("10:00")
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_OverlapRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), hourlyRequest(classicID, "10:00"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), hourlyRequest(classicID, "11:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	_, err = f.uc.Execute(context.Background(), hourlyRequest(classicID, "09:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// соседний интервал [12, 14) не пересекается с [10, 12)
	_, err = f.uc.Execute(context.Background(), hourlyRequest(classicID, "12:00"))
	assert.NoError(t, err)

	assert.Equal(t, 2, f.metrics.conflicts[string(domain.ReasonBookedSession)])
}

func TestExecute_WholeDayBlocksEverything(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), weddingRequest())
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), hourlyRequest(miniID, "15:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	_, err = f.uc.Execute(context.Background(), weddingRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_WholeDayBlockedBySession(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), hourlyRequest(miniID, "15:00"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), weddingRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_CancelledBookingKeepsSlotByDefault(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), hourlyRequest(miniID, "10:00"))
	require.NoError(t, err)
	f.store.bookings[0].Status = domain.StatusCancelled

	_, err = f.uc.Execute(context.Background(), hourlyRequest(miniID, "10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	f.settings.ReleaseCancelledSlots = true
	second, err := f.uc.Execute(context.Background(), hourlyRequest(miniID, "10:00"))
	require.NoError(t, err)
	assert.NotEqual(t, resp.Booking.ID, second.Booking.ID)
}

func TestExecute_ConstraintBackstop(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), hourlyRequest(classicID, "10:00"))
	require.NoError(t, err)

	// список не видит конкурента, запись отклоняет ограничение хранилища
	f.uc.bookingRepo = &hidingList{memStore: f.store}

	_, err = f.uc.Execute(context.Background(), hourlyRequest(miniID, "11:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1, f.metrics.conflicts[conflictConstraint])
	assert.Equal(t, 1, f.store.count())
}

// hidingList возвращает пустой список бронирований, но пишет в общее хранилище
type hidingList struct {
	*memStore
}

func (h *hidingList) List(context.Context, domain.BookingsFilter) ([]*domain.Booking, error) {
	return nil, nil
}

func TestExecute_TransactionAbortedMapsToConflict(t *testing.T) {
	f := newFixture(t)
	f.uc.txManager = abortingTx{}

	_, err := f.uc.Execute(context.Background(), hourlyRequest(miniID, "10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1, f.metrics.conflicts[conflictSerialization])
}

func TestExecute_PromoAndGiftCard(t *testing.T) {
	f := newFixture(t)
	f.store.promos["SUMMER15"] = &domain.PromoCode{
		Code: "SUMMER15", DiscountType: domain.DiscountPercentage, DiscountValue: 15, Active: true,
	}
	f.store.cards["GIFT-50"] = &domain.GiftCard{Code: "GIFT-50", Amount: 5000}

	req := hourlyRequest(classicID, "10:00")
	req.PromoCode = ptr.Ptr(" summer15 ")
	req.GiftCardCode = ptr.Ptr("gift-50")
	req.QuotedPrice = ptr.Ptr(int64(24750))
	req.QuotedOriginalPrice = ptr.Ptr(int64(35000))

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// 35000 - 15% = 29750, минус 5000 по карте
	assert.Equal(t, int64(24750), resp.Booking.Price)
	assert.Equal(t, int64(35000), resp.Booking.OriginalPrice)
	assert.Equal(t, int64(5250), resp.Quote.PromoDiscount)
	assert.Equal(t, int64(5000), resp.Quote.GiftCardDiscount)
	assert.Equal(t, "SUMMER15", *resp.Booking.PromoCode)
	assert.Equal(t, "GIFT-50", *resp.Booking.GiftCardCode)

	assert.Equal(t, 1, f.store.promos["SUMMER15"].UsedCount)
	assert.True(t, f.store.cards["GIFT-50"].IsUsed)
	assert.Equal(t, resp.Booking.ID, *f.store.cards["GIFT-50"].RedeemedBookingID)
}

func TestExecute_GiftCardLargerThanPrice(t *testing.T) {
	f := newFixture(t)
	f.store.cards["BIG"] = &domain.GiftCard{Code: "BIG", Amount: 1_000_000}

	req := hourlyRequest(miniID, "10:00")
	req.GiftCardCode = ptr.Ptr("BIG")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, resp.Booking.Price)
	assert.Equal(t, int64(20000), resp.Booking.OriginalPrice)
}

func TestExecute_GlobalPromoDoesNotTouchCounters(t *testing.T) {
	f := newFixture(t)
	f.settings.GlobalPromo = &domain.Discount{Code: "WELCOME", Type: domain.DiscountFixed, Value: 2000}
	f.settings.GlobalPromoActive = true

	req := hourlyRequest(miniID, "10:00")
	req.PromoCode = ptr.Ptr("welcome")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(18000), resp.Booking.Price)
	assert.Equal(t, "WELCOME", *resp.Booking.PromoCode)
}

func TestExecute_DiscountErrors(t *testing.T) {
	yesterday := now.AddDate(0, 0, -1)

	tests := []struct {
		name    string
		setup   func(s *memStore)
		promo   *string
		gift    *string
		wantErr error
	}{
		{"unknown promo", func(*memStore) {}, ptr.Ptr("NOPE"), nil, ErrPromoCodeInvalid},
		{"inactive promo", func(s *memStore) {
			s.promos["OFF"] = &domain.PromoCode{Code: "OFF", DiscountType: domain.DiscountFixed, DiscountValue: 100}
		}, ptr.Ptr("OFF"), nil, ErrPromoCodeInvalid},
		{"exhausted promo", func(s *memStore) {
			s.promos["ONCE"] = &domain.PromoCode{Code: "ONCE", DiscountType: domain.DiscountFixed, DiscountValue: 100,
				Active: true, MaxUses: ptr.Ptr(1), UsedCount: 1}
		}, ptr.Ptr("ONCE"), nil, ErrPromoCodeInvalid},
		{"expired promo", func(s *memStore) {
			s.promos["OLD"] = &domain.PromoCode{Code: "OLD", DiscountType: domain.DiscountFixed, DiscountValue: 100,
				Active: true, ExpiresAt: &yesterday}
		}, ptr.Ptr("OLD"), nil, ErrPromoCodeExpired},
		{"unknown gift card", func(*memStore) {}, nil, ptr.Ptr("NOPE"), ErrGiftCardNotFound},
		{"used gift card", func(s *memStore) {
			s.cards["USED"] = &domain.GiftCard{Code: "USED", Amount: 100, IsUsed: true}
		}, nil, ptr.Ptr("USED"), ErrGiftCardAlreadyUsed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f.store)

			req := hourlyRequest(miniID, "10:00")
			req.PromoCode = tt.promo
			req.GiftCardCode = tt.gift

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.store.count())
		})
	}
}

func TestExecute_FailedRedeemLeavesNoBooking(t *testing.T) {
	f := newFixture(t)
	f.store.promos["ONCE"] = &domain.PromoCode{
		Code: "ONCE", DiscountType: domain.DiscountFixed, DiscountValue: 100, Active: true, MaxUses: ptr.Ptr(1),
	}
	f.store.cards["GIFT"] = &domain.GiftCard{Code: "GIFT", Amount: 100}

	// карта проходит проверку, но погашается конкурентом до фиксации
	f.uc.discountRepo = &redeemRacer{memStore: f.store}

	req := hourlyRequest(miniID, "10:00")
	req.PromoCode = ptr.Ptr("ONCE")
	req.GiftCardCode = ptr.Ptr("GIFT")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrGiftCardAlreadyUsed)

	assert.Zero(t, f.store.count())
	assert.Zero(t, f.store.promos["ONCE"].UsedCount)
}

// redeemRacer имитирует конкурентное погашение карты между проверкой и фиксацией
type redeemRacer struct {
	*memStore
}

func (r *redeemRacer) RedeemGiftCard(context.Context, string, int64) error {
	return discountRepo.ErrGiftCardAlreadyUsed
}

func TestExecute_SnapshotSurvivesCatalogChange(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), hourlyRequest(classicID, "10:00"))
	require.NoError(t, err)

	f.catalog.mu.Lock()
	f.catalog.services[portraitID].Name = "Portrait Deluxe"
	f.catalog.services[portraitID].Packages[1].Price = 99000
	f.catalog.mu.Unlock()

	stored, err := f.store.List(context.Background(), domain.BookingsFilter{StartDate: &bookingDate, EndDate: &bookingDate})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, resp.Booking.ID, stored[0].ID)
	assert.Equal(t, "Portrait", stored[0].ServiceName)
	assert.Equal(t, int64(35000), stored[0].Price)
}

func TestExecute_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	// проверка слота в транзакции должна справиться без ограничения хранилища
	f.store.constraintEnabled = false

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), hourlyRequest(classicID, "10:00"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSlotNotAvailable):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)
	assert.Equal(t, 1, f.store.count())
}

func TestExecute_ConcurrentGiftCardRedemption(t *testing.T) {
	f := newFixture(t)
	f.store.cards["ONE-TIME"] = &domain.GiftCard{Code: "ONE-TIME", Amount: 1000}

	starts := []string{"09:00", "11:00", "13:00", "15:00"}
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		used      int
	)

	for _, start := range starts {
		wg.Add(1)
		go func(start string) {
			defer wg.Done()
			req := hourlyRequest(miniID, start)
			req.GiftCardCode = ptr.Ptr("ONE-TIME")
			_, err := f.uc.Execute(context.Background(), req)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrGiftCardAlreadyUsed):
				used++
			}
		}(start)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, len(starts)-1, used)
	assert.Equal(t, 1, f.store.count())
}
