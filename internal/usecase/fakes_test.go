package usecase_test

import (
	"context"
	"sync"
	"time"

	"parking-facility/internal/data/entity"
	"parking-facility/internal/data/repository"
	"parking-facility/internal/usecase"
	"parking-facility/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repositories backing the service tests. Each fake accepts an
// injected error to simulate store failures.

type fakeLotRepo struct {
	mu   sync.Mutex
	lots map[uuid.UUID]*entity.Lot
	err  error
}

func newFakeLotRepo() *fakeLotRepo {
	return &fakeLotRepo{lots: make(map[uuid.UUID]*entity.Lot)}
}

func (f *fakeLotRepo) Create(_ context.Context, lot *entity.Lot) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *lot
	f.lots[lot.ID] = &cp
	return nil
}

func (f *fakeLotRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Lot, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	lot, ok := f.lots[id]
	if !ok {
		return nil, nil
	}
	cp := *lot
	return &cp, nil
}

func (f *fakeLotRepo) FindAll(_ context.Context) ([]*entity.Lot, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var lots []*entity.Lot
	for _, lot := range f.lots {
		cp := *lot
		lots = append(lots, &cp)
	}
	return lots, nil
}

func (f *fakeLotRepo) Update(_ context.Context, lot *entity.Lot) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *lot
	f.lots[lot.ID] = &cp
	return nil
}

func (f *fakeLotRepo) Delete(_ context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.lots, id)
	return nil
}

type fakeSpaceRepo struct {
	mu     sync.Mutex
	spaces map[uuid.UUID]*entity.Space
	err    error
}

func newFakeSpaceRepo() *fakeSpaceRepo {
	return &fakeSpaceRepo{spaces: make(map[uuid.UUID]*entity.Space)}
}

func (f *fakeSpaceRepo) Create(_ context.Context, space *entity.Space) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *space
	f.spaces[space.ID] = &cp
	return nil
}

func (f *fakeSpaceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Space, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	space, ok := f.spaces[id]
	if !ok {
		return nil, nil
	}
	cp := *space
	return &cp, nil
}

func (f *fakeSpaceRepo) FindAll(_ context.Context, filter repository.SpaceFilter) ([]*entity.Space, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var spaces []*entity.Space
	for _, space := range f.spaces {
		if filter.LotID != nil && space.LotID != *filter.LotID {
			continue
		}
		if filter.SpaceType != nil && space.SpaceType != *filter.SpaceType {
			continue
		}
		if filter.State != nil && space.State != *filter.State {
			continue
		}
		cp := *space
		spaces = append(spaces, &cp)
	}
	return spaces, nil
}

func (f *fakeSpaceRepo) Update(_ context.Context, space *entity.Space) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.spaces[space.ID]
	if !ok {
		return nil
	}
	existing.LotID = space.LotID
	existing.SpaceType = space.SpaceType
	existing.ExtraCharge = space.ExtraCharge
	existing.UpdatedAt = space.UpdatedAt
	return nil
}

func (f *fakeSpaceRepo) Delete(_ context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.spaces, id)
	return nil
}

func (f *fakeSpaceRepo) UpdateStateIf(_ context.Context, id uuid.UUID, from, to entity.SpaceState, reservedUntil *time.Time) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	space, ok := f.spaces[id]
	if !ok || space.State != from {
		return false, nil
	}
	space.State = to
	space.ReservedUntil = reservedUntil
	return true, nil
}

func (f *fakeSpaceRepo) UpdateState(_ context.Context, id uuid.UUID, to entity.SpaceState) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	space, ok := f.spaces[id]
	if !ok {
		return nil
	}
	space.State = to
	space.ReservedUntil = nil
	return nil
}

func (f *fakeSpaceRepo) ReleaseExpiredReservations(_ context.Context, now time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var released int64
	for _, space := range f.spaces {
		if space.State == entity.SpaceStateReserved && space.ReservedUntil != nil && !space.ReservedUntil.After(now) {
			space.State = entity.SpaceStateUnoccupied
			space.ReservedUntil = nil
			released++
		}
	}
	return released, nil
}

func (f *fakeSpaceRepo) CountBusyByLot(_ context.Context, lotID uuid.UUID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, space := range f.spaces {
		if space.LotID != lotID {
			continue
		}
		if space.State == entity.SpaceStateOccupied || space.State == entity.SpaceStateReserved {
			count++
		}
	}
	return count, nil
}

// state returns the current state of a space, for assertions.
func (f *fakeSpaceRepo) state(id uuid.UUID) entity.SpaceState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.spaces[id].State
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var users []*entity.User
	for _, user := range f.users {
		cp := *user
		users = append(users, &cp)
	}
	return users, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[uuid.UUID]*entity.Vehicle
	err      error
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[uuid.UUID]*entity.Vehicle)}
}

func (f *fakeVehicleRepo) Create(_ context.Context, vehicle *entity.Vehicle) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *vehicle
	f.vehicles[vehicle.ID] = &cp
	return nil
}

func (f *fakeVehicleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	vehicle, ok := f.vehicles[id]
	if !ok {
		return nil, nil
	}
	cp := *vehicle
	return &cp, nil
}

func (f *fakeVehicleRepo) FindByRegistration(_ context.Context, registration string) (*entity.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, vehicle := range f.vehicles {
		if vehicle.Registration == registration {
			cp := *vehicle
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeVehicleRepo) FindAll(_ context.Context) ([]*entity.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var vehicles []*entity.Vehicle
	for _, vehicle := range f.vehicles {
		cp := *vehicle
		vehicles = append(vehicles, &cp)
	}
	return vehicles, nil
}

func (f *fakeVehicleRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*entity.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var vehicles []*entity.Vehicle
	for _, vehicle := range f.vehicles {
		if vehicle.OwnerID != nil && *vehicle.OwnerID == ownerID {
			cp := *vehicle
			vehicles = append(vehicles, &cp)
		}
	}
	return vehicles, nil
}

func (f *fakeVehicleRepo) Update(_ context.Context, vehicle *entity.Vehicle) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *vehicle
	f.vehicles[vehicle.ID] = &cp
	return nil
}

type fakeOccupancyRepo struct {
	mu          sync.Mutex
	occupancies map[uuid.UUID]*entity.Occupancy
	err         error
}

func newFakeOccupancyRepo() *fakeOccupancyRepo {
	return &fakeOccupancyRepo{occupancies: make(map[uuid.UUID]*entity.Occupancy)}
}

func (f *fakeOccupancyRepo) Create(_ context.Context, occupancy *entity.Occupancy) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *occupancy
	f.occupancies[occupancy.ID] = &cp
	return nil
}

func (f *fakeOccupancyRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Occupancy, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	occupancy, ok := f.occupancies[id]
	if !ok {
		return nil, nil
	}
	cp := *occupancy
	return &cp, nil
}

func (f *fakeOccupancyRepo) FindAll(_ context.Context, filter repository.OccupancyFilter, limit, offset int) ([]*entity.Occupancy, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var occupancies []*entity.Occupancy
	for _, occupancy := range f.occupancies {
		if filter.Status != nil && occupancy.Status != *filter.Status {
			continue
		}
		if filter.SpaceID != nil && occupancy.SpaceID != *filter.SpaceID {
			continue
		}
		if filter.VehicleID != nil && (occupancy.VehicleID == nil || *occupancy.VehicleID != *filter.VehicleID) {
			continue
		}
		cp := *occupancy
		occupancies = append(occupancies, &cp)
	}
	return occupancies, nil
}

func (f *fakeOccupancyRepo) CountAll(ctx context.Context, filter repository.OccupancyFilter) (int64, error) {
	occupancies, err := f.FindAll(ctx, filter, 0, 0)
	if err != nil {
		return 0, err
	}
	return int64(len(occupancies)), nil
}

func (f *fakeOccupancyRepo) FindActive(ctx context.Context, spaceID, vehicleID *uuid.UUID) ([]*entity.Occupancy, error) {
	status := entity.OccupancyStatusActive
	return f.FindAll(ctx, repository.OccupancyFilter{Status: &status, SpaceID: spaceID, VehicleID: vehicleID}, 0, 0)
}

func (f *fakeOccupancyRepo) FindHistory(_ context.Context, filter repository.HistoryFilter) ([]*entity.Occupancy, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var occupancies []*entity.Occupancy
	for _, occupancy := range f.occupancies {
		if occupancy.Status != entity.OccupancyStatusCompleted {
			continue
		}
		if filter.VehicleID != nil && (occupancy.VehicleID == nil || *occupancy.VehicleID != *filter.VehicleID) {
			continue
		}
		if filter.StartDate != nil && occupancy.EntryTime.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && occupancy.EntryTime.After(*filter.EndDate) {
			continue
		}
		cp := *occupancy
		occupancies = append(occupancies, &cp)
	}
	return occupancies, nil
}

func (f *fakeOccupancyRepo) Update(_ context.Context, occupancy *entity.Occupancy) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *occupancy
	f.occupancies[occupancy.ID] = &cp
	return nil
}

func (f *fakeOccupancyRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.occupancies)
}

type fakeBillingRepo struct {
	mu       sync.Mutex
	billings map[uuid.UUID]*entity.Billing
	err      error
}

func newFakeBillingRepo() *fakeBillingRepo {
	return &fakeBillingRepo{billings: make(map[uuid.UUID]*entity.Billing)}
}

func (f *fakeBillingRepo) Create(_ context.Context, billing *entity.Billing) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *billing
	f.billings[billing.ID] = &cp
	return nil
}

func (f *fakeBillingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Billing, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	billing, ok := f.billings[id]
	if !ok {
		return nil, nil
	}
	cp := *billing
	return &cp, nil
}

func (f *fakeBillingRepo) FindByOccupancyID(_ context.Context, occupancyID uuid.UUID) (*entity.Billing, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, billing := range f.billings {
		if billing.OccupancyID == occupancyID {
			cp := *billing
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeBillingRepo) FindAll(_ context.Context, filter repository.BillingFilter, limit, offset int) ([]*entity.Billing, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var billings []*entity.Billing
	for _, billing := range f.billings {
		if filter.PaymentStatus != nil && billing.PaymentStatus != *filter.PaymentStatus {
			continue
		}
		if filter.OccupancyID != nil && billing.OccupancyID != *filter.OccupancyID {
			continue
		}
		cp := *billing
		billings = append(billings, &cp)
	}
	return billings, nil
}

func (f *fakeBillingRepo) CountAll(ctx context.Context, filter repository.BillingFilter) (int64, error) {
	billings, err := f.FindAll(ctx, filter, 0, 0)
	if err != nil {
		return 0, err
	}
	return int64(len(billings)), nil
}

func (f *fakeBillingRepo) FindPaid(_ context.Context, start, end *time.Time) ([]*entity.Billing, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var billings []*entity.Billing
	for _, billing := range f.billings {
		if billing.PaymentStatus != entity.PaymentStatusPaid || billing.PaymentTime == nil {
			continue
		}
		if start != nil && billing.PaymentTime.Before(*start) {
			continue
		}
		if end != nil && billing.PaymentTime.After(*end) {
			continue
		}
		cp := *billing
		billings = append(billings, &cp)
	}
	return billings, nil
}

func (f *fakeBillingRepo) SumPaidAmount(ctx context.Context, start, end *time.Time) (float64, error) {
	billings, err := f.FindPaid(ctx, start, end)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, billing := range billings {
		total += billing.Amount
	}
	return total, nil
}

func (f *fakeBillingRepo) Update(_ context.Context, billing *entity.Billing) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *billing
	f.billings[billing.ID] = &cp
	return nil
}

// testEnv bundles the fakes behind a Repository with a pass-through unit of
// work, plus config and services wired the way production does it.
type testEnv struct {
	repo      *repository.Repository
	lots      *fakeLotRepo
	spaces    *fakeSpaceRepo
	users     *fakeUserRepo
	vehicles  *fakeVehicleRepo
	occupancy *fakeOccupancyRepo
	billing   *fakeBillingRepo
	config    *utils.Config
	service   *usecase.Service
}

func newTestEnv() *testEnv {
	env := &testEnv{
		lots:      newFakeLotRepo(),
		spaces:    newFakeSpaceRepo(),
		users:     newFakeUserRepo(),
		vehicles:  newFakeVehicleRepo(),
		occupancy: newFakeOccupancyRepo(),
		billing:   newFakeBillingRepo(),
		config: &utils.Config{
			Parking: utils.ParkingConfig{
				ReservationMinutes: 30,
				SweepSchedule:      "@every 1m",
				MinBilledHours:     1,
			},
		},
	}

	env.repo = &repository.Repository{
		Lot:       env.lots,
		Space:     env.spaces,
		User:      env.users,
		Vehicle:   env.vehicles,
		Occupancy: env.occupancy,
		Billing:   env.billing,
	}

	log := zap.NewNop()
	uow := usecase.UnitOfWork(func(_ context.Context, fn func(repos *repository.Repository) error) error {
		return fn(env.repo)
	})
	billing := usecase.NewBillingService(env.repo, uow, log)
	env.service = &usecase.Service{
		Occupancy: usecase.NewOccupancyService(env.repo, uow, billing, env.config, log),
		Billing:   billing,
		Lot:       usecase.NewLotService(env.repo, log),
		Space:     usecase.NewSpaceService(env.repo, uow, log),
		Vehicle:   usecase.NewVehicleService(env.repo, log),
		User:      usecase.NewUserService(env.repo, log),
	}

	return env
}

func (env *testEnv) addLot(baseRate float64) *entity.Lot {
	now := time.Now().UTC()
	lot := &entity.Lot{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:     "Central",
		Location: "Downtown",
		Capacity: 50,
		BaseRate: baseRate,
	}
	env.lots.Create(context.Background(), lot)
	return lot
}

func (env *testEnv) addSpace(lotID uuid.UUID, state entity.SpaceState, extraCharge float64) *entity.Space {
	now := time.Now().UTC()
	space := &entity.Space{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		LotID:       lotID,
		SpaceType:   entity.SpaceTypeFourWheeler,
		State:       state,
		ExtraCharge: extraCharge,
	}
	env.spaces.Create(context.Background(), space)
	return space
}

func (env *testEnv) addVehicle(registration string, ownerID *uuid.UUID) *entity.Vehicle {
	now := time.Now().UTC()
	vehicle := &entity.Vehicle{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Registration: registration,
		OwnerID:      ownerID,
		VehicleType:  entity.VehicleTypeFourWheeler,
	}
	env.vehicles.Create(context.Background(), vehicle)
	return vehicle
}
