package demo

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"backend-erickshaw/internal/logger"
	"backend-erickshaw/internal/shared/geo"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidTransition = errors.New("invalid demo transition")
	ErrPoolNotFound      = errors.New("pool not found")
	ErrTripNotFound      = errors.New("trip not found")
	ErrInvalidProgress   = errors.New("progress must be within [0,1]")
	ErrInvalidPosition   = errors.New("position must be finite")
)

// Publisher receives change events; *stream.Hub satisfies it.
type Publisher interface {
	Broadcast(topic string, payload []byte)
}

// Store holds the demo collections. Writers are serialized and every
// lifecycle operation either applies in full or leaves the store untouched.
type Store struct {
	mu          sync.RWMutex
	currentUser *CurrentUser
	students    []Student
	drivers     []Driver
	pools       []Pool
	trips       []Trip
	step        Step
	seq         uint64

	// Changes are published strictly in seq order.
	pubMu     sync.Mutex
	pubCond   *sync.Cond
	published uint64

	pub Publisher
	log *logrus.Entry
}

func NewStore(pub Publisher) *Store {
	s := &Store{
		step: StepIdle,
		pub:  pub,
		log:  logger.For("demo"),
	}
	s.pubCond = sync.NewCond(&s.pubMu)
	return s
}

func (s *Store) SetCurrentUser(user *CurrentUser) {
	s.mu.Lock()
	if user != nil {
		u := *user
		user = &u
	}
	s.currentUser = user
	step, seq := s.step, s.reserve()
	s.mu.Unlock()

	s.publish(seq, Event{Type: EventUserChanged, Step: step, User: user})
}

func (s *Store) CurrentUser() *CurrentUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentUser == nil {
		return nil
	}
	u := *s.currentUser
	return &u
}

func (s *Store) Step() Step {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.step
}

// SeedDemo installs the fixture students and drivers and clears pools and trips.
func (s *Store) SeedDemo() {
	s.mu.Lock()
	s.students = seedStudents()
	s.drivers = seedDrivers()
	s.pools = nil
	s.trips = nil
	s.step = StepSeeded
	fields := logrus.Fields{"students": len(s.students), "drivers": len(s.drivers)}
	seq := s.reserve()
	s.mu.Unlock()

	s.log.WithFields(fields).Info("demo seeded")
	s.publish(seq, Event{Type: EventSeeded, Step: StepSeeded})
}

func (s *Store) CreatePools() error {
	s.mu.Lock()
	if err := s.require(StepSeeded); err != nil {
		s.mu.Unlock()
		return err
	}

	pools := poolPlan()
	memberOf := map[string]string{}
	for _, p := range pools {
		for _, id := range p.StudentIDs {
			memberOf[id] = p.ID
		}
	}
	for i := range s.students {
		if poolID, ok := memberOf[s.students[i].ID]; ok {
			s.students[i].PoolID = poolID
			s.students[i].Status = StudentPooled
		}
	}
	s.pools = pools
	s.step = StepPooled
	seq := s.reserve()
	s.mu.Unlock()

	s.log.WithField("pools", len(pools)).Info("pools created")
	s.publish(seq, Event{Type: EventPooled, Step: StepPooled})
	return nil
}

func (s *Store) AssignDrivers() error {
	s.mu.Lock()
	if err := s.require(StepPooled); err != nil {
		s.mu.Unlock()
		return err
	}

	assignedPool := map[string]string{}
	trips := make([]Trip, 0, len(s.pools))
	for i := range s.pools {
		p := &s.pools[i]
		p.DriverID = driverFor[p.ID]
		p.Status = PoolAssigned
		if p.DriverID == "" {
			continue
		}
		assignedPool[p.DriverID] = p.ID
		trips = append(trips, Trip{
			ID:       tripID(p.ID),
			PoolID:   p.ID,
			DriverID: p.DriverID,
			Route:    append([]geo.Point(nil), routeFor[p.ID]...),
			Status:   TripPending,
		})
	}
	for i := range s.drivers {
		if poolID, ok := assignedPool[s.drivers[i].ID]; ok {
			s.drivers[i].Status = DriverAssigned
			s.drivers[i].AssignedPoolID = poolID
		}
	}
	for i := range s.students {
		if p := s.poolByID(s.students[i].PoolID); p != nil && p.DriverID != "" {
			s.students[i].Status = StudentAssigned
		}
	}
	s.trips = trips
	s.step = StepAssigned
	seq := s.reserve()
	s.mu.Unlock()

	s.log.WithField("trips", len(trips)).Info("drivers assigned")
	s.publish(seq, Event{Type: EventAssigned, Step: StepAssigned})
	return nil
}

// VerifyOtp reports whether code matches the pool's OTP. Only pools awaiting
// boarding (assigned or already verified) can be verified; anything else,
// including an unknown pool, returns false without changing state.
func (s *Store) VerifyOtp(poolID, code string) bool {
	s.mu.Lock()
	p := s.poolByID(poolID)
	if p == nil || p.OTP != code || (p.Status != PoolAssigned && p.Status != PoolVerified) {
		s.mu.Unlock()
		s.log.WithField("pool_id", poolID).Warn("otp rejected")
		return false
	}

	p.OTPVerified = true
	p.Status = PoolVerified
	allVerified := true
	for _, other := range s.pools {
		if !other.OTPVerified {
			allVerified = false
			break
		}
	}
	if allVerified {
		s.step = StepVerified
	}
	step, seq := s.step, s.reserve()
	s.mu.Unlock()

	s.log.WithField("pool_id", poolID).Info("otp verified")
	events := []Event{{Type: EventPoolVerified, Step: step, PoolID: poolID}}
	if allVerified {
		events = append(events, Event{Type: EventVerified, Step: step})
	}
	s.publish(seq, events...)
	return true
}

func (s *Store) StartTrips() error {
	s.mu.Lock()
	if err := s.require(StepVerified); err != nil {
		s.mu.Unlock()
		return err
	}

	for i := range s.trips {
		t := &s.trips[i]
		t.Status = TripStarted
		if len(t.Route) > 0 {
			start := t.Route[0]
			t.CurrentPosition = &start
		}
	}
	for i := range s.pools {
		s.pools[i].Status = PoolStarted
	}
	for i := range s.drivers {
		s.drivers[i].Status = DriverEnroute
	}
	for i := range s.students {
		s.students[i].Status = StudentEnroute
	}
	s.step = StepMoving
	seq := s.reserve()
	s.mu.Unlock()

	s.log.Info("trips started")
	s.publish(seq, Event{Type: EventMoving, Step: StepMoving})
	return nil
}

// UpdateTripProgress moves one started trip. It does not check that position
// lies on the trip's route.
func (s *Store) UpdateTripProgress(tripID string, progress float64, position geo.Point) error {
	if !(progress >= 0 && progress <= 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidProgress, progress)
	}
	if !finite(position.Lat) || !finite(position.Lng) {
		return fmt.Errorf("%w: got %v,%v", ErrInvalidPosition, position.Lat, position.Lng)
	}

	s.mu.Lock()
	t := s.tripByID(tripID)
	if t == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrTripNotFound, tripID)
	}
	if t.Status != TripStarted {
		status := t.Status
		s.mu.Unlock()
		return fmt.Errorf("%w: trip %s is %s", ErrInvalidTransition, tripID, status)
	}
	t.Progress = progress
	t.CurrentPosition = &position
	step, seq := s.step, s.reserve()
	s.mu.Unlock()

	s.publish(seq, Event{Type: EventTripProgress, Step: step, TripID: tripID, Progress: &progress, Position: &position})
	return nil
}

func (s *Store) CompleteTrips() error {
	s.mu.Lock()
	if err := s.require(StepMoving); err != nil {
		s.mu.Unlock()
		return err
	}

	for i := range s.trips {
		s.trips[i].Status = TripCompleted
		s.trips[i].Progress = 1
	}
	for i := range s.pools {
		s.pools[i].Status = PoolCompleted
	}
	for i := range s.drivers {
		s.drivers[i].Status = DriverIdle
		s.drivers[i].AssignedPoolID = ""
	}
	for i := range s.students {
		s.students[i].Status = StudentCompleted
	}
	s.step = StepCompleted
	seq := s.reserve()
	s.mu.Unlock()

	s.log.Info("trips completed")
	s.publish(seq, Event{Type: EventCompleted, Step: StepCompleted})
	return nil
}

func (s *Store) ResetDemo() {
	s.mu.Lock()
	s.students = nil
	s.drivers = nil
	s.pools = nil
	s.trips = nil
	s.step = StepIdle
	seq := s.reserve()
	s.mu.Unlock()

	s.log.Info("demo reset")
	s.publish(seq, Event{Type: EventReset, Step: StepIdle})
}

// InitStudentOnlyDemo replaces everything with the single-pool fixture. It
// does not compose with the admin flow.
func (s *Store) InitStudentOnlyDemo() {
	students, drivers, pools, trips := studentOnlyFixture()

	s.mu.Lock()
	s.students = students
	s.drivers = drivers
	s.pools = pools
	s.trips = trips
	s.step = StepAssigned
	seq := s.reserve()
	s.mu.Unlock()

	s.log.Info("student-only demo initialised")
	s.publish(seq, Event{Type: EventStudentOnly, Step: StepAssigned})
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Step:     s.step,
		Hotspots: Hotspots(),
		Students: append([]Student{}, s.students...),
		Drivers:  append([]Driver{}, s.drivers...),
		Pools:    make([]Pool, 0, len(s.pools)),
		Trips:    make([]Trip, 0, len(s.trips)),
	}
	if s.currentUser != nil {
		u := *s.currentUser
		snap.CurrentUser = &u
	}
	for _, p := range s.pools {
		snap.Pools = append(snap.Pools, p.clone())
	}
	for _, t := range s.trips {
		snap.Trips = append(snap.Trips, t.clone())
	}
	return snap
}

func (s *Store) Pool(id string) (Pool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := s.poolByID(id); p != nil {
		return p.clone(), true
	}
	return Pool{}, false
}

func (s *Store) Trip(id string) (Trip, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t := s.tripByID(id); t != nil {
		return t.clone(), true
	}
	return Trip{}, false
}

func (s *Store) Student(id string) (Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.students {
		if st.ID == id {
			return st, true
		}
	}
	return Student{}, false
}

func (s *Store) Driver(id string) (Driver, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.drivers {
		if d.ID == id {
			return d, true
		}
	}
	return Driver{}, false
}

// Hotspots returns the campus reference points.
func Hotspots() []Hotspot {
	return append([]Hotspot(nil), hotspots...)
}

func HotspotByID(id string) (Hotspot, bool) {
	for _, h := range hotspots {
		if h.ID == id {
			return h, true
		}
	}
	return Hotspot{}, false
}

// reserve claims the next publish slot. s.mu must be held for writing.
func (s *Store) reserve() uint64 {
	s.seq++
	return s.seq
}

// publish emits the events of change seq after every earlier change has been
// published, so subscribers observe changes in the order they were applied.
// Every reserved seq must be published.
func (s *Store) publish(seq uint64, events ...Event) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	for s.published+1 != seq {
		s.pubCond.Wait()
	}
	for _, e := range events {
		e.Seq = seq
		s.emit(e)
	}
	s.published = seq
	s.pubCond.Broadcast()
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// require must be called with s.mu held.
func (s *Store) require(want Step) error {
	if s.step != want {
		return fmt.Errorf("%w: demo is %s, need %s", ErrInvalidTransition, s.step, want)
	}
	return nil
}

func (s *Store) poolByID(id string) *Pool {
	for i := range s.pools {
		if s.pools[i].ID == id {
			return &s.pools[i]
		}
	}
	return nil
}

func (s *Store) tripByID(id string) *Trip {
	for i := range s.trips {
		if s.trips[i].ID == id {
			return &s.trips[i]
		}
	}
	return nil
}
