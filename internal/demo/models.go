package demo

import "backend-erickshaw/internal/shared/geo"

type Role string

const (
	RoleStudent Role = "student"
	RoleDriver  Role = "driver"
	RoleAdmin   Role = "admin"
)

type Step string

const (
	StepIdle      Step = "idle"
	StepSeeded    Step = "seeded"
	StepPooled    Step = "pooled"
	StepAssigned  Step = "assigned"
	StepVerified  Step = "verified"
	StepMoving    Step = "moving"
	StepCompleted Step = "completed"
)

type StudentStatus string

const (
	StudentWaiting   StudentStatus = "waiting"
	StudentPooled    StudentStatus = "pooled"
	StudentAssigned  StudentStatus = "assigned"
	StudentEnroute   StudentStatus = "enroute"
	StudentCompleted StudentStatus = "completed"
)

type DriverStatus string

const (
	DriverIdle     DriverStatus = "idle"
	DriverAssigned DriverStatus = "assigned"
	DriverEnroute  DriverStatus = "enroute"
)

type PoolStatus string

const (
	PoolPending   PoolStatus = "pending"
	PoolAssigned  PoolStatus = "assigned"
	PoolVerified  PoolStatus = "verified"
	PoolStarted   PoolStatus = "started"
	PoolCompleted PoolStatus = "completed"
)

type TripStatus string

const (
	TripPending   TripStatus = "pending"
	TripStarted   TripStatus = "started"
	TripCompleted TripStatus = "completed"
)

type CurrentUser struct {
	Role Role   `json:"role"`
	ID   string `json:"id"`
}

type Hotspot struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type Student struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Roll   string        `json:"roll"`
	Hostel string        `json:"hostel"`
	Pickup string        `json:"pickup"`
	Drop   string        `json:"drop"`
	PoolID string        `json:"pool_id,omitempty"`
	Status StudentStatus `json:"status"`
	Color  string        `json:"color,omitempty"`
}

type Driver struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Plate          string       `json:"plate"`
	Lat            float64      `json:"lat"`
	Lng            float64      `json:"lng"`
	Status         DriverStatus `json:"status"`
	AssignedPoolID string       `json:"assigned_pool_id,omitempty"`
}

type Pool struct {
	ID          string     `json:"id"`
	StudentIDs  []string   `json:"student_ids"`
	Pickup      string     `json:"pickup"`
	Drop        string     `json:"drop"`
	OTP         string     `json:"otp"`
	OTPVerified bool       `json:"otp_verified"`
	DriverID    string     `json:"driver_id,omitempty"`
	Status      PoolStatus `json:"status"`
}

type Trip struct {
	ID              string      `json:"id"`
	PoolID          string      `json:"pool_id"`
	DriverID        string      `json:"driver_id"`
	Route           []geo.Point `json:"route"`
	CurrentPosition *geo.Point  `json:"current_position,omitempty"`
	Progress        float64     `json:"progress"`
	Status          TripStatus  `json:"status"`
}

// Snapshot is a deep copy of the store, safe to hand to readers.
type Snapshot struct {
	CurrentUser *CurrentUser `json:"current_user"`
	Step        Step         `json:"demo_step"`
	Hotspots    []Hotspot    `json:"hotspots"`
	Students    []Student    `json:"students"`
	Drivers     []Driver     `json:"drivers"`
	Pools       []Pool       `json:"pools"`
	Trips       []Trip       `json:"trips"`
}

func (p Pool) clone() Pool {
	p.StudentIDs = append([]string(nil), p.StudentIDs...)
	return p
}

func (t Trip) clone() Trip {
	t.Route = append([]geo.Point(nil), t.Route...)
	if t.CurrentPosition != nil {
		pos := *t.CurrentPosition
		t.CurrentPosition = &pos
	}
	return t
}
