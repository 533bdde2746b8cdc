package demo

import "backend-erickshaw/internal/shared/geo"

// Fixture tables for the demo. Pool membership, driver pairing and routes are
// authored by hand; nothing here is derived from the student records.

var hotspots = []Hotspot{
	{ID: "agira-hall", Name: "Agira Hall", Lat: 30.351606, Lng: 76.364327},
	{ID: "prithvi-hall", Name: "Prithvi Hall", Lat: 30.351227, Lng: 76.360978},
	{ID: "neeram-hall", Name: "Neeram Hall", Lat: 30.351148, Lng: 76.359893},
	{ID: "e-block", Name: "E Block", Lat: 30.353463, Lng: 76.372207},
	{ID: "auditorium", Name: "Auditorium", Lat: 30.351968, Lng: 76.370679},
	{ID: "tan", Name: "TAN Block", Lat: 30.353546, Lng: 76.368576},
	{ID: "amritam-hall", Name: "AMRITAM HALL", Lat: 30.3545, Lng: 76.3640},
	{ID: "vyom-hall", Name: "VYOM HALL", Lat: 30.3560, Lng: 76.3650},
	{ID: "c-block", Name: "C Block", Lat: 30.3555, Lng: 76.3665},
	{ID: "venture-lab", Name: "Venture Lab", Lat: 30.3565, Lng: 76.3670},
	{ID: "pg-hostel", Name: "PG Hostel", Lat: 30.3553, Lng: 76.3719},
}

const (
	colorRed   = "#ef4444"
	colorBlue  = "#3b82f6"
	colorGreen = "#22c55e"
)

func seedStudents() []Student {
	return []Student{
		// Agira Hall: four ride to E Block, the fifth joins the blue pool.
		{ID: "s1", Name: "Ishaan Sharma", Roll: "102303795", Hostel: "AGIRA", Pickup: "agira-hall", Drop: "e-block", Status: StudentWaiting, Color: colorRed},
		{ID: "s2", Name: "Aarav Gupta", Roll: "102304001", Hostel: "AGIRA", Pickup: "agira-hall", Drop: "e-block", Status: StudentWaiting, Color: colorRed},
		{ID: "s3", Name: "Mehak Arora", Roll: "102304002", Hostel: "AGIRA", Pickup: "agira-hall", Drop: "e-block", Status: StudentWaiting, Color: colorRed},
		{ID: "s4", Name: "Abhishek Kansal", Roll: "102304003", Hostel: "AGIRA", Pickup: "agira-hall", Drop: "e-block", Status: StudentWaiting, Color: colorRed},
		{ID: "s5", Name: "Sunita Jogpal", Roll: "102304004", Hostel: "AGIRA", Pickup: "agira-hall", Drop: "auditorium", Status: StudentWaiting, Color: colorBlue},

		{ID: "s6", Name: "Riya Verma", Roll: "102304101", Hostel: "PRITHVI", Pickup: "prithvi-hall", Drop: "auditorium", Status: StudentWaiting, Color: colorBlue},
		{ID: "s7", Name: "Kabir Malhotra", Roll: "102304102", Hostel: "PRITHVI", Pickup: "prithvi-hall", Drop: "auditorium", Status: StudentWaiting, Color: colorBlue},
		{ID: "s8", Name: "Ananya Nanda", Roll: "102304103", Hostel: "PRITHVI", Pickup: "prithvi-hall", Drop: "auditorium", Status: StudentWaiting, Color: colorBlue},

		{ID: "s9", Name: "Arjun Saini", Roll: "102304201", Hostel: "NEERAM", Pickup: "neeram-hall", Drop: "tan", Status: StudentWaiting, Color: colorGreen},
		{ID: "s10", Name: "Priya Gill", Roll: "102304202", Hostel: "NEERAM", Pickup: "neeram-hall", Drop: "tan", Status: StudentWaiting, Color: colorGreen},
		{ID: "s11", Name: "Harsh Vardhan", Roll: "102304203", Hostel: "NEERAM", Pickup: "neeram-hall", Drop: "tan", Status: StudentWaiting, Color: colorGreen},
		{ID: "s12", Name: "Neha Bansal", Roll: "102304204", Hostel: "NEERAM", Pickup: "neeram-hall", Drop: "tan", Status: StudentWaiting, Color: colorGreen},
	}
}

func seedDrivers() []Driver {
	return []Driver{
		{ID: "d1", Name: "Sukhdev", Plate: "PB11-AC-4411", Lat: 30.350900, Lng: 76.362800, Status: DriverIdle},
		{ID: "d2", Name: "Rakesh", Plate: "PB11-ER-3321", Lat: 30.352200, Lng: 76.358800, Status: DriverIdle},
		{ID: "d3", Name: "Gopal", Plate: "PB11-BR-9910", Lat: 30.352300, Lng: 76.366800, Status: DriverIdle},
	}
}

func poolPlan() []Pool {
	return []Pool{
		{ID: "pool-red", StudentIDs: []string{"s1", "s2", "s3", "s4"}, Pickup: "agira-hall", Drop: "e-block", OTP: "111222", Status: PoolPending},
		// First pickup is Prithvi; the leftover Agira student is collected on the way.
		{ID: "pool-blue", StudentIDs: []string{"s6", "s7", "s8", "s5"}, Pickup: "prithvi-hall", Drop: "auditorium", OTP: "333444", Status: PoolPending},
		{ID: "pool-green", StudentIDs: []string{"s9", "s10", "s11", "s12"}, Pickup: "neeram-hall", Drop: "tan", OTP: "555666", Status: PoolPending},
	}
}

// driverFor pairs each seeded pool with a seeded driver.
var driverFor = map[string]string{
	"pool-red":   "d1",
	"pool-blue":  "d2",
	"pool-green": "d3",
}

// routeFor holds road-following waypoints from the driver's start through
// every pickup to the drop.
var routeFor = map[string][]geo.Point{
	"pool-red": {
		{Lat: 30.350900, Lng: 76.362800}, // d1 start
		{Lat: 30.351200, Lng: 76.363400},
		{Lat: 30.351400, Lng: 76.363900},
		{Lat: 30.351606, Lng: 76.364327}, // Agira Hall
		{Lat: 30.351900, Lng: 76.365500},
		{Lat: 30.352500, Lng: 76.366800},
		{Lat: 30.352900, Lng: 76.368500},
		{Lat: 30.353100, Lng: 76.370000},
		{Lat: 30.353300, Lng: 76.371000},
		{Lat: 30.353463, Lng: 76.372207}, // E Block
	},
	"pool-blue": {
		{Lat: 30.352200, Lng: 76.358800}, // d2 start
		{Lat: 30.351900, Lng: 76.359400},
		{Lat: 30.351600, Lng: 76.360100},
		{Lat: 30.351227, Lng: 76.360978}, // Prithvi Hall
		{Lat: 30.351350, Lng: 76.362300},
		{Lat: 30.351500, Lng: 76.363300},
		{Lat: 30.351606, Lng: 76.364327}, // Agira Hall
		{Lat: 30.351700, Lng: 76.365300},
		{Lat: 30.351850, Lng: 76.366800},
		{Lat: 30.351950, Lng: 76.368200},
		{Lat: 30.352200, Lng: 76.369600},
		{Lat: 30.351968, Lng: 76.370679}, // Auditorium
	},
	"pool-green": {
		{Lat: 30.352300, Lng: 76.366800}, // d3 start
		{Lat: 30.351900, Lng: 76.365400},
		{Lat: 30.351700, Lng: 76.363600},
		{Lat: 30.351500, Lng: 76.361900},
		{Lat: 30.351148, Lng: 76.359893}, // Neeram Hall
		{Lat: 30.351700, Lng: 76.361200},
		{Lat: 30.352000, Lng: 76.362800},
		{Lat: 30.352300, Lng: 76.364500},
		{Lat: 30.352700, Lng: 76.366000},
		{Lat: 30.353100, Lng: 76.367300},
		{Lat: 30.353546, Lng: 76.368576}, // TAN Block
	},
}

func tripID(poolID string) string {
	return "trip-" + poolID
}

// studentOnlyFixture is the single-pool presentation used by the student view.
func studentOnlyFixture() ([]Student, []Driver, []Pool, []Trip) {
	students := []Student{
		{ID: "s1", Name: "Ishaan Sharma", Roll: "102303795", Hostel: "AMRITAM", Pickup: "amritam-hall", Drop: "c-block", Status: StudentAssigned, Color: "#14F4C5"},
		{ID: "s2", Name: "Abhishek Kansal", Roll: "102309901", Hostel: "AMRITAM", Pickup: "amritam-hall", Drop: "c-block", Status: StudentAssigned, Color: "#22c55e"},
		{ID: "s3", Name: "Sunita Jogpal", Roll: "102307777", Hostel: "PG", Pickup: "pg-hostel", Drop: "c-block", Status: StudentAssigned, Color: "#f43f5e"},
		{ID: "s4", Name: "Mehak Arora", Roll: "102303801", Hostel: "PG", Pickup: "pg-hostel", Drop: "c-block", Status: StudentAssigned, Color: "#a78bfa"},
	}
	for i := range students {
		students[i].PoolID = "pool-1"
	}

	drivers := []Driver{
		{ID: "d1", Name: "Raj Kumar", Plate: "PB11-ER-4101", Lat: 30.3538, Lng: 76.3635, Status: DriverAssigned, AssignedPoolID: "pool-1"},
	}

	pools := []Pool{{
		ID:         "pool-1",
		StudentIDs: []string{"s1", "s2", "s3", "s4"},
		Pickup:     "amritam-hall",
		Drop:       "c-block",
		OTP:        "823614",
		DriverID:   "d1",
		Status:     PoolAssigned,
	}}

	trips := []Trip{{
		ID:       tripID("pool-1"),
		PoolID:   "pool-1",
		DriverID: "d1",
		Route: []geo.Point{
			{Lat: 30.3538, Lng: 76.3635},
			{Lat: 30.3542, Lng: 76.3638},
			{Lat: 30.3545, Lng: 76.3640}, // Amritam Hall
			{Lat: 30.3552, Lng: 76.3653},
			{Lat: 30.3559, Lng: 76.3672},
			{Lat: 30.3568, Lng: 76.3695},
			{Lat: 30.3553, Lng: 76.3719}, // PG Hostel
			{Lat: 30.3557, Lng: 76.3700},
			{Lat: 30.3556, Lng: 76.3685},
			{Lat: 30.3555, Lng: 76.3665}, // C Block
		},
		Status: TripPending,
	}}

	return students, drivers, pools, trips
}
