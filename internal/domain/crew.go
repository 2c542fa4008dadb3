package domain

type CrewRole string

const (
	CrewRolePilot           CrewRole = "Pilot"
	CrewRoleCoPilot         CrewRole = "Co-Pilot"
	CrewRoleFlightAttendant CrewRole = "Flight Attendant"
	CrewRoleEngineer        CrewRole = "Engineer"
	CrewRoleCateringManager CrewRole = "Catering Manager"
	CrewRoleHostess         CrewRole = "Hostess"
)

func (r CrewRole) Valid() bool {
	switch r {
	case CrewRolePilot, CrewRoleCoPilot, CrewRoleFlightAttendant,
		CrewRoleEngineer, CrewRoleCateringManager, CrewRoleHostess:
		return true
	}
	return false
}

type CrewAssignment struct {
	ID          int64
	FlightID    int64
	Name        string
	Role        CrewRole
	ContactInfo string
	// FlightNumber is filled by listing queries that join flights.
	FlightNumber string
}
