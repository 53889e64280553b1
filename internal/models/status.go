package models

// Role defines the staff/tenant roles recognized by the system.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RolePM     Role = "PM" // property manager
	RoleGM     Role = "GM" // general manager
	RoleFS     Role = "FS" // financial staff
	RoleTenant Role = "TENANT"
)

// ValidRole reports whether r is one of the recognized roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RolePM, RoleGM, RoleFS, RoleTenant:
		return true
	}
	return false
}

// UserStatus defines account states.
type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
)

// UnitStatus defines occupancy states of a unit.
type UnitStatus string

const (
	UnitVacant           UnitStatus = "VACANT"
	UnitOccupied         UnitStatus = "OCCUPIED"
	UnitUnderMaintenance UnitStatus = "UNDER_MAINTENANCE"
)

// LeaseStatus defines lease lifecycle states. Transitions only move
// forward: PENDING -> ACTIVE -> ENDED. Leases are currently created
// directly as ACTIVE; PENDING is declared for draft agreements.
type LeaseStatus string

const (
	LeasePending LeaseStatus = "PENDING"
	LeaseActive  LeaseStatus = "ACTIVE"
	LeaseEnded   LeaseStatus = "ENDED"
)

// PaymentStatus defines verification states of a payment. Only VERIFIED
// payments count toward paid totals in financial summaries.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentVerified PaymentStatus = "VERIFIED"
	PaymentRejected PaymentStatus = "REJECTED"
)

// ValidPaymentStatus reports whether s is one of the recognized payment states.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentVerified, PaymentRejected:
		return true
	}
	return false
}

// MaintenanceStatus defines maintenance request states.
type MaintenanceStatus string

const (
	MaintenanceOpen       MaintenanceStatus = "open"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceResolved   MaintenanceStatus = "resolved"
	MaintenanceClosed     MaintenanceStatus = "closed"
)

// ValidMaintenanceStatus reports whether s is a recognized request state.
func ValidMaintenanceStatus(s MaintenanceStatus) bool {
	switch s {
	case MaintenanceOpen, MaintenanceInProgress, MaintenanceResolved, MaintenanceClosed:
		return true
	}
	return false
}
