package property

import "strings"

// ===============================
// Property Type
// ===============================

type Type string

const (
	TypeHouse     Type = "House"
	TypeApartment Type = "Apartment"
	TypeLand      Type = "Land"
)

var Types = []Type{TypeHouse, TypeApartment, TypeLand}

func (t Type) Valid() bool {
	switch t {
	case TypeHouse, TypeApartment, TypeLand:
		return true
	}
	return false
}

// Prefix is the pid letter of the type: H, A or L.
func (t Type) Prefix() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t)[:1])
}

// ===============================
// Status (derived) and Action (user set)
// ===============================

type Status string

const (
	StatusPending Status = "Pending"
	StatusActive  Status = "Active"
)

type Action string

const (
	ActionOngoing Action = "Ongoing"
	ActionSold    Action = "Sold"
)

func (a Action) Valid() bool {
	return a == ActionOngoing || a == ActionSold
}
