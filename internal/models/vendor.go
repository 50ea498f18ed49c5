package models

// Vendor is the database model for a vendor row.
type Vendor struct {
	GUID     string
	Number   string
	Name     string
	Contact  string
	Phone    string
	Email    string
	Address  string
	Category string
	Status   string
	AuditFields
}
