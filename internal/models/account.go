package models

// AccountType mirrors domain.AccountType for storage.
type AccountType string

// Account is the database model for an account row.
type Account struct {
	GUID        string
	Name        string
	AccountType AccountType
	ParentGUID  string
	Placeholder bool
	Code        string
	AuditFields
}
