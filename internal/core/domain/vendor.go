package domain

// VendorStatus values.
const (
	VendorActive   = "active"
	VendorInactive = "inactive"
)

// Vendor is a supplier referenced by purchase orders.
type Vendor struct {
	GUID     string `json:"guid"`
	Number   string `json:"number"` // Human-facing code, e.g. "SUP-001"
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Category string `json:"category"`
	Status   string `json:"status"`
	AuditFields
}
