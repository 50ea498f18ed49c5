package dto

import (
	"time"

	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
)

// CreateVendorRequest carries the payload for registering a vendor.
type CreateVendorRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Contact  string `json:"contact" binding:"omitempty,max=100"`
	Phone    string `json:"phone" binding:"omitempty,max=30"`
	Email    string `json:"email" binding:"omitempty,email"`
	Address  string `json:"address" binding:"omitempty,max=255"`
	Category string `json:"category" binding:"omitempty,max=50"`
}

// UpdateVendorRequest carries the mutable vendor fields. Nil pointers leave
// the stored value untouched.
type UpdateVendorRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Contact  *string `json:"contact" binding:"omitempty,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=30"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Address  *string `json:"address" binding:"omitempty,max=255"`
	Category *string `json:"category" binding:"omitempty,max=50"`
	Status   *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// VendorResponse is the wire representation of a vendor.
type VendorResponse struct {
	GUID          string    `json:"guid"`
	Number        string    `json:"number"`
	Name          string    `json:"name"`
	Contact       string    `json:"contact,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	Category      string    `json:"category,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// ToVendorResponse maps a domain vendor to its wire form.
func ToVendorResponse(v *domain.Vendor) VendorResponse {
	return VendorResponse{
		GUID:          v.GUID,
		Number:        v.Number,
		Name:          v.Name,
		Contact:       v.Contact,
		Phone:         v.Phone,
		Email:         v.Email,
		Address:       v.Address,
		Category:      v.Category,
		Status:        string(v.Status),
		CreatedAt:     v.CreatedAt,
		LastUpdatedAt: v.LastUpdatedAt,
	}
}

// ToVendorResponses maps a slice of domain vendors.
func ToVendorResponses(vendors []domain.Vendor) []VendorResponse {
	out := make([]VendorResponse, 0, len(vendors))
	for i := range vendors {
		out = append(out, ToVendorResponse(&vendors[i]))
	}
	return out
}
