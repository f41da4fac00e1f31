package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Discount value and kind enums.
const (
	DiscountValueFlat       = "Flat"
	DiscountValuePercentage = "Percentage"

	DiscountTypeTotalBill     = "Total Bill"
	DiscountTypeCategoryBased = "Category Based"
	DiscountTypeSpecialOffer  = "Special Offer"
)

// Discount is a vendor-owned offer, optionally limited to specific branches.
type Discount struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	VendorID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"vendor_id"`
	DiscountType     string         `gorm:"size:20;not null" json:"discount_type"`
	ValueType        string         `gorm:"size:10;not null" json:"value_type"`
	Value            float64        `gorm:"not null" json:"value"`
	Category         *string        `gorm:"size:100" json:"category,omitempty"`
	SpecialOfferText *string        `json:"special_offer_text,omitempty"`
	ExpiryDate       *time.Time     `json:"expiry_date,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	Vendor   *Vendor        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Branches []VendorBranch `gorm:"many2many:discount_branches" json:"branches,omitempty"`
}
