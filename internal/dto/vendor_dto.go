package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateVendorRequest struct {
	Name          string     `json:"name"`
	ContactNumber string     `json:"contact_number"`
	OwnerName     *string    `json:"owner_name,omitempty"`
	BusinessType  string     `json:"business_type,omitempty"`
	ShopTypeID    *uuid.UUID `json:"shop_type_id,omitempty"`
}

type UpdateVendorRequest struct {
	Name         *string    `json:"name,omitempty"`
	OwnerName    *string    `json:"owner_name,omitempty"`
	BusinessType *string    `json:"business_type,omitempty"`
	ShopTypeID   *uuid.UUID `json:"shop_type_id,omitempty"`
}

type CreateBranchRequest struct {
	Code                   string     `json:"code,omitempty"`
	CountryID              *uuid.UUID `json:"country_id,omitempty"`
	StateID                *uuid.UUID `json:"state_id,omitempty"`
	DistrictID             *uuid.UUID `json:"district_id,omitempty"`
	ShopLocality           string     `json:"shop_locality"`
	NearbyTown             *string    `json:"nearby_town,omitempty"`
	PinCode                string     `json:"pin_code"`
	KeyPersonName          *string    `json:"key_person_name,omitempty"`
	KeyPersonContactNumber *string    `json:"key_person_contact_number,omitempty"`
	LandPhone              *string    `json:"land_phone,omitempty"`
	Latitude               *float64   `json:"latitude,omitempty"`
	Longitude              *float64   `json:"longitude,omitempty"`
}

type UpdateBranchRequest struct {
	CountryID              *uuid.UUID `json:"country_id,omitempty"`
	StateID                *uuid.UUID `json:"state_id,omitempty"`
	DistrictID             *uuid.UUID `json:"district_id,omitempty"`
	ShopLocality           *string    `json:"shop_locality,omitempty"`
	NearbyTown             *string    `json:"nearby_town,omitempty"`
	PinCode                *string    `json:"pin_code,omitempty"`
	KeyPersonName          *string    `json:"key_person_name,omitempty"`
	KeyPersonContactNumber *string    `json:"key_person_contact_number,omitempty"`
	LandPhone              *string    `json:"land_phone,omitempty"`
	Latitude               *float64   `json:"latitude,omitempty"`
	Longitude              *float64   `json:"longitude,omitempty"`
}

type UpdateBranchProfileRequest struct {
	RegisteredAddress *string `json:"registered_address,omitempty"`
	Website           *string `json:"website,omitempty"`
	FacebookLink      *string `json:"facebook_link,omitempty"`
	InstagramLink     *string `json:"instagram_link,omitempty"`
	GoogleMapLink     *string `json:"google_map_link,omitempty"`
	YoutubeLink       *string `json:"youtube_link,omitempty"`
	WorkingHoursFrom  *string `json:"working_hours_from,omitempty"`
	WorkingHoursTo    *string `json:"working_hours_to,omitempty"`
	HasHomeDelivery   *bool   `json:"has_home_delivery,omitempty"`
	Logo              *string `json:"logo,omitempty"`
	StorePhoto        *string `json:"store_photo,omitempty"`
}

type CreateRoleRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	ACL         json.RawMessage `json:"acl,omitempty"`
}

type CreateInviteRequest struct {
	Email string `json:"email"`
}

type CreateAdminRequest struct {
	Name string `json:"name"`
}

type CreateDiscountRequest struct {
	DiscountType     string      `json:"discount_type"`
	ValueType        string      `json:"value_type"`
	Value            float64     `json:"value"`
	Category         *string     `json:"category,omitempty"`
	SpecialOfferText *string     `json:"special_offer_text,omitempty"`
	ExpiryDate       *time.Time  `json:"expiry_date,omitempty"`
	BranchIDs        []uuid.UUID `json:"branch_ids,omitempty"`
}
