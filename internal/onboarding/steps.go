package onboarding

import (
	"github.com/The-Zed-Team/kriyado-backend/internal/models"
)

// Accessor resolves one relation path from a vendor root. Implementations
// tolerate missing links at every hop and never panic.
type Accessor func(v *models.Vendor) Value

// FieldRule pairs a relation path with its accessor. Path uses the
// double-underscore relation notation and keys the per-field status map.
type FieldRule struct {
	Path     string
	Required bool
	Resolve  Accessor
}

// Step is a named group of field rules evaluated independently of other
// steps.
type Step struct {
	Name   string
	Fields []FieldRule
}

func fromBranch(f func(b *models.VendorBranch) Value) Accessor {
	return func(v *models.Vendor) Value {
		if v == nil || v.DefaultBranch == nil {
			return Absent()
		}
		return f(v.DefaultBranch)
	}
}

func fromProfile(f func(p *models.VendorBranchProfile) Value) Accessor {
	return fromBranch(func(b *models.VendorBranch) Value {
		if b.Profile == nil {
			return Absent()
		}
		return f(b.Profile)
	})
}

// DefaultSteps is the canonical onboarding taxonomy: a vendor is live once
// its default branch exists with full location and key-person details, and
// the branch profile answers the contact/store questions.
func DefaultSteps() []Step {
	return []Step{
		{
			Name: "default_branch",
			Fields: []FieldRule{
				{Path: "default_branch", Required: true, Resolve: func(v *models.Vendor) Value {
					if v == nil || v.DefaultBranch == nil {
						return Absent()
					}
					return Ref(v.DefaultBranch.ID)
				}},
				{Path: "default_branch__country", Required: true, Resolve: fromBranch(func(b *models.VendorBranch) Value { return UUIDPtr(b.CountryID) })},
				{Path: "default_branch__state", Required: true, Resolve: fromBranch(func(b *models.VendorBranch) Value { return UUIDPtr(b.StateID) })},
				{Path: "default_branch__district", Required: true, Resolve: fromBranch(func(b *models.VendorBranch) Value { return UUIDPtr(b.DistrictID) })},
				{Path: "default_branch__shop_locality", Required: true, Resolve: fromBranch(func(b *models.VendorBranch) Value { return String(b.ShopLocality) })},
				{Path: "default_branch__pin_code", Required: true, Resolve: fromBranch(func(b *models.VendorBranch) Value { return String(b.PinCode) })},
				{Path: "default_branch__key_person_name", Required: true, Resolve: fromBranch(func(b *models.VendorBranch) Value { return StringPtr(b.KeyPersonName) })},
				{Path: "default_branch__key_person_contact_number", Required: true, Resolve: fromBranch(func(b *models.VendorBranch) Value { return StringPtr(b.KeyPersonContactNumber) })},
				{Path: "default_branch__land_phone", Required: false, Resolve: fromBranch(func(b *models.VendorBranch) Value { return StringPtr(b.LandPhone) })},
			},
		},
		{
			Name: "branch_profile",
			Fields: []FieldRule{
				{Path: "default_branch__profile__registered_address", Required: true, Resolve: fromProfile(func(p *models.VendorBranchProfile) Value { return StringPtr(p.RegisteredAddress) })},
				{Path: "default_branch__profile__working_hours_from", Required: true, Resolve: fromProfile(func(p *models.VendorBranchProfile) Value { return StringPtr(p.WorkingHoursFrom) })},
				{Path: "default_branch__profile__working_hours_to", Required: true, Resolve: fromProfile(func(p *models.VendorBranchProfile) Value { return StringPtr(p.WorkingHoursTo) })},
				{Path: "default_branch__profile__has_home_delivery", Required: true, Resolve: fromProfile(func(p *models.VendorBranchProfile) Value { return BoolPtr(p.HasHomeDelivery) })},
				{Path: "default_branch__profile__website", Required: false, Resolve: fromProfile(func(p *models.VendorBranchProfile) Value { return StringPtr(p.Website) })},
				{Path: "default_branch__profile__store_photo", Required: false, Resolve: fromProfile(func(p *models.VendorBranchProfile) Value { return StringPtr(p.StorePhoto) })},
			},
		},
	}
}
