package dto

import "github.com/google/uuid"

type CreateCountryRequest struct {
	Name string `json:"name"`
}

type CreateStateRequest struct {
	Name      string    `json:"name"`
	CountryID uuid.UUID `json:"country_id"`
}

type CreateDistrictRequest struct {
	Name    string    `json:"name"`
	StateID uuid.UUID `json:"state_id"`
}

type CreateShopTypeRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}
