package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/The-Zed-Team/kriyado-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrLocationNotFound  = errors.New("location not found")
	ErrDuplicateLocation = errors.New("a record with this name already exists")
)

// LocationService serves the read-mostly geographic reference data and the
// shop type catalogue.
type LocationService struct {
	db *gorm.DB
}

func NewLocationService(db *gorm.DB) *LocationService {
	return &LocationService{db: db}
}

func (s *LocationService) ListCountries(ctx context.Context) ([]models.Country, error) {
	var countries []models.Country
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&countries).Error; err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}

func (s *LocationService) ListStates(ctx context.Context, countryID uuid.UUID) ([]models.State, error) {
	var country models.Country
	if err := s.db.WithContext(ctx).First(&country, "id = ?", countryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("country lookup failed: %w", err)
	}
	var states []models.State
	if err := s.db.WithContext(ctx).Where("country_id = ?", countryID).
		Order("name ASC").Find(&states).Error; err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}
	return states, nil
}

func (s *LocationService) ListDistricts(ctx context.Context, stateID uuid.UUID) ([]models.District, error) {
	var state models.State
	if err := s.db.WithContext(ctx).First(&state, "id = ?", stateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("state lookup failed: %w", err)
	}
	var districts []models.District
	if err := s.db.WithContext(ctx).Where("state_id = ?", stateID).
		Order("name ASC").Find(&districts).Error; err != nil {
		return nil, fmt.Errorf("failed to list districts: %w", err)
	}
	return districts, nil
}

func (s *LocationService) CreateCountry(ctx context.Context, name string) (*models.Country, error) {
	country := models.Country{ID: uuid.New(), Name: name}
	if err := s.db.WithContext(ctx).Create(&country).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateLocation
		}
		return nil, fmt.Errorf("failed to create country: %w", err)
	}
	return &country, nil
}

func (s *LocationService) CreateState(ctx context.Context, countryID uuid.UUID, name string) (*models.State, error) {
	var country models.Country
	if err := s.db.WithContext(ctx).First(&country, "id = ?", countryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("country lookup failed: %w", err)
	}
	state := models.State{ID: uuid.New(), Name: name, CountryID: countryID}
	if err := s.db.WithContext(ctx).Create(&state).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateLocation
		}
		return nil, fmt.Errorf("failed to create state: %w", err)
	}
	return &state, nil
}

func (s *LocationService) CreateDistrict(ctx context.Context, stateID uuid.UUID, name string) (*models.District, error) {
	var state models.State
	if err := s.db.WithContext(ctx).First(&state, "id = ?", stateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("state lookup failed: %w", err)
	}
	district := models.District{ID: uuid.New(), Name: name, StateID: stateID}
	if err := s.db.WithContext(ctx).Create(&district).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateLocation
		}
		return nil, fmt.Errorf("failed to create district: %w", err)
	}
	return &district, nil
}

func (s *LocationService) CreateShopType(ctx context.Context, name string, description *string) (*models.ShopType, error) {
	shopType := models.ShopType{
		ID:          uuid.New(),
		Code:        models.SlugifyCode(name),
		Name:        name,
		Description: description,
	}
	if err := s.db.WithContext(ctx).Create(&shopType).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateLocation
		}
		return nil, fmt.Errorf("failed to create shop type: %w", err)
	}
	return &shopType, nil
}

func (s *LocationService) ListShopTypes(ctx context.Context) ([]models.ShopType, error) {
	var types []models.ShopType
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list shop types: %w", err)
	}
	return types, nil
}
