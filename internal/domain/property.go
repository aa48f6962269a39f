package domain

import "errors"

var (
	ErrPropertyAddressEmpty    = errors.New("property address is required")
	ErrPropertyCityEmpty       = errors.New("property city is required")
	ErrPropertyStateInvalid    = errors.New("property state must be a 2-letter code")
	ErrPropertySquareFootage   = errors.New("square footage must be at least 100")
	ErrPropertyBedroomsInvalid = errors.New("bedrooms must be between 0 and 20")
	ErrPropertyTypeInvalid     = errors.New("invalid property type")
)

type PropertyType string

const (
	PropertySingleFamily PropertyType = "single-family"
	PropertyMultiFamily  PropertyType = "multi-family"
	PropertyCondo        PropertyType = "condo"
	PropertyTownhouse    PropertyType = "townhouse"
)

// PropertyInformation describes the physical property under analysis
type PropertyInformation struct {
	Address       string        `json:"address"`
	City          string        `json:"city"`
	State         string        `json:"state"`
	ZipCode       string        `json:"zipCode"`
	SquareFootage int           `json:"squareFootage"`
	Bedrooms      int           `json:"bedrooms"`
	Bathrooms     int           `json:"bathrooms"`
	YearBuilt     *int          `json:"yearBuilt,omitempty"`
	PropertyType  *PropertyType `json:"propertyType,omitempty"`
}

func (p *PropertyInformation) Validate() error {
	if p.Address == "" {
		return ErrPropertyAddressEmpty
	}
	if p.City == "" {
		return ErrPropertyCityEmpty
	}
	if len(p.State) != 2 {
		return ErrPropertyStateInvalid
	}
	if p.SquareFootage < 100 {
		return ErrPropertySquareFootage
	}
	if p.Bedrooms < 0 || p.Bedrooms > 20 {
		return ErrPropertyBedroomsInvalid
	}
	if p.PropertyType != nil {
		switch *p.PropertyType {
		case PropertySingleFamily, PropertyMultiFamily, PropertyCondo, PropertyTownhouse:
		default:
			return ErrPropertyTypeInvalid
		}
	}
	return nil
}
