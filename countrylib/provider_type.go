package countrylib

import "fmt"

// ProviderType defines a slot of the provider in the resolution chain.
// There are exactly 2 of them: primary is asked first, secondary is a
// fallback.
type ProviderType uint8

const (
	ProviderPrimary ProviderType = iota
	ProviderSecondary

	providerTypeCount
)

// ProviderTypes lists all provider types in order of resolution.
var ProviderTypes = [providerTypeCount]ProviderType{
	ProviderPrimary,
	ProviderSecondary,
}

var providerTypeNames = [providerTypeCount]string{
	ProviderPrimary:   "primaryVendor",
	ProviderSecondary: "secondaryVendor",
}

// String returns an identifier which is used in configuration files
// and API: primaryVendor or secondaryVendor.
func (p ProviderType) String() string {
	if p < providerTypeCount {
		return providerTypeNames[p]
	}

	return fmt.Sprintf("ProviderType(%d)", p)
}

// MarshalText is to conform encoding.TextMarshaler interface.
func (p ProviderType) MarshalText() ([]byte, error) {
	if p >= providerTypeCount {
		return nil, fmt.Errorf("unknown provider type %d", p)
	}

	return []byte(p.String()), nil
}

// UnmarshalText is to conform encoding.TextUnmarshaler interface.
func (p *ProviderType) UnmarshalText(text []byte) error {
	value, err := ParseProviderType(string(text))
	if err != nil {
		return err
	}

	*p = value

	return nil
}

// ParseProviderType returns a provider type by its identifier.
func ParseProviderType(value string) (ProviderType, error) {
	for _, v := range ProviderTypes {
		if providerTypeNames[v] == value {
			return v, nil
		}
	}

	return 0, fmt.Errorf("unknown provider type %q", value)
}
