package model

// Suggestion is the generated configuration bundle applied to a new profile
type Suggestion struct {
	Description    string         `json:"description"`
	ThemeColor     string         `json:"themeColor"`
	Tags           []string       `json:"tags"`
	PrivacyConfig  PrivacyConfig  `json:"privacyConfig"`
	SecurityNote   string         `json:"securityNote"`
	DeviceIdentity DeviceIdentity `json:"deviceIdentity"`
}

// CatalogApp is one entry of the static "installed apps" list
type CatalogApp struct {
	Name      string `json:"name"`
	PackageID string `json:"packageId"`
	Category  string `json:"category"`
}
