package models

// CanonicalStoreName is the single tenant this deployment serves. Settings
// whose StoreName drifts from this value are forcibly reset on startup.
const CanonicalStoreName = "RL IMPORTS"

// Settings is the singleton storefront configuration. The store holds at
// most one record, replaced wholesale on save.
type Settings struct {
	StoreName    string `json:"storeName"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	PrimaryColor string `json:"primaryColor"`
	LogoURL      string `json:"logoUrl"`
}

// DefaultSettings returns the canonical settings record used when nothing
// has been persisted yet, and whenever the single-tenant lock-in triggers.
func DefaultSettings() Settings {
	return Settings{
		StoreName:    CanonicalStoreName,
		Phone:        "11999999999",
		Address:      "Av. Europa, 888 - Jardins, São Paulo",
		PrimaryColor: "black",
		LogoURL:      "",
	}
}
