package utils

import (
	ua "github.com/mssola/user_agent"
)

// ClientInfo holds parsed information from a User-Agent string, attached to
// request logs so booking traffic can be broken down by client.
type ClientInfo struct {
	DeviceType string `json:"device_type"` // mobile or desktop
	OS         string `json:"os"`
	Browser    string `json:"browser"`
	IsBot      bool   `json:"is_bot"`
}

// ParseUserAgent parses a User-Agent string and extracts client information
func ParseUserAgent(userAgent string) ClientInfo {
	if userAgent == "" {
		return ClientInfo{
			DeviceType: "unknown",
			OS:         "Unknown",
			Browser:    "Unknown",
		}
	}

	parser := ua.New(userAgent)

	browser, _ := parser.Browser()
	if browser == "" {
		browser = "Unknown"
	}

	os := parser.OS()
	if os == "" {
		os = "Unknown"
	}

	deviceType := "desktop"
	if parser.Mobile() {
		deviceType = "mobile"
	}

	return ClientInfo{
		DeviceType: deviceType,
		OS:         os,
		Browser:    browser,
		IsBot:      parser.Bot(),
	}
}
