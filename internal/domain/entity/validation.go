package entity

import (
	"fmt"
	"net/url"
	"strings"
)

// maxURLLength defines the maximum allowed length for URLs.
const maxURLLength = 2048

// hostSchemes must carry a host to be absolute.
var hostSchemes = map[string]struct{}{
	"http": {}, "https": {}, "ws": {}, "wss": {}, "ftp": {},
}

// ParseAbsoluteURL parses rawURL and requires a scheme, mirroring what a browser
// URL constructor accepts for feed addresses. Web schemes also require a host;
// others such as mailto: may have none.
func ParseAbsoluteURL(rawURL string) (*url.URL, error) {
	if rawURL == "" {
		return nil, &ValidationError{Field: "url", Message: "URL is required"}
	}
	if len(rawURL) > maxURLLength {
		return nil, &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, &ValidationError{Field: "url", Message: "invalid URL"}
	}
	if parsed.Scheme == "" {
		return nil, &ValidationError{Field: "url", Message: "URL must be absolute"}
	}
	if _, ok := hostSchemes[strings.ToLower(parsed.Scheme)]; ok && parsed.Hostname() == "" {
		return nil, &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}
	return parsed, nil
}

// ValidateEndpointURL validates the article endpoint: absolute and http or https.
func ValidateEndpointURL(rawURL string) error {
	parsed, err := ParseAbsoluteURL(rawURL)
	if err != nil {
		return err
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}
	return nil
}

// HostLabel returns the host of u without port and with the first "www." removed.
// IPv6 hosts keep their brackets. A URL without a host yields "".
func HostLabel(u *url.URL) string {
	host := u.Hostname()
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	return strings.Replace(host, "www.", "", 1)
}
