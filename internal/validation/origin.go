package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// loopbackAliases name the local machine interchangeably.
var loopbackAliases = []string{"localhost", "127.0.0.1"}

// ValidateOrigin validates a WebSocket Origin header against the Host the
// request was sent to. A loopback alias on the same port is also accepted.
func ValidateOrigin(origin, host string) error {
	if origin == "" {
		return fmt.Errorf("origin header is required")
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin format: %w", err)
	}

	if originURL.Scheme != "http" && originURL.Scheme != "https" {
		return fmt.Errorf("invalid origin scheme '%s': only http and https are allowed", originURL.Scheme)
	}

	if strings.EqualFold(originURL.Host, host) {
		return nil
	}

	if port := originURL.Port(); port != "" && strings.HasSuffix(host, ":"+port) {
		for _, alias := range loopbackAliases {
			if originURL.Host == alias+":"+port {
				return nil
			}
		}
	}

	return fmt.Errorf("origin '%s' does not match host '%s'", origin, host)
}
