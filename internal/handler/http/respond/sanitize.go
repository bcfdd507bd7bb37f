package respond

import (
	"regexp"
)

var (
	// userinfoPattern matches credentials embedded in URLs.
	userinfoPattern = regexp.MustCompile(`://([^:/@\s]+):([^@/\s]+)@`)

	// secretParamPattern matches secret-looking query parameters.
	secretParamPattern = regexp.MustCompile(`(?i)([?&](?:token|key|api_key|apikey|secret|signature|sig)=)[^&\s"]+`)

	// bearerPattern matches bearer tokens.
	bearerPattern = regexp.MustCompile(`(?i)(bearer\s+)[a-z0-9\-._~+/]+=*`)
)

// SanitizeError returns err's message with URL credentials, secret query
// parameters and bearer tokens masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = userinfoPattern.ReplaceAllString(msg, "://$1:****@")
	msg = secretParamPattern.ReplaceAllString(msg, "$1****")
	msg = bearerPattern.ReplaceAllString(msg, "$1****")
	return msg
}
