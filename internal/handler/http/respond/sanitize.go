package respond

import (
	"regexp"
)

var (
	// Applied before openaiKeyPattern, which would otherwise match the prefix.
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)

	// user:password@ inside a DSN or Redis URL.
	credentialPattern = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)

	// api_key=... in an upstream URL quoted by a transport error.
	apiKeyParamPattern = regexp.MustCompile(`(api_key=)[^&\s"]+`)
)

// SanitizeError returns err's message with API keys and credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = credentialPattern.ReplaceAllString(msg, "://$1:****@")
	msg = apiKeyParamPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
