package auth

import (
	"net/url"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const recoveryType = "recovery"

// Recovery is the state carried in a password-reset link fragment.
type Recovery struct {
	Type        string `mapstructure:"type" json:"type"`
	AccessToken string `mapstructure:"access_token" json:"access_token"`
}

// ParseRecoveryFragment reads a URL fragment such as
// "#type=recovery&access_token=...". ok is true only in recovery mode.
func ParseRecoveryFragment(fragment string) (Recovery, bool) {
	values, err := url.ParseQuery(strings.TrimPrefix(fragment, "#"))
	if err != nil {
		return Recovery{}, false
	}

	flat := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			flat[k] = v[0]
		}
	}

	var r Recovery
	if err := mapstructure.Decode(flat, &r); err != nil {
		return Recovery{}, false
	}
	if r.Type != recoveryType || r.AccessToken == "" {
		return r, false
	}
	return r, true
}

// RecoveryLink builds the link mailed to a user who asked for a reset.
func RecoveryLink(base, token string) string {
	return base + "#type=" + recoveryType + "&access_token=" + url.QueryEscape(token)
}
