package broadcast

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var digitCheck = regexp.MustCompile(`^[0-9]+$`)

// ParseUserIDs splits a comma separated list of discord user ids.
func ParseUserIDs(raw string) ([]string, error) {
	ids := []string{}
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		if !digitCheck.MatchString(id) {
			return nil, errors.Errorf("invalid user id %q", id)
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, errors.New("no user ids given")
	}

	return ids, nil
}

// ParseVariables parses "key:value,key2:value2". Pairs without a colon are ignored.
func ParseVariables(raw string) map[string]string {
	vars := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		vars[key] = strings.TrimSpace(value)
	}

	return vars
}

// IsAllowed reports whether the user may send broadcasts.
// A nil list means administrators only, an empty list means nobody.
func IsAllowed(userID string, isAdmin bool, allowed *[]string) bool {
	if allowed == nil {
		return isAdmin
	}

	for _, id := range *allowed {
		if id == userID {
			return true
		}
	}

	return false
}
