package workout

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidProfile = errors.New("invalid profile")

// Profile is one of the two fixed users of the app.
type Profile string

const (
	ProfileSarah Profile = "sarah"
	ProfileDan   Profile = "dan"
)

// AllProfiles lists the profiles in a stable order.
var AllProfiles = []Profile{ProfileSarah, ProfileDan}

func (p Profile) String() string {
	return string(p)
}

func (p Profile) IsValid() bool {
	switch p {
	case ProfileSarah, ProfileDan:
		return true
	default:
		return false
	}
}

func ParseProfile(s string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidProfile, s)
	}
	return p, nil
}
