package resumeapi

import (
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

const ProfilePath = "/profile/me"

// PlaceholderInitials stands in for the avatar glyph when no profile is
// available.
const PlaceholderInitials = "?"

// Profile is the signed-in user's identity as the backend reports it. The
// client only ever reads it.
type Profile struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Location string `json:"location"`
}

// GetMyProfile fetches the current user's profile. Any failure, transport or
// status, yields a nil profile without an error: profile absence is a valid
// state and the caller degrades to a placeholder identity.
func (c *Client) GetMyProfile() *Profile {
	url := fmt.Sprintf("%s%s", c.APIURL, ProfilePath)

	var profile Profile
	if err := c.getJSON(url, &profile); err != nil {
		c.logger.Debug("profile fetch failed, degrading to placeholder", zap.Error(err))
		return nil
	}

	return &profile
}

// Initials derives the avatar initials from the profile: first rune of each
// whitespace-separated name token, uppercased. A nil or nameless profile
// yields the placeholder.
func (p *Profile) Initials() string {
	if p == nil {
		return PlaceholderInitials
	}

	tokens := strings.Fields(p.FullName)
	if len(tokens) == 0 {
		return PlaceholderInitials
	}

	var b strings.Builder
	for _, token := range tokens {
		for _, r := range token {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}

	return b.String()
}

// DisplayName returns the profile's name or a generic fallback.
func (p *Profile) DisplayName() string {
	if p == nil || strings.TrimSpace(p.FullName) == "" {
		return "anonymous"
	}

	return p.FullName
}
