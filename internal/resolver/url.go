package resolver

import (
	"regexp"
	"strings"
)

var (
	fullURLRe  = regexp.MustCompile(`^https?://(?:www\.)?tiktok\.com/@[\w.-]+/video/(\d+)`)
	shortURLRe = regexp.MustCompile(`^https?://(?:www\.)?tiktok\.com/t/(\w+)`)
	vmURLRe    = regexp.MustCompile(`^https?://vm\.tiktok\.com/(\w+)`)
	bareIDRe   = regexp.MustCompile(`^\d{19}$`)

	videoIDRe  = regexp.MustCompile(`/video/(\d+)`)
	usernameRe = regexp.MustCompile(`@([\w.-]+)/`)
)

// CanonicalURL normalizes a raw TikTok URL to the form used as the
// resolution key. Recognized shapes: the full @user/video/<id> form
// (tracking query parameters stripped), the tiktok.com/t/<token> short
// form, the vm.tiktok.com/<token> short-host form, and a bare 19-digit
// video id, which is expanded with an "unknown" author placeholder.
func CanonicalURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)

	if fullURLRe.MatchString(s) {
		return strings.SplitN(s, "?", 2)[0], nil
	}
	if shortURLRe.MatchString(s) || vmURLRe.MatchString(s) {
		return s, nil
	}
	if bareIDRe.MatchString(s) {
		return "https://www.tiktok.com/@unknown/video/" + s, nil
	}

	return "", ErrInvalidURL
}

// IsValidURL is the pre-submission validation predicate.
func IsValidURL(raw string) bool {
	_, err := CanonicalURL(raw)
	return err == nil
}

// videoIDFrom extracts the numeric video id from a canonical URL, or ""
// for short forms that don't carry one.
func videoIDFrom(canonicalURL string) string {
	if m := videoIDRe.FindStringSubmatch(canonicalURL); m != nil {
		return m[1]
	}
	return ""
}

// usernameFrom extracts the author fragment from a canonical URL, or ""
// when absent.
func usernameFrom(canonicalURL string) string {
	if m := usernameRe.FindStringSubmatch(canonicalURL); m != nil {
		return m[1]
	}
	return ""
}
