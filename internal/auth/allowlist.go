// Package auth implements the moderator access gate: the email allowlist,
// single-use login tokens, and signed session tokens.
package auth

import "strings"

// Allowlist is the set of email addresses permitted to moderate reviews.
// Membership checks are case-insensitive.
type Allowlist struct {
	emails map[string]struct{}
}

// NewAllowlist builds an allowlist from the configured addresses. Entries are
// trimmed and lowercased; empty entries are dropped.
func NewAllowlist(emails []string) *Allowlist {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			set[e] = struct{}{}
		}
	}
	return &Allowlist{emails: set}
}

// Contains reports whether the email is on the allowlist.
func (a *Allowlist) Contains(email string) bool {
	_, ok := a.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Empty reports whether no addresses are configured. An empty allowlist
// denies everyone.
func (a *Allowlist) Empty() bool {
	return len(a.emails) == 0
}
