// Package password implements the password-strength policy collaborator:
// accept_password(pw, allow_weak_flag) -> bool.
package password

import "github.com/Picocrypt/zxcvbn-go"

// MinScore is the minimum zxcvbn score (0-4) required of a password unless
// the caller explicitly allows a weak one.
const MinScore = 2

// Policy accepts or rejects a candidate password based on its estimated
// crack resistance.
type Policy struct {
	MinScore int
}

// NewPolicy returns a Policy enforcing MinScore.
func NewPolicy() *Policy {
	return &Policy{MinScore: MinScore}
}

// Accept reports whether password meets the policy's minimum strength, or
// is accepted unconditionally because allowWeak is set.
func (p *Policy) Accept(password string, allowWeak bool) bool {
	if allowWeak {
		return true
	}
	if password == "" {
		return false
	}
	result := zxcvbn.PasswordStrength(password, nil)
	return result.Score >= p.MinScore
}
