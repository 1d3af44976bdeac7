package password

import "testing"

func TestAcceptRejectsEmpty(t *testing.T) {
	p := NewPolicy()
	if p.Accept("", false) {
		t.Error("empty password should never be accepted")
	}
}

func TestAcceptAllowsWeakWhenFlagged(t *testing.T) {
	p := NewPolicy()
	if !p.Accept("a", true) {
		t.Error("allowWeak should bypass the strength check entirely")
	}
}

func TestAcceptRejectsWeakPassword(t *testing.T) {
	p := NewPolicy()
	if p.Accept("password", false) {
		t.Error("a common dictionary password should be rejected")
	}
}

func TestAcceptAllowsStrongPassword(t *testing.T) {
	p := NewPolicy()
	if !p.Accept("Correct_Horse1!Battery9#Staple", false) {
		t.Error("a long, high-entropy password should be accepted")
	}
}
