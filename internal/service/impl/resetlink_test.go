package impl

import (
	"strings"
	"testing"
	"time"
)

func TestResetLinkRoundTrip(t *testing.T) {
	s := testSigner()
	token, err := s.Sign("ama@example.org")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	email, err := s.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if email != "ama@example.org" {
		t.Errorf("subject = %q", email)
	}
}

func TestResetLinkRejectsTampering(t *testing.T) {
	s := testSigner()
	token, err := s.Sign("ama@example.org")
	if err != nil {
		t.Fatal(err)
	}

	cases := map[string]string{
		"garbage":       "not.a.token",
		"empty":         "",
		"flipped bytes": token[:len(token)-4] + "AAAA",
	}
	for name, bad := range cases {
		if _, err := s.Parse(bad); err == nil {
			t.Errorf("%s: tampered token accepted", name)
		}
	}

	// Tokens from a different secret never validate.
	other := NewResetLinkSigner([]byte("other-secret"), time.Hour, "church.example.org")
	foreign, err := other.Sign("ama@example.org")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Parse(foreign); err == nil {
		t.Error("token signed with foreign secret accepted")
	}
}

func TestResetLinkExpiry(t *testing.T) {
	s := NewResetLinkSigner([]byte("test-secret"), -time.Minute, "church.example.org")
	// Constructor clamps non-positive TTLs.
	if s.ttl <= 0 {
		t.Fatalf("ttl not clamped: %v", s.ttl)
	}

	expired := &ResetLinkSigner{secret: []byte("test-secret"), ttl: -time.Minute, domain: "church.example.org"}
	token, err := expired.Sign("ama@example.org")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := testSigner().Parse(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestResetLinkURL(t *testing.T) {
	s := testSigner()
	link := s.Link("abc+def")
	if !strings.HasPrefix(link, "http://church.example.org/password/reset/confirm/?token=") {
		t.Fatalf("unexpected link: %s", link)
	}
	if strings.Contains(link, "abc+def") {
		t.Error("token not query-escaped")
	}
}
