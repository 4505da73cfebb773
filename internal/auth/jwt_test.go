package auth

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	pair, err := Issue("student-1", RoleStudent, "tutordesk", "test-key", time.Minute, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if pair.SessionID == "" {
		t.Fatal("session id missing")
	}

	claims, err := Parse(pair.AccessToken, "test-key", "tutordesk")
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != "student-1" || claims.Role != RoleStudent {
		t.Fatalf("claims round-trip broken: %+v", claims)
	}
	if claims.SessionID != pair.SessionID {
		t.Fatal("access token lost its session id")
	}

	refresh, err := Parse(pair.RefreshToken, "test-key", "tutordesk")
	if err != nil {
		t.Fatal(err)
	}
	if refresh.SessionID != pair.SessionID {
		t.Fatal("refresh token carries a different session")
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	pair, err := Issue("s", RoleStudent, "tutordesk", "key-a", time.Minute, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Parse(pair.AccessToken, "key-b", "tutordesk"); err == nil {
		t.Fatal("token signed with another key must not parse")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	pair, err := Issue("s", RoleAdmin, "someone-else", "key", time.Minute, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Parse(pair.AccessToken, "key", "tutordesk"); err == nil {
		t.Fatal("issuer mismatch must fail")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	pair, err := Issue("s", RoleParent, "tutordesk", "key", -time.Minute, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Parse(pair.AccessToken, "key", "tutordesk"); err == nil {
		t.Fatal("expired token must fail")
	}
}
