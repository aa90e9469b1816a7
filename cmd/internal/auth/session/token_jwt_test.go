package session

import (
	"errors"
	"testing"
	"time"
)

func testConfig(realm Realm) Config {
	cfg := DefaultConfig(realm)
	cfg.AccessSecret = string(realm) + "-access-secret"
	cfg.RefreshSecret = string(realm) + "-refresh-secret"
	return cfg
}

func mustCodec(t *testing.T, realm Realm) TokenCodec {
	t.Helper()
	c, err := NewHMACCodec(testConfig(realm))
	if err != nil {
		t.Fatalf("NewHMACCodec: %v", err)
	}
	return c
}

func TestHMACCodec_IssueAndVerify(t *testing.T) {
	t.Parallel()

	codec := mustCodec(t, RealmHuman)
	now := time.Now().UTC()

	tok, exp, err := codec.Issue(ClassAccess, "123", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !exp.After(now) {
		t.Fatalf("expected exp after now")
	}

	id, err := codec.Verify(ClassAccess, tok, now.Add(time.Second))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id != "123" {
		t.Fatalf("principal mismatch: %q", id)
	}
}

func TestHMACCodec_Expired(t *testing.T) {
	t.Parallel()

	codec := mustCodec(t, RealmHuman)
	now := time.Now().UTC()

	tok, _, err := codec.Issue(ClassAccess, "123", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = codec.Verify(ClassAccess, tok, now.Add(16*time.Minute))
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACCodec_CrossClassFails(t *testing.T) {
	t.Parallel()

	codec := mustCodec(t, RealmHuman)
	now := time.Now().UTC()

	refresh, _, err := codec.Issue(ClassRefresh, "123", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := codec.Verify(ClassAccess, refresh, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token verified as access: %v", err)
	}
}

func TestHMACCodec_CrossRealmFails(t *testing.T) {
	t.Parallel()

	human := mustCodec(t, RealmHuman)
	ghost := mustCodec(t, RealmGhost)
	now := time.Now().UTC()

	tok, _, err := human.Issue(ClassAccess, "123", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := ghost.Verify(ClassAccess, tok, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("human token verified under ghost realm: %v", err)
	}
}

func TestHMACCodec_GarbageFails(t *testing.T) {
	t.Parallel()

	codec := mustCodec(t, RealmGhost)
	now := time.Now().UTC()

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := codec.Verify(ClassAccess, tok, now); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestNewHMACCodec_RejectsSharedSecrets(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig(RealmHuman)
	cfg.AccessSecret = "same"
	cfg.RefreshSecret = "same"

	if _, err := NewHMACCodec(cfg); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for shared secrets, got %v", err)
	}
}
