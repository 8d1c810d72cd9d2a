package integration

import (
	"net/http"
	"testing"
)

func TestSignupLoginRefreshLifecycle(t *testing.T) {
	srv := newTestServer(t)

	t1 := signup(t, srv, "alice@example.com", "correct horse battery")

	// Duplicate signup must not leak or overwrite the account.
	resp, _ := doJSON(t, srv, http.MethodPost, "/auth/signup", "", map[string]string{
		"email":    "alice@example.com",
		"password": "another password",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate signup: expected 409, got %d", resp.StatusCode)
	}

	// A fresh login sweeps every previous session, so the signup-issued
	// refresh token is dead even though its signature is still valid.
	t2 := login(t, srv, "alice@example.com", "correct horse battery")
	resp, _ = doJSON(t, srv, http.MethodPost, "/auth/refresh", t1.RefreshToken, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("refresh with swept token: expected 401, got %d", resp.StatusCode)
	}

	// The live refresh token redeems exactly once.
	resp, envelope := doJSON(t, srv, http.MethodPost, "/auth/refresh", t2.RefreshToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first refresh: expected 200, got %d (%v)", resp.StatusCode, envelope)
	}
	t3 := tokensFrom(t, envelope)

	resp, _ = doJSON(t, srv, http.MethodPost, "/auth/refresh", t2.RefreshToken, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("replayed refresh: expected 401, got %d", resp.StatusCode)
	}

	// The rotated pair stays usable.
	resp, _ = doJSON(t, srv, http.MethodGet, "/users/me", t3.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me with rotated access token: expected 200, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, srv, http.MethodPost, "/auth/refresh", t3.RefreshToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refresh with rotated token: expected 200, got %d", resp.StatusCode)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	srv := newTestServer(t)
	signup(t, srv, "bob@example.com", "a decent password")

	cases := []struct {
		name  string
		email string
		pass  string
	}{
		{"unknown email", "nobody@example.com", "a decent password"},
		{"wrong password", "bob@example.com", "not the password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, envelope := doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]string{
				"email":    tc.email,
				"password": tc.pass,
			})
			if resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", resp.StatusCode)
			}
			errObj, _ := envelope["error"].(map[string]any)
			if errObj["message"] != "invalid credentials" {
				t.Fatalf("failure modes must share one message, got %v", errObj)
			}
		})
	}
}

func TestLogoutInvalidatesRefreshTokens(t *testing.T) {
	srv := newTestServer(t)
	pair := signup(t, srv, "carol@example.com", "s3cret passphrase")

	resp, _ := doJSON(t, srv, http.MethodPost, "/auth/logout", pair.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, srv, http.MethodPost, "/auth/refresh", pair.RefreshToken, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("refresh after logout: expected 401, got %d", resp.StatusCode)
	}

	// Access tokens are stateless and stay valid until they expire.
	resp, _ = doJSON(t, srv, http.MethodGet, "/users/me", pair.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me after logout: expected 200, got %d", resp.StatusCode)
	}
}

func TestProtectedRoutesRequireAccessToken(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/users/me", "/clients", "/missions"} {
		resp, _ := doJSON(t, srv, http.MethodGet, path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("GET %s without token: expected 401, got %d", path, resp.StatusCode)
		}
	}
}

func TestRefreshEndpointRejectsAccessToken(t *testing.T) {
	srv := newTestServer(t)
	pair := signup(t, srv, "dave@example.com", "pass phrase here")

	resp, _ := doJSON(t, srv, http.MethodPost, "/auth/refresh", pair.AccessToken, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("refresh with access token: expected 401, got %d", resp.StatusCode)
	}
}
