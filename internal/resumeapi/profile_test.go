package resumeapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetMyProfile(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != ProfilePath {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected authorization header: %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"full_name": "Jane Q Doe", "email": "jane@example.com"}`))
	}))
	defer server.Close()

	me := testClient(server.URL).GetMyProfile()
	if me == nil {
		t.Fatalf("expected a profile")
	}
	if me.FullName != "Jane Q Doe" {
		t.Fatalf("unexpected full name: %q", me.FullName)
	}
	if me.Email != "jane@example.com" {
		t.Fatalf("unexpected email: %q", me.Email)
	}
}

func TestGetMyProfileDegradesOnServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	if me := testClient(server.URL).GetMyProfile(); me != nil {
		t.Fatalf("expected nil profile on a non-2xx status, got %+v", me)
	}
}

func TestGetMyProfileDegradesOnNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	if me := testClient(server.URL).GetMyProfile(); me != nil {
		t.Fatalf("expected nil profile on a network failure, got %+v", me)
	}
}

func TestInitials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile *Profile
		expect  string
	}{
		{
			name:    "nil profile",
			profile: nil,
			expect:  PlaceholderInitials,
		},
		{
			name:    "empty name",
			profile: &Profile{FullName: "   "},
			expect:  PlaceholderInitials,
		},
		{
			name:    "two tokens",
			profile: &Profile{FullName: "ada lovelace"},
			expect:  "AL",
		},
		{
			name:    "three tokens with extra whitespace",
			profile: &Profile{FullName: "  Jane  Q   Doe "},
			expect:  "JQD",
		},
		{
			name:    "single token",
			profile: &Profile{FullName: "Plato"},
			expect:  "P",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.profile.Initials(); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	var missing *Profile
	if got := missing.DisplayName(); got != "anonymous" {
		t.Fatalf("expected anonymous fallback, got %q", got)
	}

	me := &Profile{FullName: "Jane Q Doe"}
	if got := me.DisplayName(); got != "Jane Q Doe" {
		t.Fatalf("unexpected display name: %q", got)
	}
}
