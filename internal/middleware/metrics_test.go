package middleware

import "testing"

func TestNormalizeEndpoint(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/api/v1/orgs/550e8400-e29b-41d4-a716-446655440000/members", "/api/v1/orgs/{id}/members"},
		{"/api/v1/donations/12345", "/api/v1/donations/{id}"},
		{"/public/candidates", "/public/candidates"},
		{"/healthCheck", "/healthCheck"},
		{"/api/v1/user/details", "/api/v1/user/details"},
	}

	for _, tc := range cases {
		if got := NormalizeEndpoint(tc.in); got != tc.want {
			t.Errorf("NormalizeEndpoint(%s): expected %s, got %s", tc.in, tc.want, got)
		}
	}
}
