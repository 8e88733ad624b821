package handlers

import (
	"testing"

	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/models"
)

func TestRoleForEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"student domain", "jane@vossie.net", models.RoleUser},
		{"staff domain", "prof@eduvos.com", models.RoleModerator},
		{"uppercase normalized", "Jane@VOSSIE.NET", models.RoleUser},
		{"surrounding whitespace", "  prof@eduvos.com  ", models.RoleModerator},
		{"outside domain", "jane@gmail.com", ""},
		{"staff domain as prefix", "jane@eduvos.com.evil.org", ""},
		{"domain in local part only", "eduvos.com@gmail.com", ""},
		{"empty email", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoleForEmail(tt.email, "vossie.net", "eduvos.com"); got != tt.want {
				t.Fatalf("RoleForEmail(%q) = %q, want %q", tt.email, got, tt.want)
			}
		})
	}
}
