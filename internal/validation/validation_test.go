package validation

import (
	"testing"

	"giftdraw/internal/models"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "test@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.com",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "user+tag@example.com",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "testexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "test@",
			wantErr: true,
		},
		{
			name:    "missing local part",
			email:   "@example.com",
			wantErr: true,
		},
		{
			name:    "empty string",
			email:   "",
			wantErr: true,
		},
		{
			name:    "spaces in email",
			email:   "test @example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "Hannah", false},
		{"two characters", "Jo", false},
		{"one character", "J", true},
		{"empty", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCreateParty(t *testing.T) {
	valid := models.CreatePartyRequest{
		HostEmail: "host@example.com",
		Participants: []models.CreatePartyParticipant{
			{Name: "Hannah", Email: "host@example.com"},
			{Name: "Bea", Email: "bea@example.com"},
		},
	}
	if err := ValidateCreateParty(valid); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	dupe := models.CreatePartyRequest{
		HostEmail: "host@example.com",
		Participants: []models.CreatePartyParticipant{
			{Name: "Bea", Email: "bea@example.com"},
			{Name: "Beatrice", Email: " BEA@example.com "},
		},
	}
	if err := ValidateCreateParty(dupe); err == nil {
		t.Error("duplicate emails differing only in case and whitespace must be rejected")
	}

	badHost := models.CreatePartyRequest{HostEmail: "not-an-email"}
	if err := ValidateCreateParty(badHost); err == nil {
		t.Error("invalid host email must be rejected")
	}

	badEntry := models.CreatePartyRequest{
		HostEmail: "host@example.com",
		Participants: []models.CreatePartyParticipant{
			{Name: "", Email: "bea@example.com"},
		},
	}
	if err := ValidateCreateParty(badEntry); err == nil {
		t.Error("participant without a name must be rejected")
	}
}
