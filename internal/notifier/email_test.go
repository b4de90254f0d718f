package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/folio-hub/folio-server/internal/models"
)

func TestEmailConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  EmailConfig
		wantErr bool
		errMsg  string
	}{
		{
			name:    "empty config",
			config:  EmailConfig{},
			wantErr: true,
			errMsg:  "SMTP host is required",
		},
		{
			name: "missing port",
			config: EmailConfig{
				Host: "smtp.example.com",
			},
			wantErr: true,
			errMsg:  "SMTP port is required",
		},
		{
			name: "missing from",
			config: EmailConfig{
				Host: "smtp.example.com",
				Port: 587,
			},
			wantErr: true,
			errMsg:  "from address is required",
		},
		{
			name: "missing recipients",
			config: EmailConfig{
				Host: "smtp.example.com",
				Port: 587,
				From: "noreply@example.com",
			},
			wantErr: true,
			errMsg:  "at least one recipient is required",
		},
		{
			name: "valid config",
			config: EmailConfig{
				Host:       "smtp.example.com",
				Port:       587,
				From:       "noreply@example.com",
				Recipients: []string{"admin@example.com"},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
				} else if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBuildMessage(t *testing.T) {
	n, err := NewEmailNotifier(EmailConfig{
		Host:       "smtp.example.com",
		Port:       587,
		From:       "Folio <noreply@example.com>",
		Recipients: []string{"admin@example.com", "owner@example.com"},
	})
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	m := &models.ContactMessage{
		ID:        "msg-1",
		Name:      "Ada",
		Email:     "ada@example.com",
		Subject:   "Collaboration",
		Message:   "Would love to work together.",
		CreatedAt: time.Now(),
	}

	raw := string(n.buildMessage("New contact message: "+m.Subject, buildBody(m)))

	for _, want := range []string{
		"From: Folio <noreply@example.com>",
		"To: admin@example.com, owner@example.com",
		"Subject: New contact message: Collaboration",
		"ada@example.com",
		"Would love to work together.",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("message missing %q:\n%s", want, raw)
		}
	}
}

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"noreply@example.com", "noreply@example.com"},
		{"Folio <noreply@example.com>", "noreply@example.com"},
		{"Folio <noreply@example.com", "Folio <noreply@example.com"},
	}

	for _, tt := range tests {
		if got := extractEmail(tt.addr); got != tt.want {
			t.Errorf("extractEmail(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}
