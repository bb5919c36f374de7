package xmpp

import (
	"errors"
	"testing"
)

func TestServerName(t *testing.T) {
	tests := []struct {
		jid, want string
	}{
		{"race@example.org", "example.org"},
		{"race@example.org/sketch", "example.org/sketch"},
		{"example.org", "example.org"},
	}
	for _, tt := range tests {
		if got := serverName(tt.jid); got != tt.want {
			t.Errorf("serverName(%q) = %q; want %q", tt.jid, got, tt.want)
		}
	}
}

func TestOptions(t *testing.T) {
	x := Xmpp{Config: Config{Jid: "race@example.org", Password: "secret", To: "crew@example.org"}}
	if got := x.options().Host; got != "example.org" {
		t.Errorf("options().Host = %q; want example.org", got)
	}

	x.Config.Host = "xmpp.example.org:5222"
	if got := x.options().Host; got != "xmpp.example.org:5222" {
		t.Errorf("options().Host = %q; want xmpp.example.org:5222", got)
	}
}

func TestSendWithoutConfig(t *testing.T) {
	x := Xmpp{Config: Config{Jid: "race@example.org"}}
	if err := x.Send("Red finished"); !errors.Is(err, ErrMissingConfig) {
		t.Errorf("Send() error = %v; want ErrMissingConfig", err)
	}
}
