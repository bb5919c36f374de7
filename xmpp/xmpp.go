// Package xmpp sends race notifications as XMPP chat messages.
package xmpp

import (
	"crypto/tls"
	"errors"
	"strings"

	"github.com/mattn/go-xmpp"
	log "github.com/sirupsen/logrus"
)

var ErrMissingConfig = errors.New("missing xmpp config")

type (
	Config struct {
		Host     string
		Jid      string
		Password string
		To       string
	}

	Xmpp struct {
		Config Config
	}
)

// Configured reports whether there is enough config to send messages.
func (c Config) Configured() bool {
	return c.Jid != "" && c.Password != "" && c.To != ""
}

func serverName(jid string) string {
	if i := strings.LastIndex(jid, "@"); i >= 0 {
		return jid[i+1:]
	}
	return jid
}

func (x Xmpp) options() xmpp.Options {
	host := x.Config.Host
	if host == "" {
		host = serverName(x.Config.Jid)
	}

	return xmpp.Options{
		Host:          host,
		User:          x.Config.Jid,
		Password:      x.Config.Password,
		NoTLS:         true,
		StartTLS:      true,
		Debug:         false,
		Session:       false,
		Status:        "xa",
		StatusMessage: "Racing",
	}
}

func (x Xmpp) Send(message string) error {
	if !x.Config.Configured() {
		log.Warn("Missing xmpp config")
		return ErrMissingConfig
	}

	xmpp.DefaultConfig = tls.Config{
		InsecureSkipVerify: true,
	}

	options := x.options()
	log.WithField("host", options.Host).Debug("Create xmpp client")
	talk, err := options.NewClient()
	if err != nil {
		log.WithError(err).Error("Error creating xmpp client")
		return err
	}
	defer talk.Close()

	log.WithField("to", x.Config.To).Debug("Send xmpp message")
	_, err = talk.Send(xmpp.Chat{Remote: x.Config.To, Type: "chat", Text: message})
	return err
}
