package util

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPMailer_Send(t *testing.T) {
	mailer := NewSMTPMailer("smtp.example.com", "587", "user@example.com", "secret", "noreply@example.com")

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	mailer.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	require.NoError(t, mailer.Send("loja@example.com", "Cadastro aprovado", "Bem-vindo!"))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"loja@example.com"}, gotTo)
	msg := string(gotMsg)
	assert.True(t, strings.HasPrefix(msg, "From: noreply@example.com\r\n"))
	assert.Contains(t, msg, "Subject: Cadastro aprovado\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nBem-vindo!"))
}

func TestSMTPMailer_SendFailure(t *testing.T) {
	mailer := NewSMTPMailer("smtp.example.com", "587", "user", "secret", "")
	mailer.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("relay down")
	}

	assert.Error(t, mailer.Send("a@example.com", "s", "b"))
}

func TestSMTPMailer_DevModeSkipsSend(t *testing.T) {
	mailer := NewSMTPMailer("smtp.example.com", "587", "", "", "")
	mailer.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called without credentials")
		return nil
	}

	assert.NoError(t, mailer.Send("a@example.com", "s", "b"))
}

func TestSMTPMailer_RejectsHeaderLineBreaks(t *testing.T) {
	mailer := NewSMTPMailer("smtp.example.com", "587", "user", "secret", "")
	mailer.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called with a broken header")
		return nil
	}

	err := mailer.Send("a@example.com", "Oi\r\nBcc: x@example.com", "b")
	assert.ErrorIs(t, err, ErrInvalidHeader)

	err = mailer.Send("a@example.com\nFrom: chefe@example.com", "s", "b")
	assert.ErrorIs(t, err, ErrInvalidHeader)
}
