package mail

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainOf(t *testing.T) {
	tests := []struct {
		email   string
		want    string
		wantErr bool
	}{
		{"user@example.com", "example.com", false},
		{"first@last@example.com", "example.com", false},
		{"no-at-sign", "", true},
		{"@example.com", "", true},
		{"user@", "", true},
	}

	for _, tt := range tests {
		got, err := domainOf(tt.email)
		if tt.wantErr {
			assert.Error(t, err, tt.email)
		} else {
			require.NoError(t, err, tt.email)
			assert.Equal(t, tt.want, got)
		}
	}
}

// fakeSMTPServer answers a single probe session on a local listener.
// rcptReply is the server's response to the RCPT command.
func fakeSMTPServer(t *testing.T, rcptReply string) net.Listener {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()

		w := bufio.NewWriter(conn)
		r := bufio.NewReader(conn)

		writeLine := func(s string) {
			_, _ = w.WriteString(s + "\r\n")
			_ = w.Flush()
		}

		writeLine("220 test.local ESMTP")
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "HELO"), strings.HasPrefix(cmd, "EHLO"):
				writeLine("250 test.local")
			case strings.HasPrefix(cmd, "MAIL"):
				writeLine("250 OK")
			case strings.HasPrefix(cmd, "RCPT"):
				writeLine(rcptReply)
			case strings.HasPrefix(cmd, "QUIT"):
				writeLine("221 bye")
				return
			default:
				writeLine("502 not implemented")
			}
		}
	}()

	return ln
}

// proberFor points a prober at the fake server, bypassing MX resolution.
func proberFor(t *testing.T, ln net.Listener, timeout time.Duration) func(email string) error {
	t.Helper()

	p := NewSMTPProber(timeout, nil)
	return func(email string) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		deadline, _ := ctx.Deadline()

		host, _, err := net.SplitHostPort(ln.Addr().String())
		require.NoError(t, err)

		// probeHost dials port 25; test against the listener directly.
		conn, err := net.Dial("tcp", ln.Addr().String())
		require.NoError(t, err)
		require.NoError(t, conn.SetDeadline(deadline))
		return p.probeConn(conn, host, email)
	}
}

func TestProbeAcceptsDefinitiveReply(t *testing.T) {
	ln := fakeSMTPServer(t, "250 recipient ok")
	defer func() { _ = ln.Close() }()

	verify := proberFor(t, ln, 2*time.Second)
	assert.NoError(t, verify("user@test.local"))
}

func TestProbeRejectsUnknownMailbox(t *testing.T) {
	ln := fakeSMTPServer(t, "550 no such user")
	defer func() { _ = ln.Close() }()

	verify := proberFor(t, ln, 2*time.Second)
	assert.Error(t, verify("nobody@test.local"))
}

func TestVerifyUnreachableHostFailsClosed(t *testing.T) {
	p := NewSMTPProber(200*time.Millisecond, nil)

	// Reserved TLD cannot resolve; the probe must fail, not hang.
	start := time.Now()
	err := p.Verify(context.Background(), "user@unreachable.invalid")
	assert.ErrorIs(t, err, ErrMailboxUnverified)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestVerifyMalformedAddress(t *testing.T) {
	p := NewSMTPProber(time.Second, nil)
	assert.ErrorIs(t, p.Verify(context.Background(), "not-an-address"), ErrMailboxUnverified)
}
