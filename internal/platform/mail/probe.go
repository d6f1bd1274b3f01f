package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"sort"
	"strings"
	"time"

	"github.com/userhub-io/userhub/internal/platform/logger"
)

// ErrMailboxUnverified is returned when the probe could not get a definitive
// "mailbox exists" answer. Network failures, timeouts, and servers that
// refuse verification all collapse into this error; registration treats any
// of them as "does not exist".
var ErrMailboxUnverified = errors.New("mailbox could not be verified")

// Prober checks whether a mailbox exists before registration proceeds.
type Prober interface {
	// Verify returns nil only when the address's mail exchanger definitively
	// accepted the recipient. Any other outcome is ErrMailboxUnverified.
	Verify(ctx context.Context, email string) error
}

// SMTPProber implements Prober with a transient SMTP session: resolve the
// domain's mail exchangers, open a connection, and issue a recipient check.
// The whole probe is bounded by a single deadline so a slow mail server
// cannot stall the registration endpoint.
//
// Live RCPT probing is inherently best-effort: many servers accept every
// recipient or reject bare verification outright, so a nil error means
// "definitely exists" while ErrMailboxUnverified only means "could not
// confirm". Deployments that find the false-negative rate too high disable
// the probe in config rather than here.
type SMTPProber struct {
	timeout  time.Duration
	resolver *net.Resolver
	logger   *slog.Logger

	// heloDomain is announced in the SMTP handshake.
	heloDomain string
}

// NewSMTPProber creates a prober with the given per-probe timeout.
// If logger is nil, a default logger will be used.
func NewSMTPProber(timeout time.Duration, logger *slog.Logger) *SMTPProber {
	if logger == nil {
		logger = slog.Default()
	}

	return &SMTPProber{
		timeout:    timeout,
		resolver:   net.DefaultResolver,
		logger:     logger.With(slog.String("component", "mailbox_prober")),
		heloDomain: "localhost",
	}
}

// Ensure SMTPProber implements Prober interface
var _ Prober = (*SMTPProber)(nil)

// Verify implements Prober.Verify
func (p *SMTPProber) Verify(ctx context.Context, email string) error {
	log := logger.FromContextOrDefault(ctx, p.logger)

	domain, err := domainOf(email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMailboxUnverified, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	deadline, _ := ctx.Deadline()

	hosts := p.exchangers(ctx, domain)
	var lastErr error
	for _, host := range hosts {
		if err := p.probeHost(ctx, deadline, host, email); err != nil {
			log.Debug("mailbox probe attempt failed",
				slog.String("host", host),
				slog.String("error", err.Error()))
			lastErr = err
			continue
		}

		log.Debug("mailbox verified", slog.String("host", host))
		return nil
	}

	if lastErr == nil {
		lastErr = errors.New("no mail exchanger reachable")
	}
	return fmt.Errorf("%w: %v", ErrMailboxUnverified, lastErr)
}

// exchangers returns the domain's MX hosts in preference order, falling
// back to the bare domain when no MX records resolve (RFC 5321 implicit MX).
func (p *SMTPProber) exchangers(ctx context.Context, domain string) []string {
	records, err := p.resolver.LookupMX(ctx, domain)
	if err != nil || len(records) == 0 {
		return []string{domain}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Pref < records[j].Pref
	})

	hosts := make([]string, 0, len(records))
	for _, mx := range records {
		hosts = append(hosts, strings.TrimSuffix(mx.Host, "."))
	}
	return hosts
}

// probeHost opens an SMTP session to one exchanger and issues MAIL/RCPT.
// The connection deadline bounds every command in the exchange.
func (p *SMTPProber) probeHost(ctx context.Context, deadline time.Time, host, email string) error {
	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, "25"))
	if err != nil {
		return fmt.Errorf("dial %s: %w", host, err)
	}

	if err := conn.SetDeadline(deadline); err != nil {
		_ = conn.Close()
		return fmt.Errorf("set deadline: %w", err)
	}

	return p.probeConn(conn, host, email)
}

// probeConn runs the SMTP exchange on an established connection.
// The client takes ownership of conn.
func (p *SMTPProber) probeConn(conn net.Conn, host, email string) error {
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer func() {
		// Quit also closes the connection; error is irrelevant on a probe.
		_ = client.Quit()
	}()

	if err := client.Hello(p.heloDomain); err != nil {
		return fmt.Errorf("helo: %w", err)
	}

	if err := client.Mail(""); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}

	// Only a 25x reply reaches here; anything else errors.
	if err := client.Rcpt(email); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}

	return nil
}

// domainOf extracts the domain from an email address.
func domainOf(email string) (string, error) {
	at := strings.LastIndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return "", fmt.Errorf("malformed address %q", email)
	}
	return email[at+1:], nil
}
