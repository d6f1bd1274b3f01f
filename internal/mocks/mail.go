package mocks

import "context"

// MockMailer implements mail.Mailer for testing
type MockMailer struct {
	// SendActivationEmailFn allows test cases to mock delivery behavior
	SendActivationEmailFn func(ctx context.Context, toEmail, username, token string) error

	// Call recording for the default implementation
	SentTo     []string
	SentTokens []string
	Err        error
}

// SendActivationEmail implements the mail.Mailer interface
func (m *MockMailer) SendActivationEmail(ctx context.Context, toEmail, username, token string) error {
	if m.SendActivationEmailFn != nil {
		return m.SendActivationEmailFn(ctx, toEmail, username, token)
	}
	if m.Err != nil {
		return m.Err
	}
	m.SentTo = append(m.SentTo, toEmail)
	m.SentTokens = append(m.SentTokens, token)
	return nil
}

// MockProber implements mail.Prober for testing
type MockProber struct {
	// VerifyFn allows test cases to mock probe behavior
	VerifyFn func(ctx context.Context, email string) error

	// Call recording for the default implementation
	Verified []string
	Err      error
}

// Verify implements the mail.Prober interface
func (m *MockProber) Verify(ctx context.Context, email string) error {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, email)
	}
	if m.Err != nil {
		return m.Err
	}
	m.Verified = append(m.Verified, email)
	return nil
}
