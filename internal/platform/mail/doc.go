// Package mail integrates with SMTP twice over: delivering activation
// emails through a configured relay, and probing whether a mailbox exists
// at its domain's mail exchanger before a registration is accepted.
package mail
