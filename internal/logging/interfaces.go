// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

type LoggerInterface interface {
	Errorf(string, ...interface{})
	Fatalf(string, ...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Debugf(string, ...interface{})

	Error(...interface{})
	Fatal(...interface{})
	Info(...interface{})
	Warn(...interface{})
	Debug(...interface{})

	Security() SecurityLoggerInterface
}

// SecurityLoggerInterface emits structured security events for audit pipelines.
type SecurityLoggerInterface interface {
	AuthnFailure(subject, reason string)
	AuthzFailure(subject, action string)
	SessionRevoked(subject, reason string)
	SystemStartup()
	SystemShutdown()
}
