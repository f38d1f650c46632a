package service

import "errors"

var (
	// ErrUnknownEmployee means the gate resolved an ID that is not enrolled.
	ErrUnknownEmployee = errors.New("unknown employee")
	// ErrInactiveEmployee means the employee exists but may not pass the gate.
	ErrInactiveEmployee = errors.New("employee is inactive")
	// ErrNoActiveSession means a break was requested with no open day.
	ErrNoActiveSession = errors.New("no active session for today")
	// ErrSessionAlreadyClosed means the day was checked out already.
	ErrSessionAlreadyClosed = errors.New("session already closed")
	// ErrCooldownActive means the gate refused a scan inside the cooldown window.
	ErrCooldownActive = errors.New("gate cooldown active")
	// ErrRecognitionDisabled means no recognizer credential is configured.
	ErrRecognitionDisabled = errors.New("recognition service disabled")
	// ErrLivenessRejected means the anti-spoofing check failed.
	ErrLivenessRejected = errors.New("liveness check rejected")
)
