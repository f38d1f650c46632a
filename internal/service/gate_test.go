package service

import (
	"context"
	"testing"
	"time"

	"campus-gate/pkg/gemini"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGate(recognizer Recognizer) (*GateService, *fakeEmployeeRepo) {
	employees := newFakeEmployeeRepo(activeEmployee("EMP-1", "Asha Verma"))
	attendance := NewAttendanceService(newFakeAttendanceRepo(), employees, "CAMPUS_GATE_01")
	return NewGateService(recognizer, employees, attendance, nil), employees
}

func burst() []string {
	return []string{"f1", "f2", "f3", "f4", "f5"}
}

func TestCooldownActive(t *testing.T) {
	base := time.Date(2026, 3, 16, 9, 0, 0, 0, time.Local)

	assert.False(t, CooldownActive(time.Time{}, base), "no prior success means no cooldown")
	assert.True(t, CooldownActive(base, base.Add(3*time.Second)))
	assert.True(t, CooldownActive(base, base.Add(CooldownWindow-time.Millisecond)))
	assert.False(t, CooldownActive(base, base.Add(CooldownWindow)))
}

func TestIdentifyDisabledWithoutRecognizer(t *testing.T) {
	gate, _ := newGate(nil)

	_, err := gate.Identify(context.Background(), "frame", time.Now())
	assert.ErrorIs(t, err, ErrRecognitionDisabled)
	assert.False(t, gate.Enabled())
}

func TestIdentifyMatch(t *testing.T) {
	recognizer := &fakeRecognizer{
		identify: &gemini.RecognitionResult{Matched: true, EmployeeID: "EMP-1", Confidence: 0.93},
	}
	gate, _ := newGate(recognizer)

	result, err := gate.Identify(context.Background(), "frame", time.Now())
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, "EMP-1", result.EmployeeID)
	assert.Equal(t, 1, recognizer.identifyCalls)
}

func TestIdentifyEmptyRosterSkipsRecognizer(t *testing.T) {
	recognizer := &fakeRecognizer{}
	employees := newFakeEmployeeRepo()
	attendance := NewAttendanceService(newFakeAttendanceRepo(), employees, "CAMPUS_GATE_01")
	gate := NewGateService(recognizer, employees, attendance, nil)

	result, err := gate.Identify(context.Background(), "frame", time.Now())
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Equal(t, 0, recognizer.identifyCalls)
}

func TestVerifyAndRecordAcceptsLiveBurst(t *testing.T) {
	recognizer := &fakeRecognizer{
		liveness: &gemini.LivenessResult{IsLive: true, Confidence: 0.9},
	}
	gate, _ := newGate(recognizer)
	now := time.Date(2026, 3, 16, 8, 30, 0, 0, time.Local)

	result, err := gate.VerifyAndRecord(context.Background(), "EMP-1", burst(), now)
	require.NoError(t, err)
	assert.Equal(t, KindArrived, result.Kind)
	assert.Equal(t, now, gate.LastSuccess(), "success must open the cooldown window")
}

func TestVerifyAndRecordRejectsLowConfidence(t *testing.T) {
	recognizer := &fakeRecognizer{
		liveness: &gemini.LivenessResult{IsLive: true, Confidence: 0.7},
	}
	gate, _ := newGate(recognizer)

	_, err := gate.VerifyAndRecord(context.Background(), "EMP-1", burst(), time.Now())
	assert.ErrorIs(t, err, ErrLivenessRejected, "confidence must exceed the threshold")
	assert.True(t, gate.LastSuccess().IsZero())
}

func TestVerifyAndRecordRejectsSpoof(t *testing.T) {
	recognizer := &fakeRecognizer{
		liveness: &gemini.LivenessResult{IsLive: false, Confidence: 0.95},
	}
	gate, _ := newGate(recognizer)

	_, err := gate.VerifyAndRecord(context.Background(), "EMP-1", burst(), time.Now())
	assert.ErrorIs(t, err, ErrLivenessRejected)
}

func TestVerifyAndRecordDiscardsCancelledBurst(t *testing.T) {
	recognizer := &fakeRecognizer{
		liveness: &gemini.LivenessResult{IsLive: true, Confidence: 0.9},
	}
	gate, _ := newGate(recognizer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gate.VerifyAndRecord(ctx, "EMP-1", burst(), time.Now())
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, gate.LastSuccess().IsZero(), "cancelled burst must not record attendance")
}

func TestIdentifyGatedByCooldown(t *testing.T) {
	recognizer := &fakeRecognizer{
		identify: &gemini.RecognitionResult{Matched: true, EmployeeID: "EMP-1", Confidence: 0.93},
		liveness: &gemini.LivenessResult{IsLive: true, Confidence: 0.9},
	}
	gate, _ := newGate(recognizer)
	now := time.Date(2026, 3, 16, 8, 30, 0, 0, time.Local)

	_, err := gate.VerifyAndRecord(context.Background(), "EMP-1", burst(), now)
	require.NoError(t, err)

	_, err = gate.Identify(context.Background(), "frame", now.Add(3*time.Second))
	assert.ErrorIs(t, err, ErrCooldownActive)
	assert.Equal(t, 0, recognizer.identifyCalls, "cooldown must prevent the recognizer call")

	_, err = gate.Identify(context.Background(), "frame", now.Add(CooldownWindow))
	assert.NoError(t, err)
}

func TestVerifyAndRecordAlreadyClosedKeepsCooldownShut(t *testing.T) {
	recognizer := &fakeRecognizer{
		liveness: &gemini.LivenessResult{IsLive: true, Confidence: 0.9},
	}
	gate, _ := newGate(recognizer)
	now := time.Date(2026, 3, 16, 8, 30, 0, 0, time.Local)

	_, err := gate.VerifyAndRecord(context.Background(), "EMP-1", burst(), now)
	require.NoError(t, err)
	_, err = gate.VerifyAndRecord(context.Background(), "EMP-1", burst(), now.Add(9*time.Second))
	require.NoError(t, err)

	result, err := gate.VerifyAndRecord(context.Background(), "EMP-1", burst(), now.Add(18*time.Second))
	require.NoError(t, err)
	assert.Equal(t, KindAlreadyClosed, result.Kind)
	assert.Equal(t, now.Add(9*time.Second), gate.LastSuccess(), "no-op scans must not extend the cooldown")
}
