package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"campus-gate/internal/models"
	"campus-gate/internal/repository"
	"campus-gate/pkg/gemini"
	"campus-gate/pkg/notify"

	"github.com/sirupsen/logrus"
)

const (
	// CooldownWindow gates re-identification after a successful scan so
	// rapid repeated frames cannot toggle an arrival into a departure.
	CooldownWindow = 8 * time.Second

	// LivenessThreshold is the minimum confidence for an accepted burst.
	LivenessThreshold = 0.7

	// LivenessFrameCount is the expected burst length.
	LivenessFrameCount = 5
)

// Recognizer is the pluggable recognition gateway contract.
type Recognizer interface {
	GenerateVisualSignature(ctx context.Context, images []string) (string, error)
	IdentifyFace(ctx context.Context, frame string, roster []gemini.RosterEntry) (*gemini.RecognitionResult, error)
	VerifyLiveness(ctx context.Context, frames []string) (*gemini.LivenessResult, error)
}

// CooldownActive reports whether a scan at now falls inside the window
// opened by the last successful identification.
func CooldownActive(lastSuccess, now time.Time) bool {
	if lastSuccess.IsZero() {
		return false
	}
	return now.Sub(lastSuccess) < CooldownWindow
}

// GateService orchestrates the scan flow: identify a frame, verify liveness
// over a burst, then hand the resolved identity to the attendance engine.
// A nil recognizer means the credential was absent; the gate then fails
// closed instead of crashing.
type GateService struct {
	recognizer   Recognizer
	employeeRepo repository.EmployeeRepository
	attendance   *AttendanceService
	notifier     *notify.TelegramNotifier
	logger       *logrus.Logger

	mu          sync.Mutex
	lastSuccess time.Time
}

func NewGateService(
	recognizer Recognizer,
	employeeRepo repository.EmployeeRepository,
	attendance *AttendanceService,
	notifier *notify.TelegramNotifier,
) *GateService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if recognizer == nil {
		logger.Warn("No recognizer configured, gate runs in offline mode")
	}

	return &GateService{
		recognizer:   recognizer,
		employeeRepo: employeeRepo,
		attendance:   attendance,
		notifier:     notifier,
		logger:       logger,
	}
}

// Enabled reports whether the recognition gateway is available.
func (s *GateService) Enabled() bool {
	return s.recognizer != nil
}

// LastSuccess returns the timestamp of the last accepted identification.
func (s *GateService) LastSuccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSuccess
}

func (s *GateService) markSuccess(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSuccess = now
}

// Identify runs one frame against the active roster. A non-match is a
// neutral outcome, not an error.
func (s *GateService) Identify(ctx context.Context, frame string, now time.Time) (*gemini.RecognitionResult, error) {
	if s.recognizer == nil {
		return nil, ErrRecognitionDisabled
	}
	if CooldownActive(s.LastSuccess(), now) {
		s.logger.Debug("Scan ignored, cooldown active")
		return nil, ErrCooldownActive
	}

	employees, err := s.employeeRepo.GetActive()
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return &gemini.RecognitionResult{Matched: false, Confidence: 0}, nil
	}

	roster := make([]gemini.RosterEntry, 0, len(employees))
	for _, e := range employees {
		roster = append(roster, gemini.RosterEntry{
			ID:              e.ID,
			Name:            e.Name,
			VisualSignature: e.VisualSignature,
		})
	}

	result, err := s.recognizer.IdentifyFace(ctx, frame, roster)
	if err != nil {
		s.logger.WithError(err).Error("Identification call failed")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"matched":     result.Matched,
		"employee_id": result.EmployeeID,
		"confidence":  result.Confidence,
	}).Info("Frame identified")

	return result, nil
}

// VerifyAndRecord runs the liveness burst for a previously identified
// employee and, on acceptance, applies the attendance toggle. A cancelled
// context aborts before any decision; partial bursts are never used.
func (s *GateService) VerifyAndRecord(ctx context.Context, employeeID string, frames []string, now time.Time) (*ArrivalResult, error) {
	if s.recognizer == nil {
		return nil, ErrRecognitionDisabled
	}

	liveness, err := s.recognizer.VerifyLiveness(ctx, frames)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		s.logger.Debug("Gate session torn down mid-burst, discarding result")
		return nil, err
	}

	if !liveness.IsLive || liveness.Confidence <= LivenessThreshold {
		s.logger.WithFields(logrus.Fields{
			"employee_id": employeeID,
			"is_live":     liveness.IsLive,
			"confidence":  liveness.Confidence,
		}).Warn("Liveness rejected")
		s.notifier.Notify(fmt.Sprintf("⚠️ Liveness check rejected at the gate for employee %s", employeeID))
		return nil, ErrLivenessRejected
	}

	result, err := s.attendance.ResolveArrival(employeeID, now)
	if err != nil {
		return nil, err
	}

	if result.Kind != KindAlreadyClosed {
		s.markSuccess(now)
	}

	if result.Kind == KindArrived && result.Record.Status == models.StatusLate {
		s.notifier.Notify(fmt.Sprintf("🕘 Late arrival: %s at %s", result.Record.EmployeeName, now.Format("15:04")))
	}

	return result, nil
}
