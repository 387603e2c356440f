package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
)

// MatchResult is the structured decision returned by the recognizer.
type MatchResult struct {
	Success    bool    `json:"success"`
	StudentID  string  `json:"student_id"`
	Confidence float64 `json:"confidence"`
}

// Recognizer is the narrow interface over the external facial-recognition
// process. Its internals are out of scope here; it takes an image and an
// optional expected-student hint and returns a match decision.
type Recognizer interface {
	Recognize(imagePath, expectedStudentID string) (*MatchResult, error)
}

// ScriptRecognizer shells out to the configured recognition script and
// decodes its JSON stdout.
type ScriptRecognizer struct {
	Script  string
	Timeout time.Duration
}

func (r *ScriptRecognizer) Recognize(imagePath, expectedStudentID string) (*MatchResult, error) {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	args := []string{"--image", imagePath}
	if expectedStudentID != "" {
		args = append(args, "--expected", expectedStudentID)
	}

	out, err := exec.CommandContext(ctx, r.Script, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("recognition script failed: %w", err)
	}

	var result MatchResult
	if err := json.Unmarshal(out, &result); err != nil {
		return nil, fmt.Errorf("failed to decode recognition output: %w", err)
	}
	return &result, nil
}

// RecognitionService feeds accepted matches into the attendance ledger.
type RecognitionService struct {
	recognizer Recognizer
	ledger     *AttendanceLedger
	threshold  float64
	log        *zap.Logger
}

func NewRecognitionService(recognizer Recognizer, ledger *AttendanceLedger, threshold float64, log *zap.Logger) *RecognitionService {
	return &RecognitionService{recognizer: recognizer, ledger: ledger, threshold: threshold, log: log}
}

// ProcessFrame runs recognition on one captured frame and, when the match
// clears the confidence threshold (and the expected-student hint, if any),
// upserts a present record. A frame that does not produce an acceptable
// match is not an error: the returned record is nil and the raw result is
// passed back to the caller.
func (s *RecognitionService) ProcessFrame(instanceID, imagePath, expectedStudentID string) (*models.AttendanceRecord, *MatchResult, error) {
	result, err := s.recognizer.Recognize(imagePath, expectedStudentID)
	if err != nil {
		return nil, nil, err
	}

	if !result.Success || result.StudentID == "" || result.Confidence < s.threshold {
		return nil, result, nil
	}
	if expectedStudentID != "" && result.StudentID != expectedStudentID {
		s.log.Warn("recognition matched a different student than expected",
			zap.String("session_instance_id", instanceID),
			zap.String("student_id", result.StudentID))
		return nil, result, nil
	}

	rec, err := s.ledger.MarkRecognized(instanceID, result.StudentID, result.Confidence)
	if err != nil {
		return nil, result, err
	}
	return rec, result, nil
}
