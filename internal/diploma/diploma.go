// Package diploma builds and submits the completion diploma.
package diploma

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/matteflyt/internal/catalog"
	"github.com/abhisek/matteflyt/internal/progress"
)

// ErrInvalidSubmission is returned for a submission that fails validation.
var ErrInvalidSubmission = errors.New("invalid diploma submission")

// LevelResult is one level's entry in the diploma's level results.
type LevelResult struct {
	Name     string   `json:"name"`
	Accuracy int      `json:"accuracy"`
	Time     *float64 `json:"time,omitempty"`
}

// Submission is the diploma payload sent to the server.
type Submission struct {
	StudentName string `json:"studentName"`
	TotalStars  int    `json:"totalStars"`
	AvgAccuracy int    `json:"avgAccuracy"`
	// LevelResults is a JSON object keyed by level id.
	LevelResults string `json:"levelResults"`
}

// Diploma is a stored submission.
type Diploma struct {
	ID           string    `json:"id"`
	StudentName  string    `json:"studentName"`
	TotalStars   int       `json:"totalStars"`
	AvgAccuracy  int       `json:"avgAccuracy"`
	CompletedAt  time.Time `json:"completedAt"`
	LevelResults string    `json:"levelResults"`
}

// Submitter delivers a submission and returns the stored diploma id.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) (string, error)
}

// Build summarizes the progress snapshot for name. Average accuracy is the
// rounded mean over recorded levels; levels outside cat are ignored.
func Build(name string, cat *catalog.Catalog, snap map[int]progress.LevelProgress) (Submission, error) {
	results := make(map[string]LevelResult)
	totalStars, sumAccuracy, completed := 0, 0, 0

	for _, l := range cat.Levels() {
		p, ok := snap[l.ID]
		if !ok {
			continue
		}
		completed++
		totalStars += p.Stars
		sumAccuracy += p.Accuracy
		results[strconv.Itoa(l.ID)] = LevelResult{Name: l.Name, Accuracy: p.Accuracy, Time: p.AvgTime}
	}

	raw, err := json.Marshal(results)
	if err != nil {
		return Submission{}, fmt.Errorf("encode level results: %w", err)
	}

	return Submission{
		StudentName:  strings.TrimSpace(name),
		TotalStars:   totalStars,
		AvgAccuracy:  int(math.Round(float64(sumAccuracy) / float64(max(completed, 1)))),
		LevelResults: string(raw),
	}, nil
}

// Validate checks the submission the way the server does.
func (s Submission) Validate() error {
	var errs []string
	if strings.TrimSpace(s.StudentName) == "" {
		errs = append(errs, "student name is required")
	}
	if s.TotalStars < 0 {
		errs = append(errs, fmt.Sprintf("total stars %d is negative", s.TotalStars))
	}
	if s.AvgAccuracy < 0 || s.AvgAccuracy > 100 {
		errs = append(errs, fmt.Sprintf("average accuracy %d is outside 0-100", s.AvgAccuracy))
	}
	if !json.Valid([]byte(s.LevelResults)) {
		errs = append(errs, "level results are not valid JSON")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSubmission, strings.Join(errs, "; "))
	}
	return nil
}
