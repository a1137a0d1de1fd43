package view

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"smartstudy/internal/models"
)

// HomeworkState is the grader view's phase.
type HomeworkState string

const (
	// HomeworkEmpty means no image has been uploaded.
	HomeworkEmpty HomeworkState = "empty"
	// HomeworkImageLoaded means an image is held and ready to grade.
	HomeworkImageLoaded HomeworkState = "image_loaded"
	// HomeworkGrading means a grading call is in flight.
	HomeworkGrading HomeworkState = "grading"
	// HomeworkGraded means a report is rendered.
	HomeworkGraded HomeworkState = "graded"
)

// HomeworkView owns the uploaded image and its grading report. Loading a
// new image always discards a prior report; a failed grading call keeps
// the image so the user can retry.
type HomeworkView struct {
	mu      sync.Mutex
	state   HomeworkState
	image   string // data URI of the uploaded sheet
	result  *models.GradingResult
	warning string
}

// NewHomeworkView creates an empty grader view.
func NewHomeworkView() *HomeworkView {
	return &HomeworkView{state: HomeworkEmpty}
}

// LoadImage stores the uploaded sheet as a data URI and discards any prior
// report. Rejected while a grading call is in flight.
func (v *HomeworkView) LoadImage(dataURI string) error {
	if !strings.HasPrefix(dataURI, "data:") || !strings.Contains(dataURI, ",") {
		return ErrBadImage
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == HomeworkGrading {
		return ErrBusy
	}
	v.image = dataURI
	v.result = nil
	v.warning = ""
	v.state = HomeworkImageLoaded
	return nil
}

// Grade submits the loaded image for grading. Only actionable from
// ImageLoaded; a failure keeps the image, surfaces a warning and returns
// the view to ImageLoaded with no report.
func (v *HomeworkView) Grade(ctx context.Context, gw Gateway) error {
	v.mu.Lock()
	switch v.state {
	case HomeworkGrading:
		v.mu.Unlock()
		return ErrBusy
	case HomeworkEmpty:
		v.mu.Unlock()
		return ErrNoImage
	case HomeworkGraded:
		v.mu.Unlock()
		return ErrAlreadyGraded
	}
	payload := v.image[strings.Index(v.image, ",")+1:]
	v.state = HomeworkGrading
	v.warning = ""
	v.mu.Unlock()

	result, err := gw.GradeHomework(ctx, payload)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.state = HomeworkImageLoaded
		v.warning = "grading failed, please try a clearer photo"
		return fmt.Errorf("grade homework: %w", err)
	}
	v.result = &result
	v.state = HomeworkGraded
	return nil
}

// Remove discards both the image and the report from any state.
func (v *HomeworkView) Remove() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.image = ""
	v.result = nil
	v.warning = ""
	v.state = HomeworkEmpty
}

// HomeworkSnapshot is the renderable state of the grader view.
type HomeworkSnapshot struct {
	State   HomeworkState         `json:"state"`
	Image   string                `json:"image,omitempty"`
	Result  *models.GradingResult `json:"result,omitempty"`
	Warning string                `json:"warning,omitempty"`
}

// Snapshot returns a copy of the view's current state.
func (v *HomeworkView) Snapshot() HomeworkSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	snap := HomeworkSnapshot{
		State:   v.state,
		Image:   v.image,
		Warning: v.warning,
	}
	if v.result != nil {
		r := *v.result
		snap.Result = &r
	}
	return snap
}
