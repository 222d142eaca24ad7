package configs

import (
	"errors"
	"strings"
	"time"

	"github.com/ziadkadry99/toldyou-button/internal/button"
	"github.com/ziadkadry99/toldyou-button/internal/i18n"
)

// ErrNotFound is returned when no configuration has the requested id.
var ErrNotFound = errors.New("configuration not found")

// StoredConfig is a persisted widget configuration. It is never updated
// after creation.
type StoredConfig struct {
	ID        string        `json:"id"`
	Email     string        `json:"email"`
	Config    button.Config `json:"configJson"`
	Lang      i18n.Language `json:"lang"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Submission is the body of POST /api/configs.
type Submission struct {
	Email  string        `json:"email"`
	Config button.Config `json:"configJson"`
	Lang   i18n.Language `json:"lang,omitempty"`
}

// ValidationError lists every problem found in a submission.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "invalid submission"
	}
	return "invalid submission: " + strings.Join(e.Problems, "; ")
}
