package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors classifying where in the pipeline a task failed. Callers
// match them with errors.Is; the task's stored error message carries the
// human-readable detail.
var (
	ErrAcquisition = errors.New("acquisition error")
	ErrAssembly    = errors.New("assembly error")
	ErrRender      = errors.New("render error")
	ErrCanceled    = errors.New("task canceled")
)

// Wrap tags err with the given sentinel and stage/operation context.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
