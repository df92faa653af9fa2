package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Standalone widget keys. They live outside the progress tree, are carried by
// export/import and are removed by a full reset.
const (
	AuxKeyWorkflowWizard     = "workflowWizardData"
	AuxKeyTokenPrediction    = "tokenPredictionGame"
	AuxKeyCategorization     = "categorizationExercise"
	AuxKeyDiagramEditorState = "diagramEditorState"
)

// AuxiliaryKeys is the fixed allow-list of standalone widget keys.
var AuxiliaryKeys = []string{
	AuxKeyWorkflowWizard,
	AuxKeyTokenPrediction,
	AuxKeyCategorization,
	AuxKeyDiagramEditorState,
}

// IsAuxiliaryKey reports whether key is on the standalone allow-list.
func IsAuxiliaryKey(key string) bool {
	for _, k := range AuxiliaryKeys {
		if k == key {
			return true
		}
	}
	return false
}

const auxKeySeparator = "_"

// AuxKey addresses the persisted state of one interactive widget instance.
// Its storage form is <kind>_<lessonId>_<subLessonId>_<exerciseId>_<stepId>.
type AuxKey struct {
	Kind        string `json:"kind"`
	LessonID    int    `json:"lessonId"`
	SubLessonID string `json:"subLessonId"`
	ExerciseID  string `json:"exerciseId"`
	StepID      string `json:"stepId"`
}

// Validate checks that the key can be encoded.
func (k AuxKey) Validate() error {
	if strings.TrimSpace(k.Kind) == "" {
		return fmt.Errorf("aux key kind is required")
	}
	if k.SubLessonID == "" || k.ExerciseID == "" {
		return fmt.Errorf("aux key requires sub-lesson and exercise ids")
	}
	return nil
}

// Encode renders the storage form. Separator and escape characters inside a
// component are percent-encoded, so ids without them encode verbatim.
func (k AuxKey) Encode() string {
	return strings.Join([]string{
		escapeAuxComponent(k.Kind),
		strconv.Itoa(k.LessonID),
		escapeAuxComponent(k.SubLessonID),
		escapeAuxComponent(k.ExerciseID),
		escapeAuxComponent(k.StepID),
	}, auxKeySeparator)
}

func (k AuxKey) String() string { return k.Encode() }

// ParseAuxKey is the inverse of Encode.
func ParseAuxKey(s string) (AuxKey, error) {
	parts := strings.Split(s, auxKeySeparator)
	if len(parts) != 5 {
		return AuxKey{}, fmt.Errorf("aux key %q must have 5 components, got %d", s, len(parts))
	}
	var (
		k   AuxKey
		err error
	)
	if k.Kind, err = url.PathUnescape(parts[0]); err != nil {
		return AuxKey{}, fmt.Errorf("aux key kind: %w", err)
	}
	if k.LessonID, err = strconv.Atoi(parts[1]); err != nil {
		return AuxKey{}, fmt.Errorf("aux key lesson id: %w", err)
	}
	if k.SubLessonID, err = url.PathUnescape(parts[2]); err != nil {
		return AuxKey{}, fmt.Errorf("aux key sub-lesson id: %w", err)
	}
	if k.ExerciseID, err = url.PathUnescape(parts[3]); err != nil {
		return AuxKey{}, fmt.Errorf("aux key exercise id: %w", err)
	}
	if k.StepID, err = url.PathUnescape(parts[4]); err != nil {
		return AuxKey{}, fmt.Errorf("aux key step id: %w", err)
	}
	if err := k.Validate(); err != nil {
		return AuxKey{}, err
	}
	return k, nil
}

var auxEscaper = strings.NewReplacer("%", "%25", auxKeySeparator, "%5F")

func escapeAuxComponent(s string) string {
	return auxEscaper.Replace(s)
}
