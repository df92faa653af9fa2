package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestAuxKey_Encode(t *testing.T) {
	k := AuxKey{Kind: "aiResponse", LessonID: 2, SubLessonID: "2.1", ExerciseID: "draft", StepID: "b2y"}
	assert.Equal(t, "aiResponse_2_2.1_draft_b2y", k.Encode())

	k.ExerciseID = "my_exercise"
	assert.Equal(t, "aiResponse_2_2.1_my%5Fexercise_b2y", k.Encode())
}

func TestParseAuxKey(t *testing.T) {
	k, err := ParseAuxKey("pdfNotes_3_3.2_workflow-redesign_")
	require.NoError(t, err)
	assert.Equal(t, AuxKey{Kind: "pdfNotes", LessonID: 3, SubLessonID: "3.2", ExerciseID: "workflow-redesign"}, k)

	for _, bad := range []string{"", "a_b", "kind_x_1.1_e_s", "kind_1__e_s", "_1_1.1_e_s", "a_1_1.1_e_s_extra"} {
		_, err := ParseAuxKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestAuxKey_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		component := rapid.StringMatching(`[a-zA-Z0-9._%-]{1,12}`)
		k := AuxKey{
			Kind:        component.Draw(t, "kind"),
			LessonID:    rapid.IntRange(0, 1000).Draw(t, "lesson"),
			SubLessonID: component.Draw(t, "sub"),
			ExerciseID:  component.Draw(t, "exercise"),
			StepID:      rapid.StringMatching(`[a-z_%]{0,6}`).Draw(t, "step"),
		}
		got, err := ParseAuxKey(k.Encode())
		if err != nil {
			t.Fatalf("parse %q: %v", k.Encode(), err)
		}
		if got != k {
			t.Fatalf("round trip: got %+v, want %+v", got, k)
		}
	})
}

func TestIsAuxiliaryKey(t *testing.T) {
	assert.True(t, IsAuxiliaryKey("workflowWizardData"))
	assert.True(t, IsAuxiliaryKey("diagramEditorState"))
	assert.False(t, IsAuxiliaryKey("courseProgress"))
}
