package domain

// Control is the input widget an exercise is rendered with.
type Control string

const (
	ControlTextInput     Control = "text-input"
	ControlTextarea      Control = "textarea"
	ControlDatePicker    Control = "date-picker"
	ControlRadioGroup    Control = "radio-group"
	ControlSelect        Control = "select"
	ControlCheckboxGroup Control = "checkbox-group"
	ControlWizard        Control = "wizard"
	ControlRadioWithText Control = "radio-with-text"
	ControlWidget        Control = "widget"
	ControlLink          Control = "link"
)

var controls = map[ExerciseType]Control{
	ExerciseText:          ControlTextInput,
	ExerciseTextarea:      ControlTextarea,
	ExerciseDate:          ControlDatePicker,
	ExerciseRadio:         ControlRadioGroup,
	ExerciseSelect:        ControlSelect,
	ExerciseCheckbox:      ControlCheckboxGroup,
	ExerciseMultiStep:     ControlWizard,
	ExerciseRadioWithText: ControlRadioWithText,
	ExerciseComponent:     ControlWidget,
	ExerciseLink:          ControlLink,
}

// Controls returns the control of every known exercise type.
func Controls() map[ExerciseType]Control {
	out := make(map[ExerciseType]Control, len(controls))
	for t, c := range controls {
		out[t] = c
	}
	return out
}

// ControlFor maps an exercise type to its control. Unknown types fall back to a text input.
func ControlFor(t ExerciseType) Control {
	if c, ok := controls[t]; ok {
		return c
	}
	return ControlTextInput
}

// AcceptsListAnswer reports whether answers for t carry list arity.
func AcceptsListAnswer(t ExerciseType) bool {
	return t == ExerciseCheckbox
}
