package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter answers Ask calls from a fixed script and records the
// order parameters were asked in.
type scriptedPrompter struct {
	answers map[string]string
	asked   []string
	err     error
}

func (p *scriptedPrompter) Ask(reportName, paramName string) (string, error) {
	p.asked = append(p.asked, paramName)
	if p.err != nil {
		return "", p.err
	}
	return p.answers[paramName], nil
}

func TestBindFailPolicyListsAllMissing(t *testing.T) {
	action := Action{RequiredParams: []string{"a", "b"}}

	_, err := Bind(action, BindRequest{
		Report:   "Glossary-Terms",
		Kind:     KindDict,
		Supplied: map[string]interface{}{"a": "x"},
		Policy:   PolicyFail,
	})

	var missing *MissingParametersError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"b"}, missing.Missing)
	assert.Contains(t, err.Error(), "b")
}

func TestBindSucceedsWhenRequiredCovered(t *testing.T) {
	action := Action{
		RequiredParams: []string{"search_string"},
		OptionalParams: []string{"page_size"},
	}

	bound, err := Bind(action, BindRequest{
		Report:   "Collections",
		Kind:     KindTable,
		Supplied: map[string]interface{}{"search_string": "clinical", "page_size": 25},
		Policy:   PolicyFail,
	})
	require.NoError(t, err)

	assert.Equal(t, "clinical", bound["search_string"])
	assert.Equal(t, 25, bound["page_size"])
	assert.Equal(t, "TABLE", bound[ControlOutputFormat])
	assert.Equal(t, "Collections", bound[ControlOutputFormatSet])
}

func TestBindNilValuedSuppliedCountsAsAbsent(t *testing.T) {
	action := Action{RequiredParams: []string{"search_string"}}

	_, err := Bind(action, BindRequest{
		Report:   "Collections",
		Kind:     KindDict,
		Supplied: map[string]interface{}{"search_string": nil},
		Policy:   PolicyFail,
	})

	var missing *MissingParametersError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"search_string"}, missing.Missing)
}

func TestBindSpecParamSatisfiesRequired(t *testing.T) {
	action := Action{
		RequiredParams: []string{"search_string", "classification_names"},
		SpecParams: map[string]interface{}{
			"classification_names": []interface{}{"DigitalProduct"},
		},
	}

	bound, err := Bind(action, BindRequest{
		Report:   "Digital-Products",
		Kind:     KindDict,
		Supplied: map[string]interface{}{"search_string": "*"},
		Policy:   PolicyFail,
	})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"DigitalProduct"}, bound["classification_names"])
}

func TestBindSpecParamsWinOverSupplied(t *testing.T) {
	action := Action{
		RequiredParams: []string{"search_string"},
		OptionalParams: []string{"classification_names"},
		SpecParams: map[string]interface{}{
			"classification_names": []interface{}{"DigitalProduct"},
		},
	}

	bound, err := Bind(action, BindRequest{
		Report: "Digital-Products",
		Kind:   KindDict,
		Supplied: map[string]interface{}{
			"search_string":        "*",
			"classification_names": []interface{}{"Sneaky"},
		},
		Policy: PolicyFail,
	})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"DigitalProduct"}, bound["classification_names"])
}

func TestBindControlValuesWinOverEverything(t *testing.T) {
	action := Action{
		RequiredParams: []string{"search_string"},
		OptionalParams: []string{ControlOutputFormat},
		SpecParams:     map[string]interface{}{ControlOutputFormatSet: "spoofed"},
	}

	bound, err := Bind(action, BindRequest{
		Report: "Collections",
		Kind:   KindReport,
		Supplied: map[string]interface{}{
			"search_string":     "*",
			ControlOutputFormat: "spoofed",
		},
		Policy: PolicyFail,
	})
	require.NoError(t, err)
	assert.Equal(t, "REPORT", bound[ControlOutputFormat])
	assert.Equal(t, "Collections", bound[ControlOutputFormatSet])
}

// Absent optional parameters are omitted from the bound call entirely, never
// defaulted to an explicit null.
func TestBindOmitsAbsentOptionals(t *testing.T) {
	action := Action{
		RequiredParams: []string{"search_string"},
		OptionalParams: []string{"page_size", "start_from"},
	}

	bound, err := Bind(action, BindRequest{
		Report:   "Collections",
		Kind:     KindDict,
		Supplied: map[string]interface{}{"search_string": "*"},
		Policy:   PolicyFail,
	})
	require.NoError(t, err)

	_, hasPageSize := bound["page_size"]
	_, hasStartFrom := bound["start_from"]
	assert.False(t, hasPageSize)
	assert.False(t, hasStartFrom)
	assert.Len(t, bound, 3) // search_string + two control values
}

func TestBindIgnoresUndeclaredSuppliedKeys(t *testing.T) {
	action := Action{RequiredParams: []string{"search_string"}}

	bound, err := Bind(action, BindRequest{
		Report:   "Collections",
		Kind:     KindDict,
		Supplied: map[string]interface{}{"search_string": "*", "unrelated": "x"},
		Policy:   PolicyFail,
	})
	require.NoError(t, err)
	_, present := bound["unrelated"]
	assert.False(t, present)
}

func TestBindPromptPolicyAsksInOrder(t *testing.T) {
	action := Action{RequiredParams: []string{"a", "b", "c"}}
	prompter := &scriptedPrompter{answers: map[string]string{"a": "1", "c": "3"}}

	bound, err := Bind(action, BindRequest{
		Report:   "Collections",
		Kind:     KindDict,
		Supplied: map[string]interface{}{"b": "2"},
		Policy:   PolicyPrompt,
		Prompter: prompter,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c"}, prompter.asked)
	assert.Equal(t, "1", bound["a"])
	assert.Equal(t, "2", bound["b"])
	assert.Equal(t, "3", bound["c"])
}

func TestBindPromptFailurePropagates(t *testing.T) {
	action := Action{RequiredParams: []string{"a"}}
	prompter := &scriptedPrompter{err: errors.New("stdin closed")}

	_, err := Bind(action, BindRequest{
		Report:   "Collections",
		Kind:     KindDict,
		Policy:   PolicyPrompt,
		Prompter: prompter,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin closed")
}

func TestBindPromptPolicyWithoutPrompter(t *testing.T) {
	action := Action{RequiredParams: []string{"a"}}

	_, err := Bind(action, BindRequest{
		Report: "Collections",
		Kind:   KindDict,
		Policy: PolicyPrompt,
	})
	assert.Error(t, err)
}
