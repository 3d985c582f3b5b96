package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeText(t *testing.T) {
	tests := []struct {
		outcome Outcome
		label   string
	}{
		{Pass, "Pass"},
		{Fail, "Fail"},
		{Disabled, "Disabled"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			text, err := tt.outcome.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, tt.label, string(text))

			var got Outcome
			require.NoError(t, got.UnmarshalText(text))
			assert.Equal(t, tt.outcome, got)
		})
	}

	_, err := Outcome(42).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "Outcome(42)", Outcome(42).String())

	var o Outcome
	assert.Error(t, o.UnmarshalText([]byte("Skipped")))
}

func TestResultJSONUsesLabels(t *testing.T) {
	data, err := json.Marshal(Result{Name: "exists", Outcome: Disabled, Message: "m"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"exists","outcome":"Disabled","message":"m"}`, string(data))
}

func TestReport(t *testing.T) {
	report := Report{Results: []Result{
		{Name: "a", Outcome: Pass, Message: "first"},
		{Name: "b", Outcome: Fail, Message: "second", Detail: "panic: boom"},
		{Name: "c", Outcome: Disabled, Message: "third"},
		{Name: "d", Outcome: Fail, Message: "fourth"},
	}}

	passed, failed, disabled := report.Counts()
	assert.Equal(t, 1, passed)
	assert.Equal(t, 2, failed)
	assert.Equal(t, 1, disabled)

	assert.Equal(t, []string{"Pass: first", "Fail: second", "Disabled: third", "Fail: fourth"}, report.Lines())

	failures := report.Failures()
	require.Len(t, failures, 2)
	assert.Equal(t, "b", failures[0].Name)
	assert.Equal(t, "d", failures[1].Name)

	assert.Empty(t, Report{}.Failures())
	assert.Empty(t, Report{}.Lines())
}

func TestGradePassed(t *testing.T) {
	assert.True(t, Grade{Report: Report{Passed: true}}.Passed())
	assert.False(t, Grade{Report: Report{Passed: false}}.Passed())
	assert.False(t, Grade{Report: Report{Passed: true}, Err: errors.New("load")}.Passed())
}
