package solution

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pithecene-io/advent/timer"
	"github.com/pithecene-io/advent/types"
)

func sampleReport() *Report {
	return &Report{
		Puzzle:  types.Day01,
		PartOne: Some("6"),
		PartTwo: None[string](),
		Timings: timer.Timings{
			{Label: LabelParsing, Duration: 20 * time.Nanosecond},
			{Label: LabelPartOne, Duration: 30 * time.Nanosecond},
			{Label: LabelPartTwo, Duration: 10 * time.Nanosecond},
			{Label: LabelTotal, Duration: 70 * time.Nanosecond},
		},
		Profile: "RELEASE",
	}
}

func TestReport_String(t *testing.T) {
	want := "\n--- DAY 1 ---\n" +
		"Part 1: 6\n" +
		"Part 2: unimplemented\n" +
		"\n--- BENCH (RELEASE) ---\n" +
		"Parsing: 20ns\n" +
		"Part 1: 30ns\n" +
		"Part 2: 10ns\n" +
		"Total: 70ns\n"
	assert.Equal(t, want, sampleReport().String())
}

func TestReport_JSON(t *testing.T) {
	data, err := json.Marshal(sampleReport())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "6", decoded["part_one"])
	assert.Nil(t, decoded["part_two"])
	assert.EqualValues(t, 1, decoded["puzzle"])

	var back Report
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, *sampleReport(), back)
}

func TestReport_YAMLAbsentIsNull(t *testing.T) {
	data, err := yaml.Marshal(sampleReport())
	require.NoError(t, err)
	assert.Contains(t, string(data), "part_one: \"6\"")
	assert.Contains(t, string(data), "part_two: null")
}

func TestReport_Answer(t *testing.T) {
	r := sampleReport()
	assert.Equal(t, Some("6"), r.Answer(types.PartOne))
	assert.Equal(t, None[string](), r.Answer(types.PartTwo))
}

func TestOutcome_TimingsIsACopy(t *testing.T) {
	o := &Outcome[int]{timings: sampleReport().Timings}
	ts := o.Timings()
	ts[0].Label = "changed"
	assert.Equal(t, LabelParsing, o.Timings()[0].Label)
}

func TestAnswer(t *testing.T) {
	v, ok := Some(3).Get()
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	assert.Equal(t, 9, None[int]().OrElse(9))
	assert.Equal(t, "unimplemented", None[int]().String())
	assert.Equal(t, "42", Some(42).String())

	var zero Answer[int]
	assert.False(t, zero.Present(), "zero value is absent")
}

func TestSplit(t *testing.T) {
	a := P1[int, string](7)
	b := P2[int, string]("abc")

	assert.Equal(t, types.PartOne, a.Part())
	assert.Equal(t, types.PartTwo, b.Part())
	assert.Equal(t, "7", a.String())
	assert.Equal(t, "abc", b.String())
	assert.Equal(t, "abc", Some(b).String())
}
