package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/godscan/internal/model"
)

func TestIsGodClass_ThresholdIsStrict(t *testing.T) {
	th := model.DefaultThresholds()

	atThreshold := model.ClassMetrics{Lines: th.MaxClassLines, MethodCount: th.MaxMethods, Complexity: th.MaxClassComplexity}
	isGod, violations := IsGodClass(atThreshold, th)
	assert.False(t, isGod)
	assert.Empty(t, violations)

	overByLines := atThreshold
	overByLines.Lines++
	isGod, violations = IsGodClass(overByLines, th)
	assert.True(t, isGod)
	assert.Len(t, violations, 1)
}

func TestIsGodClass_ZeroMethodsGodOnlyByLines(t *testing.T) {
	th := model.DefaultThresholds()
	c := model.ClassMetrics{Lines: th.MaxClassLines + 1, MethodCount: 0, Complexity: 0}
	isGod, violations := IsGodClass(c, th)
	assert.True(t, isGod)
	assert.Len(t, violations, 1)
}

func TestIsGodMethod_ScenarioGodByLength(t *testing.T) {
	th := model.DefaultThresholds()
	m := model.MethodMetrics{Lines: 82, Complexity: 16, Parameters: []model.Parameter{{Name: "a", Type: "int"}}}
	isGod, violations, score := IsGodMethod(m, th)
	assert.True(t, isGod)
	assert.Equal(t, 44, score)
	assert.Len(t, violations, 2)
}

func TestIsGodMethod_ScenarioGodByParametersOnly(t *testing.T) {
	th := model.DefaultThresholds()
	params := make([]model.Parameter, 6)
	for i := range params {
		params[i] = model.Parameter{Name: "p", Type: "int"}
	}
	m := model.MethodMetrics{Lines: 12, Complexity: 1, Parameters: params}
	isGod, violations, score := IsGodMethod(m, th)
	assert.True(t, isGod)
	assert.Equal(t, 1, score)
	assert.Len(t, violations, 1)
}

func TestIsGodMethod_NotGodHasZeroScore(t *testing.T) {
	th := model.DefaultThresholds()
	m := model.MethodMetrics{Lines: 20, Complexity: 4, Parameters: []model.Parameter{{Name: "a", Type: "int"}, {Name: "b", Type: "int"}}}
	isGod, violations, score := IsGodMethod(m, th)
	assert.False(t, isGod)
	assert.Empty(t, violations)
	assert.Equal(t, 0, score)
}

func TestGodFileVerdict_ScenarioFiveClasses(t *testing.T) {
	th := model.DefaultThresholds()
	classes := make([]model.ClassMetrics, 5)
	linesEach := 420 / 5
	for i := range classes {
		classes[i] = model.ClassMetrics{Name: "C", Lines: linesEach}
	}
	v := GodFileVerdict("f.go", classes, th)
	if assert.NotNil(t, v) {
		assert.Equal(t, 10, v.ViolationScore)
		assert.Equal(t, 5, v.ClassCount)
	}
}

func TestGodFileVerdict_HealthyReturnsNil(t *testing.T) {
	th := model.DefaultThresholds()
	classes := []model.ClassMetrics{{Name: "C", Lines: 100}}
	assert.Nil(t, GodFileVerdict("f.go", classes, th))
}

func TestGodFileVerdict_PreservedUnderPermutation(t *testing.T) {
	th := model.DefaultThresholds()
	a := []model.ClassMetrics{{Name: "A", Lines: 100}, {Name: "B", Lines: 200}, {Name: "C", Lines: 50}, {Name: "D", Lines: 40}}
	b := []model.ClassMetrics{a[3], a[1], a[0], a[2]}

	va := GodFileVerdict("f.go", a, th)
	vb := GodFileVerdict("f.go", b, th)
	assert.Equal(t, va == nil, vb == nil)
	if va != nil {
		assert.Equal(t, va.ViolationScore, vb.ViolationScore)
		assert.Equal(t, va.TotalLines, vb.TotalLines)
	}
}

func TestEmptyClassListNeverGodByClassCount(t *testing.T) {
	th := model.DefaultThresholds()
	v := GodFileVerdict("f.go", nil, th)
	assert.Nil(t, v)
}
