package clusterer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/godscan/internal/model"
)

func authMethod(name string, fields ...string) model.MethodMetrics {
	return model.MethodMetrics{
		Name:           name,
		Lines:          10,
		Complexity:     2,
		Parameters:     []model.Parameter{{Name: "a", Type: "string"}},
		AccessedFields: fields,
		CalledMethods:  nil,
		TokenBag:       model.TokenBag(name, nil, nil),
	}
}

func TestCluster_BelowMinSizeReturnsEmpty(t *testing.T) {
	th := model.DefaultThresholds()
	class := model.ClassMetrics{
		Name:    "Small",
		Methods: []model.MethodMetrics{authMethod("LoginUser"), authMethod("LogoutUser")},
	}
	assert.Empty(t, Cluster(class, th))
}

func TestCluster_EveryMethodBelongsToParentClass(t *testing.T) {
	th := model.DefaultThresholds()
	names := []string{
		"LoginUser", "LogoutUser", "ValidateCredentials", "GenerateToken", "RefreshToken",
		"RevokeToken", "ValidateEmail", "ValidatePassword", "CheckEmailUnique",
	}
	methods := make([]model.MethodMetrics, 0, len(names))
	for _, n := range names {
		methods = append(methods, authMethod(n, "tokenStore", "userRepo"))
	}
	class := model.ClassMetrics{Name: "AuthService", Methods: methods}

	clusters := Cluster(class, th)

	known := make(map[string]struct{}, len(names))
	for _, n := range names {
		known[n] = struct{}{}
	}
	for _, c := range clusters {
		for _, m := range c.Methods {
			_, ok := known[m.Name]
			assert.True(t, ok, "method %q not in parent class", m.Name)
		}
		assert.GreaterOrEqual(t, c.CohesionScore, 0.0)
		assert.LessOrEqual(t, c.CohesionScore, 1.0)
	}
}

func TestCluster_SortedByDescendingCohesion(t *testing.T) {
	th := model.DefaultThresholds()
	names := []string{
		"LoginUser", "LogoutUser", "ValidateCredentials", "GenerateToken", "RefreshToken",
		"RevokeToken", "ValidateEmail", "ValidatePassword", "CheckEmailUnique", "SendWelcomeMail",
	}
	methods := make([]model.MethodMetrics, 0, len(names))
	for i, n := range names {
		fields := []string{"shared"}
		if i%2 == 0 {
			fields = append(fields, "groupA")
		} else {
			fields = append(fields, "groupB")
		}
		methods = append(methods, authMethod(n, fields...))
	}
	class := model.ClassMetrics{Name: "BigService", Methods: methods}

	clusters := Cluster(class, th)
	for i := 1; i < len(clusters); i++ {
		assert.GreaterOrEqual(t, clusters[i-1].CohesionScore, clusters[i].CohesionScore)
	}
}

func TestCluster_SingleMethodClusterIsDropped(t *testing.T) {
	th := model.DefaultThresholds()
	th.MinClusterSize = 3
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	methods := make([]model.MethodMetrics, 0, len(names))
	for _, n := range names {
		methods = append(methods, authMethod(n+"Handler"))
	}
	class := model.ClassMetrics{Name: "C", Methods: methods}
	clusters := Cluster(class, th)
	for _, c := range clusters {
		assert.GreaterOrEqual(t, len(c.Methods), th.MinClusterSize)
	}
}

func TestCluster_Deterministic(t *testing.T) {
	th := model.DefaultThresholds()
	names := []string{
		"LoginUser", "LogoutUser", "ValidateCredentials", "GenerateToken", "RefreshToken",
		"RevokeToken", "ValidateEmail", "ValidatePassword", "CheckEmailUnique",
	}
	build := func() model.ClassMetrics {
		methods := make([]model.MethodMetrics, 0, len(names))
		for _, n := range names {
			methods = append(methods, authMethod(n, "tokenStore", "userRepo"))
		}
		return model.ClassMetrics{Name: "AuthService", Methods: methods}
	}

	first := Cluster(build(), th)
	second := Cluster(build(), th)
	assert.Equal(t, first, second)
}

func TestSuggestedClassName_FallsBackWhenNoTokensSurvive(t *testing.T) {
	methods := []model.MethodMetrics{authMethod("Get"), authMethod("Set"), authMethod("Is")}
	assert.Equal(t, "ParentComponent", suggestedClassName(methods, "Parent"))
}
