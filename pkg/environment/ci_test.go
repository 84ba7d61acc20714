package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCI(t *testing.T) {
	clearCIEnv(t)

	name, ok := DetectCI()
	assert.False(t, ok)
	assert.Empty(t, name)
}

func TestDetectCI_KnownSystems(t *testing.T) {
	tests := []struct {
		envVar string
		want   string
	}{
		{"JENKINS_URL", "jenkins"},
		{"TRAVIS", "travis"},
		{"CIRCLECI", "circleci"},
		{"GITHUB_ACTIONS", "github-actions"},
		{"GITLAB_CI", "gitlab"},
		{"BUILDKITE", "buildkite"},
		{"CODEBUILD_BUILD_ID", "codebuild"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			clearCIEnv(t)
			t.Setenv(tt.envVar, "1")

			name, ok := DetectCI()
			assert.True(t, ok)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestDetectCI_GenericCIVariable(t *testing.T) {
	clearCIEnv(t)
	t.Setenv("CI", "true")

	name, ok := DetectCI()
	assert.True(t, ok)
	assert.Empty(t, name)
}

// clearCIEnv unsets every CI marker so tests behave the same on developer
// machines and on CI itself.
func clearCIEnv(t *testing.T) {
	t.Helper()
	for _, ci := range ciSystems {
		t.Setenv(ci.envVar, "")
	}
	t.Setenv("CI", "")
	t.Setenv("CONTINUOUS_INTEGRATION", "")
}
