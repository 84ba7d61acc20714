package environment

import "os"

// ciSystems maps a marker environment variable to the name of the CI system
// that sets it. Checked in order; the first match wins.
var ciSystems = []struct {
	envVar string
	name   string
}{
	{"JENKINS_URL", "jenkins"},
	{"TRAVIS", "travis"},
	{"CIRCLECI", "circleci"},
	{"GITHUB_ACTIONS", "github-actions"},
	{"GITLAB_CI", "gitlab"},
	{"BUILDKITE", "buildkite"},
	{"TF_BUILD", "azure-pipelines"},
	{"TEAMCITY_VERSION", "teamcity"},
	{"APPVEYOR", "appveyor"},
	{"CODEBUILD_BUILD_ID", "codebuild"},
	{"DRONE", "drone"},
	{"bamboo_buildKey", "bamboo"},
	{"BITBUCKET_COMMIT", "bitbucket"},
	{"CI_NAME", "codeship"},
	{"SEMAPHORE", "semaphore"},
}

// DetectCI reports whether the process appears to run under a continuous
// integration system, and which one. A generic CI marker without any
// recognized system yields (true, empty name).
func DetectCI() (string, bool) {
	for _, ci := range ciSystems {
		if os.Getenv(ci.envVar) != "" {
			return ci.name, true
		}
	}
	if os.Getenv("CI") != "" || os.Getenv("CONTINUOUS_INTEGRATION") != "" {
		return "", true
	}
	return "", false
}
