package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/golden-eagle-it-technologies/serverless/pkg/service"
)

func httpEvent(authorizer any) service.EventBinding {
	descriptor := map[string]any{"path": "/x", "method": "get"}
	if authorizer != nil {
		descriptor["authorizer"] = authorizer
	}
	return service.EventBinding{"http": descriptor}
}

func TestSummarizeEvents_Tally(t *testing.T) {
	t.Parallel()

	cfg := &service.Config{
		Functions: []service.Function{
			{Name: "a", Events: []service.EventBinding{httpEvent(nil), {"s3": "bucket"}}},
			{Name: "b", Events: []service.EventBinding{httpEvent(nil), {"s3": "bucket"}}},
		},
	}

	summary := SummarizeEvents(cfg)
	assert.Equal(t, 4, summary.Total)
	assert.ElementsMatch(t, []TypeCount{
		{Name: "http", Count: 2},
		{Name: "s3", Count: 2},
	}, summary.PerType)
}

func TestSummarizeEvents_FirstAppearanceOrder(t *testing.T) {
	t.Parallel()

	cfg := &service.Config{
		Functions: []service.Function{
			{Name: "a", Events: []service.EventBinding{{"schedule": "rate(1 hour)"}}},
			{Name: "b", Events: []service.EventBinding{httpEvent(nil), {"schedule": "rate(2 hours)"}}},
		},
	}

	summary := SummarizeEvents(cfg)
	assert.Equal(t, []TypeCount{
		{Name: "schedule", Count: 2},
		{Name: "http", Count: 1},
	}, summary.PerType)
}

func TestSummarizeEvents_NamesPerFunction(t *testing.T) {
	t.Parallel()

	cfg := &service.Config{
		Functions: []service.Function{
			{Name: "a", Events: []service.EventBinding{httpEvent(nil), {"s3": "bucket"}}},
			{Name: "noEvents"},
			{Name: "c", Events: []service.EventBinding{{"sns": "topic"}}},
		},
	}

	summary := SummarizeEvents(cfg)
	// Functions without events are absent, not empty
	assert.Equal(t, [][]string{{"http", "s3"}, {"sns"}}, summary.NamesPerFunction)
}

func TestSummarizeEvents_NoFunctions(t *testing.T) {
	t.Parallel()

	summary := SummarizeEvents(&service.Config{})
	assert.Zero(t, summary.Total)
	assert.Empty(t, summary.PerType)
	assert.Empty(t, summary.NamesPerFunction)
	assert.Equal(t, AuthorizerFlags{}, summary.Authorizers)
}

func TestSummarizeEvents_IAMAuthorizer(t *testing.T) {
	t.Parallel()

	cfg := &service.Config{
		Functions: []service.Function{
			{Name: "a", Events: []service.EventBinding{httpEvent("AWS_IAM")}},
		},
	}

	summary := SummarizeEvents(cfg)
	assert.Equal(t, AuthorizerFlags{HasIAMAuthorizer: true}, summary.Authorizers)
}

func TestSummarizeEvents_CognitoAuthorizerIsNotCustom(t *testing.T) {
	t.Parallel()

	cfg := &service.Config{
		Functions: []service.Function{
			{Name: "a", Events: []service.EventBinding{
				httpEvent("arn:aws:cognito-idp:us-east-1:123456789012:userpool/X"),
			}},
		},
	}

	summary := SummarizeEvents(cfg)
	assert.True(t, summary.Authorizers.HasCognitoAuthorizer)
	assert.False(t, summary.Authorizers.HasCustomAuthorizer)
	assert.False(t, summary.Authorizers.HasIAMAuthorizer)
}

func TestSummarizeEvents_CustomAuthorizerObject(t *testing.T) {
	t.Parallel()

	cfg := &service.Config{
		Functions: []service.Function{
			{Name: "a", Events: []service.EventBinding{
				httpEvent(map[string]any{"name": "myAuthFn"}),
			}},
		},
	}

	summary := SummarizeEvents(cfg)
	assert.True(t, summary.Authorizers.HasCustomAuthorizer)
}

func TestSummarizeEvents_FlagsAccumulateAcrossFunctions(t *testing.T) {
	t.Parallel()

	cfg := &service.Config{
		Functions: []service.Function{
			{Name: "a", Events: []service.EventBinding{httpEvent("AWS_IAM")}},
			{Name: "b", Events: []service.EventBinding{httpEvent("myAuthFn")}},
			{Name: "c", Events: []service.EventBinding{httpEvent(nil)}},
		},
	}

	summary := SummarizeEvents(cfg)
	assert.Equal(t, AuthorizerFlags{
		HasIAMAuthorizer:    true,
		HasCustomAuthorizer: true,
	}, summary.Authorizers)
}

func TestSummarizeEvents_NonHTTPAuthorizerIgnored(t *testing.T) {
	t.Parallel()

	cfg := &service.Config{
		Functions: []service.Function{
			{Name: "a", Events: []service.EventBinding{
				{"websocket": map[string]any{"authorizer": "AWS_IAM"}},
			}},
		},
	}

	summary := SummarizeEvents(cfg)
	assert.Equal(t, AuthorizerFlags{}, summary.Authorizers)
}

func TestSummarizeEvents_StringDescriptorWithoutAuthorizer(t *testing.T) {
	t.Parallel()

	cfg := &service.Config{
		Functions: []service.Function{
			{Name: "a", Events: []service.EventBinding{{"http": "GET /hello"}}},
		},
	}

	summary := SummarizeEvents(cfg)
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, AuthorizerFlags{}, summary.Authorizers)
}
