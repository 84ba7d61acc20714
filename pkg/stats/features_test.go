package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/golden-eagle-it-technologies/serverless/pkg/service"
)

func TestDetectFeatures_Resources(t *testing.T) {
	t.Parallel()

	cfg := &service.Config{
		Resources: &service.Resources{
			Resources: map[string]any{"Bucket": map[string]any{"Type": "AWS::S3::Bucket"}},
		},
	}
	assert.True(t, DetectFeatures(cfg).HasCustomResourcesDefined)

	cfg = &service.Config{
		Resources: &service.Resources{
			Outputs: map[string]any{"BucketName": map[string]any{"Value": "x"}},
		},
	}
	assert.True(t, DetectFeatures(cfg).HasCustomResourcesDefined)
}

func TestDetectFeatures_NoResources(t *testing.T) {
	t.Parallel()

	assert.False(t, DetectFeatures(&service.Config{}).HasCustomResourcesDefined)

	// Present but empty section still counts as absent
	cfg := &service.Config{Resources: &service.Resources{}}
	assert.False(t, DetectFeatures(cfg).HasCustomResourcesDefined)
}

func TestDetectFeatures_CustomSection(t *testing.T) {
	t.Parallel()

	assert.False(t, DetectFeatures(&service.Config{}).HasVariablesInCustomSectionDefined)

	// Content is irrelevant, presence is all that matters
	cfg := &service.Config{Custom: map[string]any{}}
	assert.True(t, DetectFeatures(cfg).HasVariablesInCustomSectionDefined)
}

func TestDetectFeatures_VariableSyntax(t *testing.T) {
	t.Parallel()

	assert.False(t, DetectFeatures(&service.Config{}).HasCustomVariableSyntaxDefined)

	cfg := &service.Config{Provider: service.Provider{VariableSyntax: service.DefaultVariableSyntax}}
	assert.False(t, DetectFeatures(cfg).HasCustomVariableSyntaxDefined)

	cfg = &service.Config{Provider: service.Provider{VariableSyntax: `\$\{\{([^}]+)\}\}`}}
	assert.True(t, DetectFeatures(cfg).HasCustomVariableSyntaxDefined)
}

func TestDetectFeatures_Plugins(t *testing.T) {
	t.Parallel()

	assert.Zero(t, DetectFeatures(&service.Config{}).NumberOfCustomPlugins)

	cfg := &service.Config{Plugins: []string{"a", "b", "c"}}
	assert.Equal(t, 3, DetectFeatures(cfg).NumberOfCustomPlugins)
}
