package stats

import "github.com/golden-eagle-it-technologies/serverless/pkg/service"

// ServiceFeatures flags optional service-definition sections.
type ServiceFeatures struct {
	NumberOfCustomPlugins              int  `json:"numberOfCustomPlugins"`
	HasCustomResourcesDefined          bool `json:"hasCustomResourcesDefined"`
	HasVariablesInCustomSectionDefined bool `json:"hasVariablesInCustomSectionDefined"`
	HasCustomVariableSyntaxDefined     bool `json:"hasCustomVariableSyntaxDefined"`
}

// DetectFeatures reports which optional sections the service uses. Only
// presence matters: the content of custom/resources sections is never
// inspected beyond emptiness.
func DetectFeatures(cfg *service.Config) ServiceFeatures {
	features := ServiceFeatures{
		NumberOfCustomPlugins:              len(cfg.Plugins),
		HasVariablesInCustomSectionDefined: cfg.Custom != nil,
	}

	if r := cfg.Resources; r != nil {
		features.HasCustomResourcesDefined = len(r.Resources) > 0 || len(r.Outputs) > 0
	}

	if s := cfg.Provider.VariableSyntax; s != "" && s != service.DefaultVariableSyntax {
		features.HasCustomVariableSyntaxDefined = true
	}

	return features
}
