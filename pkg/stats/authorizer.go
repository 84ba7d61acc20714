package stats

import (
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	iamAuthorizer    = "AWS_IAM"
	cognitoArnMarker = "arn:aws:cognito-idp"
	lambdaArnMarker  = "arn:aws:lambda"
)

// AuthorizerSpec is the tagged form of an http authorizer declaration. The
// definition file allows either a bare string (function name, ARN, or the
// literal "AWS_IAM") or an object with type/name/arn fields; parsing it into
// a variant keeps the classification predicates free of duck-typing.
type AuthorizerSpec interface {
	isAuthorizerSpec()
}

// StringAuthorizer is the string declaration style.
type StringAuthorizer string

func (StringAuthorizer) isAuthorizerSpec() {}

// ObjectAuthorizer is the structured declaration style.
type ObjectAuthorizer struct {
	Type string `mapstructure:"type"`
	Name string `mapstructure:"name"`
	Arn  string `mapstructure:"arn"`
}

func (ObjectAuthorizer) isAuthorizerSpec() {}

// parseAuthorizer converts a raw authorizer value into its tagged form.
// Unrecognized shapes are reported as not-an-authorizer rather than errors.
func parseAuthorizer(v any) (AuthorizerSpec, bool) {
	switch value := v.(type) {
	case string:
		return StringAuthorizer(value), true
	case map[string]any:
		var obj ObjectAuthorizer
		if err := mapstructure.Decode(value, &obj); err != nil {
			return nil, false
		}
		return obj, true
	}
	return nil, false
}

func isIAMAuthorizer(a AuthorizerSpec) bool {
	switch auth := a.(type) {
	case StringAuthorizer:
		return strings.EqualFold(string(auth), iamAuthorizer)
	case ObjectAuthorizer:
		return strings.EqualFold(auth.Type, iamAuthorizer)
	}
	return false
}

// isCustomAuthorizer recognizes the three equivalent custom-authorizer
// declaration styles: a bare function name or lambda ARN string, an object
// referencing the function by name, or an object carrying a lambda ARN.
func isCustomAuthorizer(a AuthorizerSpec) bool {
	switch auth := a.(type) {
	case StringAuthorizer:
		s := string(auth)
		return !strings.EqualFold(s, iamAuthorizer) && !strings.Contains(s, cognitoArnMarker)
	case ObjectAuthorizer:
		return auth.Name != "" || strings.Contains(auth.Arn, lambdaArnMarker)
	}
	return false
}

func isCognitoAuthorizer(a AuthorizerSpec) bool {
	switch auth := a.(type) {
	case StringAuthorizer:
		return strings.Contains(string(auth), cognitoArnMarker)
	case ObjectAuthorizer:
		return strings.Contains(auth.Arn, cognitoArnMarker)
	}
	return false
}
