package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyAuthorizer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   any
		iam     bool
		custom  bool
		cognito bool
	}{
		{
			name:  "iam literal",
			value: "AWS_IAM",
			iam:   true,
		},
		{
			name:  "iam literal case insensitive",
			value: "aws_iam",
			iam:   true,
		},
		{
			name:  "iam object type",
			value: map[string]any{"type": "aws_iam"},
			iam:   true,
		},
		{
			name:   "bare function name",
			value:  "myAuthFn",
			custom: true,
		},
		{
			name:   "lambda arn string",
			value:  "arn:aws:lambda:us-east-1:123456789012:function:auth",
			custom: true,
		},
		{
			name:   "object with name",
			value:  map[string]any{"name": "myAuthFn"},
			custom: true,
		},
		{
			name:   "object with lambda arn",
			value:  map[string]any{"arn": "arn:aws:lambda:us-east-1:123456789012:function:auth"},
			custom: true,
		},
		{
			name:    "cognito arn string",
			value:   "arn:aws:cognito-idp:us-east-1:123456789012:userpool/X",
			cognito: true,
		},
		{
			name:    "object with cognito arn",
			value:   map[string]any{"arn": "arn:aws:cognito-idp:us-east-1:123456789012:userpool/X"},
			cognito: true,
		},
		{
			name:    "object with name and cognito arn sets both",
			value:   map[string]any{"name": "pool", "arn": "arn:aws:cognito-idp:us-east-1:1:userpool/X"},
			custom:  true,
			cognito: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			auth, ok := parseAuthorizer(tt.value)
			require.True(t, ok)

			assert.Equal(t, tt.iam, isIAMAuthorizer(auth), "iam")
			assert.Equal(t, tt.custom, isCustomAuthorizer(auth), "custom")
			assert.Equal(t, tt.cognito, isCognitoAuthorizer(auth), "cognito")
		})
	}
}

func TestParseAuthorizer_UnrecognizedShape(t *testing.T) {
	t.Parallel()

	_, ok := parseAuthorizer(42)
	assert.False(t, ok)

	_, ok = parseAuthorizer(nil)
	assert.False(t, ok)

	_, ok = parseAuthorizer([]any{"AWS_IAM"})
	assert.False(t, ok)
}
