package aws

import "fmt"

// FunctionName returns the deployed name of a function:
// <service>-<stage>-<function>.
func FunctionName(service, stage, function string) string {
	return fmt.Sprintf("%s-%s-%s", service, stage, function)
}
