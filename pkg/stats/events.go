package stats

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/golden-eagle-it-technologies/serverless/pkg/service"
)

// AuthorizerFlags are the three independent http-authorizer classifications,
// OR-accumulated across every event binding of the whole service. A single
// occurrence anywhere sets the corresponding flag for the call.
type AuthorizerFlags struct {
	HasIAMAuthorizer     bool `json:"hasIAMAuthorizer"`
	HasCustomAuthorizer  bool `json:"hasCustomAuthorizer"`
	HasCognitoAuthorizer bool `json:"hasCognitoAuthorizer"`
}

// TypeCount is one entry of the service-wide event tally.
type TypeCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// EventSummary is the result of one walk over all event bindings.
type EventSummary struct {
	Total            int
	PerType          []TypeCount
	NamesPerFunction [][]string
	Authorizers      AuthorizerFlags
}

// SummarizeEvents walks every function's event bindings in declaration
// order, tallies occurrences per event-type name (first-appearance order),
// records each function's own event-name sequence, and classifies http
// authorizers. Functions without events contribute nothing and are absent
// from NamesPerFunction.
func SummarizeEvents(cfg *service.Config) EventSummary {
	summary := EventSummary{
		PerType:          []TypeCount{},
		NamesPerFunction: [][]string{},
	}
	tally := orderedmap.New[string, int]()

	for _, fn := range cfg.Functions {
		if len(fn.Events) == 0 {
			continue
		}

		names := make([]string, 0, len(fn.Events))
		for _, binding := range fn.Events {
			name := binding.Type()
			if name == "" {
				continue
			}

			names = append(names, name)
			count, _ := tally.Get(name)
			tally.Set(name, count+1)
			summary.Total++

			if name == "http" {
				classifyHTTPBinding(binding.Descriptor(), &summary.Authorizers)
			}
		}
		summary.NamesPerFunction = append(summary.NamesPerFunction, names)
	}

	for pair := tally.Oldest(); pair != nil; pair = pair.Next() {
		summary.PerType = append(summary.PerType, TypeCount{Name: pair.Key, Count: pair.Value})
	}

	return summary
}

// classifyHTTPBinding inspects an http event descriptor for an authorizer
// declaration. The three checks are independent, not mutually exclusive.
func classifyHTTPBinding(descriptor any, flags *AuthorizerFlags) {
	m, ok := descriptor.(map[string]any)
	if !ok {
		return
	}
	raw, ok := m["authorizer"]
	if !ok || raw == nil {
		return
	}
	auth, ok := parseAuthorizer(raw)
	if !ok {
		return
	}

	flags.HasIAMAuthorizer = flags.HasIAMAuthorizer || isIAMAuthorizer(auth)
	flags.HasCustomAuthorizer = flags.HasCustomAuthorizer || isCustomAuthorizer(auth)
	flags.HasCognitoAuthorizer = flags.HasCognitoAuthorizer || isCognitoAuthorizer(auth)
}
