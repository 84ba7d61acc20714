// Package stats derives an anonymized usage snapshot from a service
// definition and hands it to an analytics sink. It is pure data
// transformation: the service config is never mutated, every derived
// structure is freshly allocated, and no state survives between calls.
package stats

import (
	"cmp"
	"runtime"
	"strings"
	"time"

	"github.com/golden-eagle-it-technologies/serverless/pkg/environment"
	"github.com/golden-eagle-it-technologies/serverless/pkg/service"
	"github.com/golden-eagle-it-technologies/serverless/pkg/useragent"
	"github.com/golden-eagle-it-technologies/serverless/pkg/userconfig"
	"github.com/golden-eagle-it-technologies/serverless/pkg/version"
)

// Invocation describes the CLI invocation that triggered collection.
type Invocation struct {
	// Context labels the collection trigger; empty defaults to "usage".
	Context string
	// Command is the name of the invoked CLI command.
	Command string
	// Options is the command's option snapshot. Only allow-listed keys make
	// it into the payload.
	Options map[string]any
	// InService reports whether the command ran inside a service directory.
	InService bool
}

// Sink receives assembled payloads. Delivery, retries, and failures are the
// sink's concern alone; emission never blocks or fails collection.
type Sink interface {
	Emit(payload any)
}

// trackedOptions is the exact-match allow-list of CLI options included in
// the payload. Unknown keys are dropped.
var trackedOptions = []string{"help", "disable", "enable"}

// Report assembles the usage snapshot for one invocation and hands it to the
// sink. When tracking is disabled (or the user config is unavailable) it
// returns nil and the sink is never invoked.
func Report(cfg *service.Config, user *userconfig.Config, inv Invocation, sink Sink) *Payload {
	if user == nil || user.IsTrackingDisabled() {
		return nil
	}

	payload := Collect(cfg, user, inv)
	if sink != nil {
		sink.Emit(payload)
	}
	return payload
}

// Collect builds the payload without consulting the tracking gate. Callers
// that must honor the user's preference go through Report.
func Collect(cfg *service.Config, user *userconfig.Config, inv Invocation) *Payload {
	events := SummarizeEvents(cfg)
	now := time.Now()

	general := GeneralInfo{
		UserID:            user.FrameworkID,
		Context:           cmp.Or(inv.Context, "usage"),
		Timestamp:         now.UnixMilli(),
		Timezone:          now.Format("MST"),
		OperatingSystem:   runtime.GOOS,
		UserAgent:         useragent.Kind(),
		ServerlessVersion: version.Version,
		NodeJsVersion:     runtime.Version(),
		IsDockerContainer: environment.IsInContainer(),
		PlatformID:        user.CurrentUserID(),
	}
	general.CISystem, general.IsCISystem = environment.DetectCI()

	payload := &Payload{
		UserID: user.FrameworkID,
		Event:  EventName,
		Properties: Properties{
			Version: PayloadVersion,
			Command: CommandInfo{
				Name:            inv.Command,
				FilteredOptions: filterOptions(inv.Options),
				IsRunInService:  inv.InService,
			},
			Service: DetectFeatures(cfg),
			Provider: ProviderInfo{
				Name:    cfg.Provider.Name,
				Runtime: cfg.Provider.Runtime,
				Stage:   cfg.Provider.Stage,
				Region:  cfg.Provider.Region,
			},
			Functions: FunctionsInfo{
				NumberOfFunctions:               len(cfg.Functions),
				MemorySizeAndTimeoutPerFunction: FunctionProfiles(cfg),
			},
			Events: EventsInfo{
				NumberOfEvents:        events.Total,
				NumberOfEventsPerType: events.PerType,
				EventNamesPerFunction: events.NamesPerFunction,
			},
			General: general,
		},
	}

	if strings.EqualFold(cfg.Provider.Name, "aws") {
		authorizers := events.Authorizers
		payload.Properties.AWS = &authorizers
	}

	return payload
}

// filterOptions keeps only allow-listed option keys.
func filterOptions(options map[string]any) map[string]any {
	filtered := map[string]any{}
	for _, key := range trackedOptions {
		if value, ok := options[key]; ok {
			filtered[key] = value
		}
	}
	return filtered
}
