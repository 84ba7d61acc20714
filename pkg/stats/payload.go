package stats

// The payload schema below is fixed wire format: the analytics sink predates
// this implementation, so field names (serverlessVersion, nodeJsVersion,
// event name framework_stat) must be emitted exactly as-is.

// EventName identifies the usage-statistics event at the analytics sink.
const EventName = "framework_stat"

// PayloadVersion is the schema version of the properties section.
const PayloadVersion = 2

// Payload is one immutable usage snapshot, freshly allocated per collection
// call.
type Payload struct {
	UserID     string     `json:"userId"`
	Event      string     `json:"event"`
	Properties Properties `json:"properties"`
}

type Properties struct {
	Version   int             `json:"version"`
	Command   CommandInfo     `json:"command"`
	Service   ServiceFeatures `json:"service"`
	Provider  ProviderInfo    `json:"provider"`
	Functions FunctionsInfo   `json:"functions"`
	Events    EventsInfo      `json:"events"`
	General   GeneralInfo     `json:"general"`
	// AWS is present only when the provider is AWS.
	AWS *AuthorizerFlags `json:"aws,omitempty"`
}

type CommandInfo struct {
	Name            string         `json:"name"`
	FilteredOptions map[string]any `json:"filteredOptions"`
	IsRunInService  bool           `json:"isRunInService"`
}

type ProviderInfo struct {
	Name    string `json:"name"`
	Runtime string `json:"runtime"`
	Stage   string `json:"stage"`
	Region  string `json:"region"`
}

type FunctionsInfo struct {
	NumberOfFunctions               int             `json:"numberOfFunctions"`
	MemorySizeAndTimeoutPerFunction []MemoryTimeout `json:"memorySizeAndTimeoutPerFunction"`
}

type EventsInfo struct {
	NumberOfEvents        int         `json:"numberOfEvents"`
	NumberOfEventsPerType []TypeCount `json:"numberOfEventsPerType"`
	EventNamesPerFunction [][]string  `json:"eventNamesPerFunction"`
}

type GeneralInfo struct {
	UserID            string `json:"userId"`
	Context           string `json:"context"`
	Timestamp         int64  `json:"timestamp"`
	Timezone          string `json:"timezone"`
	OperatingSystem   string `json:"operatingSystem"`
	UserAgent         string `json:"userAgent"`
	ServerlessVersion string `json:"serverlessVersion"`
	NodeJsVersion     string `json:"nodeJsVersion"`
	IsDockerContainer bool   `json:"isDockerContainer"`
	IsCISystem        bool   `json:"isCISystem"`
	CISystem          string `json:"ciSystem"`
	PlatformID        string `json:"platformId,omitempty"`
}
