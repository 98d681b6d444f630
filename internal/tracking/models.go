package tracking

type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Options are echoed to the client, which owns the actual device
// subscription and should request samples accordingly.
type Options struct {
	HighAccuracy   bool `json:"highAccuracy"`
	TimeoutMs      int  `json:"timeoutMs"`
	MaxSampleAgeMs int  `json:"maxSampleAgeMs"`
}

type Status struct {
	Tracking  bool    `json:"tracking"`
	Anchored  bool    `json:"anchored"`
	LastError string  `json:"lastError,omitempty"`
	Options   Options `json:"options"`
}

// SampleResult reports what happened to one position sample.
type SampleResult struct {
	Accepted  bool    `json:"accepted"`
	Increment float64 `json:"increment"`
	Distance  string  `json:"distance"`
}
