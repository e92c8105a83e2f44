package diag

// Severity ranks how bad a diagnostic is. Every condition the engine
// reports is recoverable, so severity drives presentation and exit
// policy, never control flow.
type Severity uint8

const (
	SevInfo Severity = iota
	// SevWarning marks degraded scanning, e.g. the generic language
	// fallback.
	SevWarning
	// SevError marks a dropped or refused directive.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevError:
		return "ERROR"
	case SevWarning:
		return "WARNING"
	case SevInfo:
		return "INFO"
	}
	return "UNKNOWN"
}
