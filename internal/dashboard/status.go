package dashboard

// Severity classifies a status for display.
type Severity int

const (
	SeverityWarning Severity = iota
	SeveritySuccess
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "warning"
	}
}

// Indicator classes applied on top of the baseline style.
const (
	ClassConnected = "connected"
	ClassError     = "error"
)

// Indicator is the visual state of the status indicator.
type Indicator struct {
	Label    string
	Severity Severity
	// Class is ClassConnected, ClassError or empty for the baseline style.
	// Warning has no class of its own and looks like the baseline.
	Class string
}

// Indicate resets to the baseline and applies the single class for sev.
func Indicate(label string, sev Severity) Indicator {
	ind := Indicator{Label: label, Severity: sev}
	switch sev {
	case SeveritySuccess:
		ind.Class = ClassConnected
	case SeverityError:
		ind.Class = ClassError
	}
	return ind
}

// Status is the connection state driven by refresh attempts.
//
//	Connecting --success--> Live
//	Connecting --no data--> NoData
//	Connecting --failure--> Failed
//	any        --refresh--> Connecting
type Status int

const (
	StatusConnecting Status = iota
	StatusLive
	StatusNoData
	StatusFailed
)

// Label returns the text shown in the status indicator.
func (s Status) Label() string {
	switch s {
	case StatusLive:
		return "Live"
	case StatusNoData:
		return "No Data"
	case StatusFailed:
		return "Connection Failed"
	default:
		return "Connecting..."
	}
}

// Severity returns the display severity for s.
func (s Status) Severity() Severity {
	switch s {
	case StatusLive:
		return SeveritySuccess
	case StatusFailed:
		return SeverityError
	default:
		return SeverityWarning
	}
}

// Indicator returns the indicator state for s.
func (s Status) Indicator() Indicator {
	return Indicate(s.Label(), s.Severity())
}
