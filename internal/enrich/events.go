package enrich

// EventKind identifies a progress event emitted by the pipeline.
type EventKind int

const (
	EventOfficerSearch EventKind = iota
	EventOfficersFound
	EventOfficerStart
	EventAppointmentsFound
	EventDetailProgress
	EventDetailMissing
	EventOfficerDone
	EventOfficerSkipped
	EventCompanySearch
	EventCompaniesFound
	EventCompanyStart
	EventCompanyNumber
	EventCompanyOfficersFound
)

// Event is a progress notification. Only the fields relevant to Kind are set.
type Event struct {
	Kind  EventKind
	Name  string
	ID    string
	Count int
	Index int // 1-based, EventDetailProgress only
	Err   error
}

// Reporter receives progress events in the order they occur.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Event)

func (f ReporterFunc) Report(e Event) { f(e) }

type nopReporter struct{}

func (nopReporter) Report(Event) {}
