package importer

// State is the importer lifecycle position.
type State string

const (
	StateIdle      State = "idle"
	StateFetching  State = "fetching"
	StateRows      State = "row-processing"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// Outcome is the result of one row.
type Outcome int

const (
	Failed Outcome = iota
	Imported
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Imported:
		return "imported"
	case Skipped:
		return "skipped"
	default:
		return "error"
	}
}
