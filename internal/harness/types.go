package harness

// Trace event types.
const (
	EventCheck    = "check"
	EventGenerate = "generate"
)

// TraceEvent records one executed step.
type TraceEvent struct {
	Seq  int64  `json:"seq"`
	Type string `json:"type"` // "check" or "generate"
	Word string `json:"word"`

	// check events
	Valid      *bool    `json:"valid,omitempty"`
	Violations []string `json:"violations,omitempty"`
	Syllables  []string `json:"syllables,omitempty"`

	// generate events
	Requested int    `json:"requested,omitempty"`
	Outcome   string `json:"outcome,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every expectation matched.
	Pass bool `json:"pass"`

	// Trace contains every check and generate event in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddCheckTrace adds a check event to the trace.
func (r *Result) AddCheckTrace(word string, valid bool, violations, syllables []string, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Seq:        seq,
		Type:       EventCheck,
		Word:       word,
		Valid:      &valid,
		Violations: violations,
		Syllables:  syllables,
	})
}

// AddGenerateTrace adds a generate event to the trace.
func (r *Result) AddGenerateTrace(word string, requested int, outcome string, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Seq:       seq,
		Type:      EventGenerate,
		Word:      word,
		Requested: requested,
		Outcome:   outcome,
	})
}
