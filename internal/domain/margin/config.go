package margin

// Mode selects how category overhead is allocated onto order lines.
type Mode string

const (
	// ModeNone disables overhead allocation entirely.
	ModeNone Mode = ""

	// ModeFixed treats the analytic account rate as a flat per-unit amount.
	ModeFixed Mode = "fixed"

	// ModePercentage treats the rate as a percent of the unit cost snapshot.
	ModePercentage Mode = "percentage"
)

// ParseMode maps a raw configuration value to a Mode. Unset or unrecognized
// values behave as ModeNone: a configuration inconsistency yields zero
// overhead, never an error.
func ParseMode(raw string) Mode {
	switch Mode(raw) {
	case ModeFixed:
		return ModeFixed
	case ModePercentage:
		return ModePercentage
	default:
		return ModeNone
	}
}

// Config is the process-wide overhead configuration, captured once per batch
// recomputation and passed explicitly into every allocation call so the same
// snapshot applies to all lines of the batch.
type Config struct {
	Mode Mode
}

// Enabled reports whether overhead allocation is active.
func (c Config) Enabled() bool {
	return c.Mode == ModeFixed || c.Mode == ModePercentage
}
