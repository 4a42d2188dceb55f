package enum

// NumberingMode controls how receipt numbers are assigned
type NumberingMode string

const (
	// NumberingModeAuto reserves numbers from the per-year atomic counter
	NumberingModeAuto NumberingMode = "auto"
	// NumberingModeManual requires the caller to supply a number
	NumberingModeManual NumberingMode = "manual"
)

// IsValid reports whether the mode is a known numbering mode
func (m NumberingMode) IsValid() bool {
	return m == NumberingModeAuto || m == NumberingModeManual
}

func (m NumberingMode) String() string {
	return string(m)
}
