// Package util holds small output-formatting helpers used by the CLI — no
// behavior, just consistent column widths for tabular printing.
package util

import "fmt"

// FormatPower renders a real or reactive power quantity with a fixed
// three-decimal width and unit suffix (MW, MVAR).
func FormatPower(value float64, unit string) string {
	return fmt.Sprintf("%9.3f %s", value, unit)
}

// FormatVoltageAngle renders a bus's solved state as
// "|V|=1.000000 pu  Angle= -2.500 deg",
// the load-flow analogue of the teacher's magnitude/phase formatter.
func FormatVoltageAngle(magnitudePU, angleDeg float64) string {
	return fmt.Sprintf("|V|=%.6f pu  Angle=%7.3f deg", magnitudePU, angleDeg)
}

// FormatMVA renders an apparent-power rating, switching to scientific
// notation outside the range a line/transformer rating normally falls in.
func FormatMVA(value float64) string {
	if value >= 100000 || (value < 0.001 && value != 0) {
		return fmt.Sprintf("%10.2e MVA", value)
	}
	return fmt.Sprintf("%10.3f MVA", value)
}
