package fields

import (
	"fmt"
	"strings"
)

const DefaultZone = "A"

type Unit struct {
	Zone string
	Code string
}

// ParseUnit reads "B-7" as zone B, unit B007. A bare zone gets unit <zone>001.
func ParseUnit(s string) Result[Unit] {
	segments := strings.SplitN(s, "-", 2)

	outcome := Parsed
	zone := strings.ToUpper(strings.TrimSpace(segments[0]))
	if zone == "" {
		zone = DefaultZone
		outcome = Defaulted
	}

	if len(segments) == 2 {
		if number := strings.TrimSpace(segments[1]); number != "" {
			return Result[Unit]{Value: Unit{Zone: zone, Code: zone + leftPad(number, 3)}, Outcome: outcome}
		}
	}
	return defaulted(Unit{Zone: zone, Code: zone + "001"})
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return fmt.Sprintf("%s%s", strings.Repeat("0", width-len(s)), s)
}
