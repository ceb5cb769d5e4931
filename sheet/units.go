package sheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is the unit a length was written in.
type Unit int

const (
	UnitPX     Unit = iota // pixels, the default
	UnitPT                 // points
	UnitMM                 // millimeters
	UnitCM                 // centimeters
	UnitIN                 // inches
	UnitFactor             // multiple of the base font size, eg. 0.25x
)

// 换算以 96 dpi 为准。
const (
	PxPerInch = 96.0
	PtToPx    = PxPerInch / 72
	MmToPx    = PxPerInch / 25.4
)

func (u Unit) String() string {
	switch u {
	case UnitPT:
		return "pt"
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitFactor:
		return "x"
	default:
		return "px"
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Pixels converts l to pixels. fontSize is the reference for UnitFactor.
func (l Length) Pixels(fontSize float64) float64 {
	switch l.Unit {
	case UnitPT:
		return l.Value * PtToPx
	case UnitMM:
		return l.Value * MmToPx
	case UnitCM:
		return l.Value * 10 * MmToPx
	case UnitIN:
		return l.Value * PxPerInch
	case UnitFactor:
		return l.Value * fontSize
	default:
		return l.Value
	}
}

// Int converts l to whole pixels, rounding to nearest.
func (l Length) Int(fontSize float64) int {
	return int(math.Round(l.Pixels(fontSize)))
}

// ParseLength parses a number with an optional px/pt/mm/cm/in/x suffix.
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("长度为空")
	}
	unit := UnitPX
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"pt", UnitPT}, {"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"x", UnitFactor}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("无法解析长度 %s: %w", value, err)
	}
	return Length{Value: f, Unit: unit}, nil
}
