package purifier

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatNumber formats n with the digit grouping and decimal mark of tag.
// Non-numeric values are printed as-is.
func FormatNumber(tag language.Tag, n any) string {
	p := message.NewPrinter(tag)
	switch v := n.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return p.Sprint(number.Decimal(v))
	default:
		return p.Sprint(n)
	}
}
