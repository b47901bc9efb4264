package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

const PathSeparator = "→"

// Conversion is the outcome of resolving an amount from one currency into another.
// Rate is the composed rate, the product of every traversed edge.
type Conversion struct {
	From   string
	To     string
	Amount decimal.Decimal
	Result decimal.Decimal
	Rate   decimal.Decimal
	Path   []string
}

// Hops is the number of stored rates traversed.
func (c Conversion) Hops() int {
	if len(c.Path) == 0 {
		return 0
	}
	return len(c.Path) - 1
}

func (c Conversion) PathString() string {
	return strings.Join(c.Path, PathSeparator)
}
