package explain

import (
	"fmt"
	"strconv"
)

func itoa(n int) string { return strconv.Itoa(n) }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func toString(v interface{}) string { return fmt.Sprintf("%v", v) }
