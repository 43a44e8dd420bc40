package property

import (
	"fmt"
	"strconv"
)

const pidDigits = 6

// FormatPID renders prefix + zero padded sequence, e.g. House/7 -> H000007.
func FormatPID(t Type, number int64) string {
	return fmt.Sprintf("%s%0*d", t.Prefix(), pidDigits, number)
}

// ParsePIDNumber returns the numeric suffix of a pid.
func ParsePIDNumber(pid string) (int64, error) {
	if len(pid) < 2 {
		return 0, fmt.Errorf("invalid pid %q", pid)
	}
	n, err := strconv.ParseInt(pid[1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pid %q: %w", pid, err)
	}
	return n, nil
}

// MaxPIDNumber returns the numerically highest suffix among pids, ignoring
// malformed ones.
func MaxPIDNumber(pids []string) int64 {
	var max int64
	for _, pid := range pids {
		n, err := ParsePIDNumber(pid)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}
