package glog

import "time"

// nowFormatted implements the platform contract's get_timestamp format
// (spec.md §6): "YYYY-MM-DD HH:MM:SS:mmm".
func nowFormatted() string {
	now := time.Now()
	return now.Format("2006-01-02 15:04:05") + ":" + threeDigits(now.Nanosecond()/1e6)
}

func threeDigits(ms int) string {
	digits := [3]byte{'0', '0', '0'}
	for i := 2; i >= 0 && ms > 0; i-- {
		digits[i] = byte('0' + ms%10)
		ms /= 10
	}
	return string(digits[:])
}
