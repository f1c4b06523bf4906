package util

import (
	"math"
	"os"
	"strconv"
	"strings"
)

// StringToOnOff converts a sysfs style "1"/"0" flag to the payloads a
// Home Assistant binary sensor expects.
func StringToOnOff(in string) string {
	in = strings.TrimSpace(in)
	if in == "1" {
		return "ON"
	}
	if in == "0" {
		return "OFF"
	}
	return ""
}

func FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// RoundTo rounds in to the given number of decimals (half away from zero).
func RoundTo(in float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(in*pow) / pow
}

// FormatDecimals renders in with exactly the given number of decimals.
func FormatDecimals(in float64, decimals int) string {
	return strconv.FormatFloat(in, 'f', decimals, 64)
}
