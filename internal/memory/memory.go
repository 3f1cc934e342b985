package memory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type Memory int64

const (
	Byte     Memory = 1
	Kilobyte        = 1024 * Byte
	Megabyte        = 1024 * Kilobyte
	Gigabyte        = 1024 * Megabyte
)

func (d Memory) Bytes() int64 { return int64(d) }

func (d Memory) Kilobytes() int64 { return int64(d) / int64(Kilobyte) }

func (d Memory) Megabytes() int64 { return int64(d) / int64(Megabyte) }

func (d Memory) String() string {
	switch {
	case d >= Gigabyte && d%Gigabyte == 0:
		return fmt.Sprintf("%dGB", d/Gigabyte)
	case d >= Megabyte && d%Megabyte == 0:
		return fmt.Sprintf("%dMB", d/Megabyte)
	case d >= Kilobyte && d%Kilobyte == 0:
		return fmt.Sprintf("%dKB", d/Kilobyte)
	}

	return fmt.Sprintf("%dB", int64(d))
}

var units = []struct {
	suffix string
	size   Memory
}{{"GB", Gigabyte}, {"MB", Megabyte}, {"KB", Kilobyte}, {"B", Byte}}

// Parse reads sizes such as 512KB, 2MB or a plain number of bytes.
func Parse(value string) (Memory, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	unit := Byte

	for _, u := range units {
		if strings.HasSuffix(normalized, u.suffix) {
			normalized = strings.TrimSpace(strings.TrimSuffix(normalized, u.suffix))
			unit = u.size

			break
		}
	}

	amount, err := strconv.ParseInt(normalized, 10, 64)

	if err != nil || amount < 0 {
		return 0, errors.Errorf("invalid memory size %q", value)
	}

	return Memory(amount) * unit, nil
}

// LimitExceeded is returned when captured output grows beyond the size it is
// allowed to be stored with.
var LimitExceeded error = memoryLimitExceededError{}

type memoryLimitExceededError struct{}

func (memoryLimitExceededError) Error() string { return "memory limit exceeded" }
