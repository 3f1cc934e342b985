// PROC Reference - https://man7.org/linux/man-pages/man5/proc.5.html

package pid

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"code-runner/internal/memory"
)

var pageSize = int64(os.Getpagesize())

// ResidentMemory returns the resident set size of the process. Only platforms
// exposing /proc are supported, everywhere else an error is returned.
func ResidentMemory(pid int) (memory.Memory, error) {
	data, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "statm"))

	if err != nil {
		return 0, errors.Wrap(err, "failed to read process statistics")
	}

	return parseStatm(data)
}

// parseStatm reads the resident pages, the second field of statm.
func parseStatm(data []byte) (memory.Memory, error) {
	fields := strings.Fields(string(data))

	if len(fields) < 2 {
		return 0, errors.Errorf("malformed statm %q", string(data))
	}

	pages, err := strconv.ParseInt(fields[1], 10, 64)

	if err != nil {
		return 0, errors.Wrap(err, "malformed resident page count")
	}

	return memory.Memory(pages * pageSize), nil
}

// Monitor samples the process every interval until done is closed and then
// sends the peak resident memory seen. Sampling stops at the first failure,
// the peak so far is still sent once done is closed.
func Monitor(done <-chan struct{}, pid int, interval time.Duration) <-chan memory.Memory {
	peak := make(chan memory.Memory, 1)

	go func() {
		var highest memory.Memory
		sampling := true

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if sampling {
				current, err := ResidentMemory(pid)

				switch {
				case err != nil:
					log.Debug().Err(err).Int("pid", pid).Msg("stopped sampling process memory")
					sampling = false
				case current > highest:
					highest = current
				}
			}

			select {
			case <-done:
				peak <- highest
				return
			case <-ticker.C:
			}
		}
	}()

	return peak
}
