package workload

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sched-sim/sched-sim/sim"
)

// Process file directives. A file holds one process:
//
//	PROCESS <pid> <arrival>
//	CPU_BURST <duration>
//	IO_BURST <duration>
//
// Blank lines and lines starting with '#' are ignored.
const (
	directiveProcess = "PROCESS"
	directiveCPU     = "CPU_BURST"
	directiveIO      = "IO_BURST"
)

// LoadProcessFile reads a process file from disk.
func LoadProcessFile(path string) (sim.Process, error) {
	f, err := os.Open(path)
	if err != nil {
		return sim.Process{}, fmt.Errorf("reading process file: %w", err)
	}
	defer func() { _ = f.Close() }()
	p, err := ParseProcessFile(f)
	if err != nil {
		return sim.Process{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParseProcessFile parses a single process in process-file format.
// The PROCESS line must come before any burst.
func ParseProcessFile(r io.Reader) (sim.Process, error) {
	var p sim.Process
	seenHeader := false
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case directiveProcess:
			if seenHeader {
				return sim.Process{}, fmt.Errorf("line %d: second %s line", lineNo, directiveProcess)
			}
			nums, err := parseInts(fields, 2, lineNo)
			if err != nil {
				return sim.Process{}, err
			}
			p.PID, p.ArrivalTick = int(nums[0]), nums[1]
			seenHeader = true
		case directiveCPU, directiveIO:
			if !seenHeader {
				return sim.Process{}, fmt.Errorf("line %d: %s before %s", lineNo, fields[0], directiveProcess)
			}
			nums, err := parseInts(fields, 1, lineNo)
			if err != nil {
				return sim.Process{}, err
			}
			kind := sim.BurstCPU
			if fields[0] == directiveIO {
				kind = sim.BurstIO
			}
			p.Bursts = append(p.Bursts, sim.Burst{Kind: kind, Duration: int(nums[0])})
		default:
			return sim.Process{}, fmt.Errorf("line %d: unknown directive %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return sim.Process{}, fmt.Errorf("scanning process file: %w", err)
	}
	if !seenHeader {
		return sim.Process{}, fmt.Errorf("missing %s line", directiveProcess)
	}
	if err := p.Validate(); err != nil {
		return sim.Process{}, err
	}
	return p, nil
}

func parseInts(fields []string, want int, lineNo int) ([]int64, error) {
	if len(fields)-1 != want {
		return nil, fmt.Errorf("line %d: %s takes %d arguments, got %d", lineNo, fields[0], want, len(fields)-1)
	}
	out := make([]int64, want)
	for i := range out {
		v, err := strconv.ParseInt(fields[i+1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %s argument %d: %w", lineNo, fields[0], i+1, err)
		}
		out[i] = v
	}
	return out, nil
}
