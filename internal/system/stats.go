package system

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// Stats samples this process while a render runs and prints a summary at
// the end.
type Stats struct {
	proc  *process.Process
	start time.Time
}

func StartStats() *Stats {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return &Stats{start: time.Now()}
	}
	// Prime the CPU counter, the first reading is always zero.
	proc.CPUPercent()
	return &Stats{proc: proc, start: time.Now()}
}

// Report prints the render summary for the given number of frames.
func (s *Stats) Report(frames int) {
	elapsed := time.Since(s.start)
	fps := 0.0
	if elapsed > 0 {
		fps = float64(frames) / elapsed.Seconds()
	}
	fmt.Printf("[*] Rendered %d frames in %.2fs (%.1f fps)\n", frames, elapsed.Seconds(), fps)

	if s.proc == nil {
		return
	}
	if cpu, err := s.proc.CPUPercent(); err == nil {
		fmt.Printf("[*] CPU: %.1f%%\n", cpu)
	}
	if mem, err := s.proc.MemoryInfo(); err == nil {
		fmt.Printf("[*] RSS: %.1f MB\n", float64(mem.RSS)/1024/1024)
	}
}
