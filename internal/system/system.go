package system

import (
	"log"
	"os/exec"
	"strings"
	"syscall"
)

// InitResourceLimits raises the open file limit so long encoder pipelines
// do not run out of descriptors.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Could not read the file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Could not raise the file limit: %v", err)
	}
}

// BestH264Encoder probes ffmpeg for hardware H.264 encoders and falls back
// to libx264.
func BestH264Encoder() string {
	encoders := []string{"h264_videotoolbox", "h264_nvenc"}

	for _, enc := range encoders {
		cmd := exec.Command("ffmpeg", "-encoders")
		out, err := cmd.CombinedOutput()
		if err == nil && strings.Contains(string(out), enc) {
			return enc
		}
	}

	return "libx264"
}
