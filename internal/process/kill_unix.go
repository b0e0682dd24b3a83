//go:build !windows

// Package process stops browser process trees left behind by the engine.
package process

import "syscall"

// KillTree sends SIGKILL to the process group led by pid. Renderer and GPU
// helpers share the browser's group, so they go down with it.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
