//go:build !unix

package process

import "os/exec"

// killGroupOnCancel keeps the exec.CommandContext default of killing the direct child
func killGroupOnCancel(_ *exec.Cmd) {}
