//go:build windows

package runtime

func shellCommand(command string) (string, []string) {
	return "cmd", []string{"/C", command}
}
