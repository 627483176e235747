package auth

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openBrowser opens the URL in the user's default browser. Failure is not
// fatal; the URL has already been printed for manual use.
func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		return
	}
	if err != nil {
		fmt.Println("Failed to open browser. Please open the URL above manually.")
	}
}
