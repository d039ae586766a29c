package notify

import (
	"os"

	"github.com/gen2brain/beeep"
)

// SystemDeliverer raises alerts as native OS notifications.
type SystemDeliverer struct{}

// Deliver sends the alert. icon is passed on only when it names a file.
func (SystemDeliverer) Deliver(title, body, icon string) error {
	if icon != "" {
		if _, err := os.Stat(icon); err != nil {
			icon = ""
		}
	}
	return beeep.Notify(title, body, icon)
}
