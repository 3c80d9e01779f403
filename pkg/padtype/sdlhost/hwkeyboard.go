package sdlhost

import (
	"sync"

	"github.com/holoplot/go-evdev"

	"github.com/padtype/padtype/pkg/padtype/internal"
)

// WatchHardwareKeyboard monitors evdev for key presses on a physical
// keyboard so the host can dismiss the on-screen one when the user plugs a
// real keyboard in and starts typing. The watcher stops when done is closed.
func WatchHardwareKeyboard(done <-chan struct{}, onKeyPress func()) *sync.WaitGroup {
	log := internal.GetLogger()
	wg := &sync.WaitGroup{}

	paths, err := evdev.ListDevicePaths()
	if err != nil {
		log.Debug("no evdev devices available", "error", err)
		return wg
	}

	for _, path := range paths {
		device, err := evdev.Open(path.Path)
		if err != nil {
			log.Debug("failed to open input device", "path", path.Path, "error", err)
			continue
		}
		if !isKeyboard(device) {
			device.Close()
			continue
		}
		log.Debug("watching hardware keyboard", "path", path.Path, "name", path.Name)

		wg.Add(2)
		go func(device *evdev.InputDevice) {
			defer wg.Done()
			<-done
			device.Close()
		}(device)
		go func(device *evdev.InputDevice) {
			defer wg.Done()
			for {
				event, err := device.ReadOne()
				if err != nil {
					return
				}
				if event.Type == evdev.EV_KEY && event.Value == 1 {
					onKeyPress()
				}
			}
		}(device)
	}

	return wg
}

// isKeyboard reports whether the device exposes an alphabetic key range, as
// opposed to a power button or a gamepad that also advertises EV_KEY.
func isKeyboard(device *evdev.InputDevice) bool {
	for _, t := range device.CapableTypes() {
		if t != evdev.EV_KEY {
			continue
		}
		hasA, hasZ := false, false
		for _, code := range device.CapableEvents(t) {
			switch code {
			case evdev.KEY_A:
				hasA = true
			case evdev.KEY_Z:
				hasZ = true
			}
		}
		return hasA && hasZ
	}
	return false
}
