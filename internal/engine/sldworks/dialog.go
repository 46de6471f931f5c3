//go:build windows

package sldworks

import (
	"fmt"
	"syscall"
	"unsafe"
)

// Modal prompts (hole wizard confirmations, rebuild warnings) block the
// automation thread until clicked. They are standard Win32 dialogs of
// class #32770 owned by the SolidWorks process, so they are probed and
// dismissed through user32 rather than the automation interface.

var (
	user32              = syscall.NewLazyDLL("user32.dll")
	procFindWindow      = user32.NewProc("FindWindowW")
	procIsWindowVisible = user32.NewProc("IsWindowVisible")
	procPostMessage     = user32.NewProc("PostMessageW")
)

const (
	wmCommand = 0x0111
	idOK      = 1
)

func findDialog() uintptr {
	class, _ := syscall.UTF16PtrFromString("#32770")
	hwnd, _, _ := procFindWindow.Call(uintptr(unsafe.Pointer(class)), 0)
	if hwnd == 0 {
		return 0
	}
	visible, _, _ := procIsWindowVisible.Call(hwnd)
	if visible == 0 {
		return 0
	}
	return hwnd
}

func (d *document) DialogVisible() bool {
	return findDialog() != 0
}

// DismissDialog posts the default-button command to the frontmost modal
// dialog, equivalent to pressing Enter on it.
func (d *document) DismissDialog() error {
	hwnd := findDialog()
	if hwnd == 0 {
		return nil
	}
	ret, _, err := procPostMessage.Call(hwnd, wmCommand, idOK, 0)
	if ret == 0 {
		return fmt.Errorf("sldworks: dismiss dialog: %v", err)
	}
	return nil
}
