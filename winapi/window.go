//go:build windows

// Package winapi is a thin Win32 layer: window enumeration by owning
// process and media-key app commands.
package winapi

import (
	"fmt"
	"path/filepath"
	"strings"
	"syscall"
	"unsafe"
)

var (
	// user32
	user32                   = syscall.NewLazyDLL("user32.dll")
	enumWindows              = user32.NewProc("EnumWindows")
	getWindowTextW           = user32.NewProc("GetWindowTextW")
	getWindowThreadProcessID = user32.NewProc("GetWindowThreadProcessId")
	isWindow                 = user32.NewProc("IsWindow")
	isWindowVisible          = user32.NewProc("IsWindowVisible")
	sendMessageW             = user32.NewProc("SendMessageW")

	// psapi
	psapi                = syscall.NewLazyDLL("psapi.dll")
	getModuleFileNameExW = psapi.NewProc("GetModuleFileNameExW")

	// kernel32
	kernel32    = syscall.NewLazyDLL("kernel32.dll")
	openProcess = kernel32.NewProc("OpenProcess")
)

const (
	processQueryInformation = 0x0400
	processVMRead           = 0x0010
	wmGetTextLength         = 0x000E
)

// Window is one top-level window and the metadata captured when it was
// enumerated.
type Window struct {
	Handle      uintptr
	Title       string
	ProcessName string
	IsVisible   bool
}

// Filter is a window predicate applied during enumeration.
type Filter func(*Window) bool

// WinVisible filters by window visibility.
func WinVisible(isVisible bool) Filter {
	return func(w *Window) bool {
		return w.IsVisible == isVisible
	}
}

// FindWindowsByProcess returns all windows belonging to the named
// processes that pass every filter.
func FindWindowsByProcess(processNames []string, filters ...Filter) ([]Window, error) {
	var windows []Window
	processMap := make(map[string]bool)
	for _, name := range processNames {
		processMap[strings.ToLower(name)] = true
	}

	cb := syscall.NewCallback(func(hwnd uintptr, lparam uintptr) uintptr {
		if hwnd == 0 {
			return 1
		}

		var pid uint32
		getWindowThreadProcessID.Call(hwnd, uintptr(unsafe.Pointer(&pid)))

		name, err := getProcessExecutableName(pid)
		if err != nil || !processMap[strings.ToLower(name)] {
			return 1
		}

		visible, _, _ := isWindowVisible.Call(hwnd)
		w := Window{
			Handle:      hwnd,
			Title:       getWindowText(hwnd),
			ProcessName: name,
			IsVisible:   visible != 0,
		}

		for _, filter := range filters {
			if !filter(&w) {
				return 1
			}
		}

		windows = append(windows, w)
		return 1
	})

	enumWindows.Call(cb, 0)
	return windows, nil
}

// RefreshTitle re-reads the window's title, failing if the window no
// longer exists.
func (w *Window) RefreshTitle() error {
	alive, _, _ := isWindow.Call(w.Handle)
	if alive == 0 {
		return fmt.Errorf("window %#x is gone", w.Handle)
	}
	w.Title = getWindowText(w.Handle)
	return nil
}

// getWindowText retrieves the title text of a window.
func getWindowText(hwnd uintptr) string {
	ret, _, _ := sendMessageW.Call(hwnd, wmGetTextLength, 0, 0)
	length := int(ret)
	if length == 0 {
		return ""
	}

	buf := make([]uint16, length+1)
	getWindowTextW.Call(
		hwnd,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(length+1),
	)
	return syscall.UTF16ToString(buf)
}

// getProcessExecutableName returns the executable name for a process ID.
func getProcessExecutableName(pid uint32) (string, error) {
	handle, _, _ := openProcess.Call(
		processQueryInformation|processVMRead,
		0,
		uintptr(pid),
	)
	if handle == 0 {
		return "", fmt.Errorf("could not open process %d", pid)
	}
	defer syscall.CloseHandle(syscall.Handle(handle))

	var buf [syscall.MAX_PATH]uint16
	ret, _, _ := getModuleFileNameExW.Call(
		handle,
		0,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
	)
	if ret == 0 {
		return "", fmt.Errorf("could not get module filename")
	}

	return filepath.Base(syscall.UTF16ToString(buf[:])), nil
}
