// Package playlist discovers .m3u playlists and hands them to the OS
// default opener.
package playlist

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/samber/lo"
)

// Playlist is one playable list of files, named after its file.
type Playlist struct {
	Name string `json:"name"`
	Path string `json:"-"`
}

// Discover lists the .m3u files in dir as playlists, named without the
// extension.
func Discover(dir string) ([]Playlist, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading playlist dir: %w", err)
	}

	files := lo.Filter(entries, func(e os.DirEntry, _ int) bool {
		return !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".m3u")
	})
	return lo.Map(files, func(e os.DirEntry, _ int) Playlist {
		return Playlist{
			Name: strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			Path: filepath.Join(dir, e.Name()),
		}
	}), nil
}

// Find returns the playlist with the given name.
func Find(lists []Playlist, name string) (Playlist, bool) {
	return lo.Find(lists, func(p Playlist) bool { return p.Name == name })
}

// Start launches the playlist with the OS default handler, which lets
// whatever player owns the .m3u association pick it up.
func (p Playlist) Start() error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", p.Path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", p.Path)
	default:
		cmd = exec.Command("xdg-open", p.Path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching playlist %s: %w", p.Name, err)
	}
	return nil
}
