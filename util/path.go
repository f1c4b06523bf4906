package util

import (
	"os/user"
	"path/filepath"
	"strings"
)

// HomePath expands a leading "~/" to the current user's home directory.
// It is used for the settings file argument as well as for configured
// drive and script paths.
type HomePath struct {
	Path string
}

func NewHomePath(in string) (*HomePath, error) {
	h := &HomePath{}
	err := h.UnmarshalText([]byte(in))
	return h, err
}

// ExpandHome returns in with "~/" expanded, or in unchanged if the home
// directory cannot be resolved.
func ExpandHome(in string) string {
	h, err := NewHomePath(in)
	if err != nil {
		return in
	}
	return h.Path
}

func (h *HomePath) UnmarshalText(text []byte) error {
	h.Path = strings.TrimSpace(string(text))
	if !strings.HasPrefix(h.Path, "~/") {
		return nil
	}
	usr, err := user.Current()
	if err != nil {
		return err
	}
	h.Path = filepath.Join(usr.HomeDir, h.Path[2:])
	return nil
}
