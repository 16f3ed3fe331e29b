// Package fast5 extracts the read identifier embedded in a fast5
// raw-signal container. Each container is expected to hold a single
// read record as a group named Read_<number> under /Raw/Reads, carrying
// the read id as a string attribute.
package fast5

import (
	"errors"
	"regexp"

	"github.com/conchoecia/fast5-in-ref/hdf"
)

// Extension is the file suffix identifying raw-signal containers.
const Extension = ".fast5"

const (
	readsGroup = "/Raw/Reads"
	readIdAttr = "read_id"
)

// ErrNoRecord reports a container that opened cleanly but holds no
// read record under the raw reads group.
var ErrNoRecord = errors.New("fast5: no read record found")

var readName = regexp.MustCompile(`Read_[0-9]+$`)

// Container is the minimal store access the locator needs. *hdf.File
// satisfies it.
type Container interface {
	ChildNames(group string) ([]string, error)
	StringAttr(object, attr string) (string, error)
}

// LocateReadId finds the read record in an open container and returns
// its read id. Children of the reads group are considered in lexical
// name order and the first name ending in Read_<number> wins, so a
// container holding more than one read record yields a deterministic,
// if arbitrary, choice rather than an error.
func LocateReadId(c Container) (string, error) {
	names, err := c.ChildNames(readsGroup)
	if err != nil {
		return "", err
	}
	for _, name := range names {
		if readName.MatchString(name) {
			return c.StringAttr(readsGroup+"/"+name, readIdAttr)
		}
	}
	return "", ErrNoRecord
}

// ReadId opens the container at path, extracts its read id, and closes
// the handle before returning.
func ReadId(path string) (string, error) {
	f, err := hdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return LocateReadId(f)
}
