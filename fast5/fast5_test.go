package fast5

import (
	"errors"
	"testing"
)

type fakeContainer struct {
	children map[string][]string
	attrs    map[string]string
	listErr  error
}

func (f fakeContainer) ChildNames(group string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	names, ok := f.children[group]
	if !ok {
		return nil, errors.New("no such group")
	}
	return names, nil
}

func (f fakeContainer) StringAttr(object, attr string) (string, error) {
	id, ok := f.attrs[object+"|"+attr]
	if !ok {
		return "", errors.New("no such attribute")
	}
	return id, nil
}

func TestLocateReadId(t *testing.T) {
	c := fakeContainer{
		children: map[string][]string{
			"/Raw/Reads": {"Read_1274"},
		},
		attrs: map[string]string{
			"/Raw/Reads/Read_1274|read_id": "f71b8a2c-11aa-4f25-b0a3-58c34c5e6c55",
		},
	}
	id, err := LocateReadId(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "f71b8a2c-11aa-4f25-b0a3-58c34c5e6c55" {
		t.Error("wrong read id:", id)
	}
}

func TestLocateReadIdFirstMatch(t *testing.T) {
	// Two read records: the first in lexical order wins.
	c := fakeContainer{
		children: map[string][]string{
			"/Raw/Reads": {"Read_12", "Read_9"},
		},
		attrs: map[string]string{
			"/Raw/Reads/Read_12|read_id": "first",
			"/Raw/Reads/Read_9|read_id":  "second",
		},
	}
	id, err := LocateReadId(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "first" {
		t.Error("expected first record in enumeration order, got", id)
	}
}

func TestLocateReadIdIgnoresOtherNames(t *testing.T) {
	c := fakeContainer{
		children: map[string][]string{
			"/Raw/Reads": {"Read_", "Read_7_old", "Signal", "Read_7"},
		},
		attrs: map[string]string{
			"/Raw/Reads/Read_7|read_id": "readA",
		},
	}
	id, err := LocateReadId(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "readA" {
		t.Error("wrong read id:", id)
	}
}

func TestLocateReadIdNoRecord(t *testing.T) {
	c := fakeContainer{
		children: map[string][]string{
			"/Raw/Reads": {"Signal", "Events"},
		},
	}
	_, err := LocateReadId(c)
	if !errors.Is(err, ErrNoRecord) {
		t.Error("expected ErrNoRecord, got", err)
	}
}

func TestLocateReadIdGroupError(t *testing.T) {
	want := errors.New("truncated file")
	_, err := LocateReadId(fakeContainer{listErr: want})
	if !errors.Is(err, want) {
		t.Error("expected store error to propagate, got", err)
	}
}
