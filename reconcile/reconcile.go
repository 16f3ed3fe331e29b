// Package reconcile walks a directory tree of raw-signal containers
// and streams out the paths of those whose read id appears in a
// reference name set.
package reconcile

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/conchoecia/fast5-in-ref/fast5"
)

// Locator extracts the read id from one container file. A failure is
// terminal for that file only and never aborts the walk.
type Locator func(path string) (string, error)

// Tree walks every file under root, applies locate to each file ending
// in the fast5 extension, and writes the canonical path of every file
// whose id is in ids to sink, one per line, as matches are found.
// Paths are deduplicated after symlink resolution, so a file reachable
// through more than one walk entry is emitted at most once. The number
// of distinct emitted paths is returned.
//
// With workers > 1 the per-file locate calls fan out across a pool and
// output order becomes unspecified; the emitted set and count do not
// change. ids is never mutated.
func Tree(root string, ids map[string]struct{}, locate Locator, sink io.Writer, workers int, verbose bool) (int, error) {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return 0, fmt.Errorf("cannot resolve search root: %w", err)
	}
	resolved, err = filepath.Abs(resolved)
	if err != nil {
		return 0, fmt.Errorf("cannot resolve search root: %w", err)
	}

	if workers > 1 {
		return reconcileParallel(resolved, ids, locate, sink, workers, verbose)
	}
	return reconcileSerial(resolved, ids, locate, sink, verbose)
}

func reconcileSerial(root string, ids map[string]struct{}, locate Locator, sink io.Writer, verbose bool) (int, error) {
	seen := make(map[string]struct{})
	var count int
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if verbose {
				log.Printf("skipping %s: %v", path, err)
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), fast5.Extension) {
			return nil
		}
		canon, ok := match(path, ids, locate, verbose)
		if !ok {
			return nil
		}
		if _, dup := seen[canon]; dup {
			return nil
		}
		seen[canon] = struct{}{}
		if _, err = fmt.Fprintln(sink, canon); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}

// reconcileParallel keeps the walk and the emission single-threaded and
// fans only the per-file open/locate work across the pool. The seen set
// and sink belong to the collecting loop alone.
func reconcileParallel(root string, ids map[string]struct{}, locate Locator, sink io.Writer, workers int, verbose bool) (int, error) {
	paths := make(chan string, workers)
	matches := make(chan string, workers)

	var walkErr error
	go func() {
		walkErr = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if verbose {
					log.Printf("skipping %s: %v", path, err)
				}
				return nil
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), fast5.Extension) {
				paths <- path
			}
			return nil
		})
		close(paths)
	}()

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				if canon, ok := match(path, ids, locate, verbose); ok {
					matches <- canon
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(matches)
	}()

	seen := make(map[string]struct{})
	var count int
	var writeErr error
	for canon := range matches {
		if _, dup := seen[canon]; dup {
			continue
		}
		seen[canon] = struct{}{}
		if writeErr != nil {
			continue
		}
		if _, err := fmt.Fprintln(sink, canon); err != nil {
			writeErr = err
			continue
		}
		count++
	}

	if walkErr != nil {
		return count, walkErr
	}
	return count, writeErr
}

// match runs the locator on one candidate file and reports its
// canonical path when the id is in the reference set. Locator and path
// resolution failures skip the file.
func match(path string, ids map[string]struct{}, locate Locator, verbose bool) (string, bool) {
	id, err := locate(path)
	if err != nil {
		if verbose {
			log.Printf("skipping %s: %v", path, err)
		}
		return "", false
	}
	if _, ok := ids[id]; !ok {
		return "", false
	}
	canon, err := filepath.EvalSymlinks(path)
	if err != nil {
		if verbose {
			log.Printf("skipping %s: %v", path, err)
		}
		return "", false
	}
	canon, err = filepath.Abs(canon)
	if err != nil {
		if verbose {
			log.Printf("skipping %s: %v", path, err)
		}
		return "", false
	}
	return canon, true
}
