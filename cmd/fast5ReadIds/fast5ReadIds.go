package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/conchoecia/fast5-in-ref/fast5"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"golang.org/x/exp/slices"
)

func usage() {
	fmt.Print(
		"fast5ReadIds - List the read id stored in every fast5 file under a directory.\n" +
			"Prints read id and path, tab separated, sorted by read id.\n" +
			"Usage:\n" +
			"fast5ReadIds [options] -d fast5Dir/ > readIds.txt\n\n")
	flag.PrintDefaults()
}

func main() {
	dir := flag.String("d", "", "Directory to search for fast5 files. Searched recursively.")
	output := flag.String("o", "stdout", "Output file.")
	verbose := flag.Bool("v", false, "Log a note for each unreadable fast5 file instead of skipping silently.")
	flag.Parse()

	if *dir == "" {
		usage()
		log.Fatal("ERROR: must input a fast5 directory (-d).")
	}

	fast5ReadIds(*dir, *output, *verbose)
}

func fast5ReadIds(dir, output string, verbose bool) {
	var lines []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if verbose {
				log.Printf("skipping %s: %v", path, err)
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), fast5.Extension) {
			return nil
		}
		id, err := fast5.ReadId(path)
		if err != nil {
			if verbose {
				log.Printf("skipping %s: %v", path, err)
			}
			return nil
		}
		lines = append(lines, id+"\t"+path)
		return nil
	})
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	slices.Sort(lines)

	out := fileio.EasyCreate(output)
	for i := range lines {
		fmt.Fprintln(out, lines[i])
	}
	err = out.Close()
	exception.PanicOnErr(err)

	log.Printf("read %d fast5 files\n", len(lines))
}
