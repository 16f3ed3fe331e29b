package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/conchoecia/fast5-in-ref/fast5"
	"github.com/conchoecia/fast5-in-ref/readset"
	"github.com/conchoecia/fast5-in-ref/reconcile"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

func usage() {
	fmt.Print(
		"fast5InRef - Find the fast5 files whose reads appear in a fastq/sam/bam reference.\n" +
			"Prints one absolute fast5 path per line for every read in the reference.\n" +
			"Usage:\n" +
			"fast5InRef [options] -d fast5Dir/ -r reads.fastq > paths.txt\n\n")
	flag.PrintDefaults()
}

func main() {
	dir := flag.String("d", "", "Directory to search for fast5 files. Searched recursively.")
	ref := flag.String("r", "", "Reference file naming the reads to keep. Must end in .fastq, .fq, .sam, or .bam.")
	output := flag.String("o", "stdout", "Output file for matching fast5 paths.")
	threads := flag.Int("t", 1, "Number of worker threads for opening fast5 files. Output order is unspecified above 1.")
	verbose := flag.Bool("v", false, "Log a note for each unreadable fast5 file instead of skipping silently.")
	flag.Parse()

	if *dir == "" || *ref == "" {
		usage()
		log.Fatal("ERROR: must input a fast5 directory (-d) and a reference file (-r).")
	}

	fast5InRef(*dir, *ref, *output, *threads, *verbose)
}

func fast5InRef(dir, ref, output string, threads int, verbose bool) {
	ids, err := readset.Extract(ref)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	out := fileio.EasyCreate(output)
	n, err := reconcile.Tree(dir, ids, fast5.ReadId, out, threads, verbose)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	err = out.Close()
	exception.PanicOnErr(err)

	log.Printf("found %d matching fast5 files\n", n)
}
