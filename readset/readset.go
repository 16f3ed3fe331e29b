// Package readset builds the set of read names present in a reference
// file, which may be a fastq sequence listing or a sam/bam alignment
// file. The set is the join key for matching raw-signal containers to
// the reads that survived into downstream analysis.
package readset

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/sam"
)

// ErrUnsupported reports a reference file whose extension is not one of
// fastq, fq, sam, or bam.
var ErrUnsupported = errors.New("unsupported reference format")

// Extract reads every read name in the reference file into a set.
// Format dispatch is by case-sensitive file extension only; there is no
// content sniffing.
func Extract(ref string) (map[string]struct{}, error) {
	switch {
	case strings.HasSuffix(ref, ".fastq"), strings.HasSuffix(ref, ".fq"):
		return fromFastq(ref)
	case strings.HasSuffix(ref, ".sam"), strings.HasSuffix(ref, ".bam"):
		return fromAlignment(ref)
	default:
		return nil, fmt.Errorf("%w: %s (expected .fastq, .fq, .sam, or .bam)", ErrUnsupported, ref)
	}
}

// fromFastq takes the first whitespace-delimited token of every line
// beginning with '@', with the marker stripped. Duplicate names
// collapse in the set.
func fromFastq(ref string) (map[string]struct{}, error) {
	if _, err := os.Stat(ref); err != nil {
		return nil, fmt.Errorf("cannot read reference file: %w", err)
	}
	in := fileio.EasyOpen(ref)
	defer in.Close()

	names := make(map[string]struct{})
	var line string
	var done bool
	for line, done = fileio.EasyNextRealLine(in); !done; line, done = fileio.EasyNextRealLine(in) {
		if !strings.HasPrefix(line, "@") {
			continue
		}
		fields := strings.Fields(line[1:])
		if len(fields) == 0 {
			continue
		}
		names[fields[0]] = struct{}{}
	}
	return names, nil
}

// fromAlignment takes the query name of every record, with no filtering
// on alignment flags: unmapped and secondary records count the same as
// primary ones.
func fromAlignment(ref string) (map[string]struct{}, error) {
	if _, err := os.Stat(ref); err != nil {
		return nil, fmt.Errorf("cannot read reference file: %w", err)
	}
	records, _ := sam.GoReadToChan(ref)

	names := make(map[string]struct{})
	for r := range records {
		names[r.QName] = struct{}{}
	}
	return names, nil
}
