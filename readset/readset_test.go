package readset

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/sam"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func sortedNames(set map[string]struct{}) []string {
	names := maps.Keys(set)
	slices.Sort(names)
	return names
}

func TestExtractFastq(t *testing.T) {
	set, err := Extract("testdata/test.fastq")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"readA", "readB", "readD/1"}
	if got := sortedNames(set); !slices.Equal(got, want) {
		t.Errorf("wrong name set: got %v, want %v", got, want)
	}
}

func TestExtractSam(t *testing.T) {
	set, err := Extract("testdata/test.sam")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// readA appears twice (primary + secondary) and collapses; the
	// unmapped readC record still counts.
	want := []string{"readA", "readC"}
	if got := sortedNames(set); !slices.Equal(got, want) {
		t.Errorf("wrong name set: got %v, want %v", got, want)
	}
}

func TestExtractBam(t *testing.T) {
	bamPath := filepath.Join(t.TempDir(), "test.bam")
	writeTestBam(bamPath, "readA", "readC", "readA")

	set, err := Extract(bamPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"readA", "readC"}
	if got := sortedNames(set); !slices.Equal(got, want) {
		t.Errorf("wrong name set: got %v, want %v", got, want)
	}
}

func TestExtractUnsupported(t *testing.T) {
	for _, ref := range []string{"ref.txt", "ref.fasta", "ref.FASTQ", "ref.fastq.gz"} {
		_, err := Extract(ref)
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("%s: expected ErrUnsupported, got %v", ref, err)
		}
	}
}

func TestExtractMissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "nope.fastq"))
	if err == nil {
		t.Fatal("expected error for missing reference")
	}
	if errors.Is(err, ErrUnsupported) {
		t.Error("missing file should not report an unsupported format")
	}
}

func writeTestBam(path string, names ...string) {
	out := fileio.EasyCreate(path)
	bw := sam.NewBamWriter(out, sam.GenerateHeader(nil, nil, sam.Unsorted, sam.None))

	var s sam.Sam
	s.RName = "*"
	s.RNext = "*"
	s.Flag = 4
	s.Seq = dna.StringToBases("ACGT")
	s.Qual = "IIII"
	for _, name := range names {
		s.QName = name
		sam.WriteToBamFileHandle(bw, s, 0)
	}

	err := bw.Close()
	exception.PanicOnErr(err)
	err = out.Close()
	exception.PanicOnErr(err)
}
