package wordidx

import (
	"slices"
	"sort"
	"testing"
)

func TestBuild_CountsWords(t *testing.T) {
	idx := Build([]byte("vpc_cidr = var.vpc_cidr # VPC"))

	if got := idx.Count("vpc_cidr"); got != 2 {
		t.Fatalf("vpc_cidr count=%d", got)
	}
	if got := idx.Count("var"); got != 1 {
		t.Fatalf("var count=%d", got)
	}
	// case-insensitive
	if got := idx.Count("vpc"); got != 1 {
		t.Fatalf("vpc count=%d", got)
	}
	if got := idx.Count("missing"); got != 0 {
		t.Fatalf("missing count=%d", got)
	}
}

func TestBuild_InvalidBytesAreDelimiters(t *testing.T) {
	idx := Build([]byte("foo\xff\xfebar"))
	if idx.Count("foo") != 1 || idx.Count("bar") != 1 {
		t.Fatalf("words=%d", idx.Words())
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Update the vpc_cidr to 10.0.0.0/22")
	sort.Strings(got)
	want := []string{"the", "to", "update", "vpc_cidr"}
	if !slices.Equal(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestScore_CapsPerWord(t *testing.T) {
	idx := Build([]byte("cidr cidr cidr cidr cidr cidr cidr cidr"))
	if got := idx.Score([]string{"cidr"}, 3); got != 3 {
		t.Fatalf("score=%d", got)
	}
	if got := idx.Score([]string{"cidr", "vpc"}, 3); got != 3 {
		t.Fatalf("score=%d", got)
	}
}
