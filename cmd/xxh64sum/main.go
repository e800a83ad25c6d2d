// Command xxh64sum prints or checks seedable 64-bit xxHash digests.
//
//	xxh64sum [--seed=S] [FILE]...
//	xxh64sum [--seed=S] --check SUMFILE
//
// With no FILE, or when FILE is -, standard input is hashed. Output lines are
// "DIGEST  NAME" with a 16-digit lowercase hex digest; --check verifies lines
// in the same format and exits nonzero if any of them fails.
//
// Inputs are consumed in a single shot: each file is made fully resident
// (mapped read-only when the filesystem allows it) and hashed by one call.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	mmap "github.com/edsrzf/mmap-go"
	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/slicekit/xxh64"
)

var (
	app       = kingpin.New("xxh64sum", "Print or check seedable 64-bit xxHash digests.")
	seedFlag  = app.Flag("seed", "Seed for every digest (decimal or 0x-prefixed hex).").Default("0").String()
	checkFlag = app.Flag("check", "Verify DIGEST  NAME lines from FILE instead of printing digests.").Short('c').PlaceHolder("FILE").String()
	jobsFlag  = app.Flag("jobs", "Hash up to N files concurrently (default GOMAXPROCS).").Short('j').Int()
	fileArgs  = app.Arg("file", "Files to hash; - or none reads standard input.").Strings()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	seed, err := parseSeed(*seedFlag)
	if err != nil {
		app.Fatalf("%v", err)
	}

	var code int
	if *checkFlag != "" {
		code = runCheck(os.Stdout, os.Stderr, *checkFlag, seed)
	} else {
		code = runSum(os.Stdout, os.Stderr, *fileArgs, seed, *jobsFlag)
	}
	os.Exit(code)
}

func parseSeed(s string) (uint64, error) {
	seed, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seed %q: %w", s, err)
	}
	return seed, nil
}

// runSum hashes every path (bounded fan-out) and prints one digest line per
// input, in argument order.
func runSum(out, errw io.Writer, paths []string, seed uint64, jobs int) int {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	type result struct {
		sum uint64
		err error
	}
	results := make([]result, len(paths))

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			sum, err := digestInput(path, seed)
			results[i] = result{sum: sum, err: err}
			return err
		})
	}
	failed := g.Wait() != nil

	for i, path := range paths {
		if results[i].err != nil {
			fmt.Fprintf(errw, "xxh64sum: %v\n", results[i].err)
			continue
		}
		fmt.Fprintf(out, "%016x  %s\n", results[i].sum, path)
	}
	if failed {
		return 1
	}
	return 0
}

// digestInput hashes one input in a single shot. Regular files are mapped
// read-only so the whole content is resident without a copy; standard input,
// empty files and unmappable files are buffered instead.
func digestInput(path string, seed uint64) (uint64, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return 0, err
		}
		return xxh64.Sum64WithSeed(data, seed), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if st, serr := f.Stat(); serr == nil && st.Mode().IsRegular() && st.Size() > 0 {
		if m, merr := mmap.Map(f, mmap.RDONLY, 0); merr == nil {
			sum := xxh64.Sum64WithSeed(m, seed)
			m.Unmap()
			return sum, nil
		}
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return 0, err
	}
	return xxh64.Sum64WithSeed(data, seed), nil
}

// runCheck re-hashes every file named in sumFile and reports OK or FAILED
// per line, coreutils style.
func runCheck(out, errw io.Writer, sumFile string, seed uint64) int {
	f, err := os.Open(sumFile)
	if err != nil {
		fmt.Fprintf(errw, "xxh64sum: %v\n", err)
		return 1
	}
	defer f.Close()

	okMark := color.New(color.FgGreen).SprintFunc()
	failMark := color.New(color.FgRed).SprintFunc()

	var mismatched, unreadable, malformed int
	sc := bufio.NewScanner(f)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		want, name, perr := parseChecksumLine(line)
		if perr != nil {
			fmt.Fprintf(errw, "xxh64sum: %s:%d: %v\n", sumFile, lineNo, perr)
			malformed++
			continue
		}
		got, derr := digestInput(name, seed)
		if derr != nil {
			fmt.Fprintf(errw, "xxh64sum: %v\n", derr)
			fmt.Fprintf(out, "%s: %s\n", name, failMark("FAILED open or read"))
			unreadable++
			continue
		}
		if got != want {
			fmt.Fprintf(out, "%s: %s\n", name, failMark("FAILED"))
			mismatched++
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", name, okMark("OK"))
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(errw, "xxh64sum: %v\n", err)
		return 1
	}

	if malformed > 0 {
		fmt.Fprintf(errw, "xxh64sum: WARNING: %d line(s) improperly formatted\n", malformed)
	}
	if unreadable > 0 {
		fmt.Fprintf(errw, "xxh64sum: WARNING: %d listed file(s) could not be read\n", unreadable)
	}
	if mismatched > 0 {
		fmt.Fprintf(errw, "xxh64sum: WARNING: %d computed checksum(s) did NOT match\n", mismatched)
	}
	if malformed+unreadable+mismatched > 0 {
		return 1
	}
	return 0
}

// parseChecksumLine splits a "DIGEST  NAME" line: 16 hex digits, two spaces,
// then the file name.
func parseChecksumLine(line string) (uint64, string, error) {
	digest, name, ok := strings.Cut(line, "  ")
	if !ok || len(digest) != 16 || name == "" {
		return 0, "", fmt.Errorf("not a digest line: %q", line)
	}
	sum, err := strconv.ParseUint(digest, 16, 64)
	if err != nil {
		return 0, "", fmt.Errorf("bad digest %q: %w", digest, err)
	}
	return sum, name, nil
}
