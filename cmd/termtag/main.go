// termtag is a tool which lists the tags and metadata blocks of audio files.
//
// Usage:
//
//    termtag [OPTION]... FILE...
//
// By default the normalized tags and audio properties of each file are
// listed. With -blocks every metadata block is listed instead, and with -raw
// the unmodified Vorbis comments are listed.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/opDavi1/termtag/tag"
	"golang.org/x/sync/errgroup"

	// Register the FLAC format.
	_ "github.com/opDavi1/termtag/flac"
)

// options controls what is listed for each file.
type options struct {
	// List metadata blocks.
	blocks bool
	// List raw Vorbis comments.
	raw bool
	// Export normalized tags to a ".tags" file next to each input file.
	export bool
	// Force overwrite of exported files.
	force bool
	// Comment normalization policy.
	policy tag.Policy
}

func usage() {
	const use = `
Usage: termtag [OPTION]... FILE...

List the tags of audio files. Supported file extensions: %s.

Flags:
`
	fmt.Fprintf(os.Stderr, use[1:], strings.Join(tag.Extensions(), ", "))
	flag.PrintDefaults()
}

func main() {
	var (
		opts options
		jobs int
	)
	flag.BoolVar(&opts.blocks, "blocks", false, "list metadata blocks")
	flag.BoolVar(&opts.raw, "raw", false, "list raw Vorbis comments")
	flag.BoolVar(&opts.export, "export", false, "export tags to FILE.tags")
	flag.BoolVar(&opts.force, "f", false, "force overwrite of exported files")
	flag.Var(&opts.policy.AlbumArtist, "albumartist", `store album artists as "separate" or "artist"`)
	flag.BoolVar(&opts.policy.SplitDate, "split-date", false, "split dates into year, month and day")
	flag.IntVar(&jobs, "j", runtime.NumCPU(), "number of files to read in parallel")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	paths := flag.Args()

	outputs, err := run(paths, opts, jobs)
	// Print the output of every file read before the first failure.
	for _, out := range outputs {
		fmt.Print(out)
	}
	if err != nil {
		log.Fatalf("%+v", err)
	}
}

// run lists the given files using at most jobs goroutines. The output of each
// file is returned in argument order.
func run(paths []string, opts options, jobs int) ([]string, error) {
	outputs := make([]string, len(paths))
	done := make([]bool, len(paths))
	var g errgroup.Group
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			buf := new(bytes.Buffer)
			if len(paths) > 1 {
				fmt.Fprintf(buf, "%s:\n", path)
			}
			if err := termtag(buf, path, opts); err != nil {
				return err
			}
			outputs[i] = buf.String()
			done[i] = true
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		// Drop output following the first failed file to keep argument order.
		for i := range outputs {
			if !done[i] {
				outputs = outputs[:i]
				break
			}
		}
	}
	return outputs, err
}
