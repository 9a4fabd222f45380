// Command parquet-diff compares two Parquet files for schema and value
// equivalence, printing a short unified-style block for the first
// difference found.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/flarco/g"
	"github.com/integrii/flaggy"

	"github.com/dataflowkit/parquet-tools/core/diff"
	"github.com/dataflowkit/parquet-tools/core/pqcol"
	"github.com/dataflowkit/parquet-tools/core/stream"
)

var (
	leftPath  = ""
	rightPath = ""
	quiet     = false
	verbose   = false
)

func main() {
	flaggy.SetName("parquet-diff")
	flaggy.SetDescription("Compares two Parquet files for schema and value equivalence.")

	flaggy.Bool(&quiet, "q", "quiet", "Suppress the difference message; only the exit code reports the outcome")
	flaggy.Bool(&verbose, "v", "verbose", "Emit debug logging to stderr")
	flaggy.AddPositionalValue(&leftPath, "FILE_A", 1, true, "Path to the first Parquet file")
	flaggy.AddPositionalValue(&rightPath, "FILE_B", 2, true, "Path to the second Parquet file")
	flaggy.Parse()

	if verbose {
		os.Setenv("DEBUG", "DEBUG")
	}

	os.Exit(run())
}

// run returns the process exit code directly rather than an error, since
// parquet-diff's exit code (0 equal, 1 different, 2 unsupported) is itself
// the primary output.
func run() int {
	left, err := stream.Open(leftPath)
	if err != nil {
		g.LogError(err)
		if errors.Is(err, pqcol.ErrNestedColumn) {
			return diff.ExitUnsupported
		}
		return 1
	}
	defer left.Close()

	right, err := stream.Open(rightPath)
	if err != nil {
		g.LogError(err)
		if errors.Is(err, pqcol.ErrNestedColumn) {
			return diff.ExitUnsupported
		}
		return 1
	}
	defer right.Close()

	g.Debug("comparing %s (%d cols, %d rows) against %s (%d cols, %d rows)",
		leftPath, left.NumColumns(), left.NumRows(), rightPath, right.NumColumns(), right.NumRows())

	res, err := diff.Compare(left, right)
	if err != nil {
		g.LogError(err)
		return 1
	}

	if res.Equal {
		return 0
	}

	if !quiet {
		fmt.Println(res.Message)
	}

	if res.Unsupported {
		return diff.ExitUnsupported
	}
	return 1
}
