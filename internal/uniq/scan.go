// Package uniq finds columns, and combinations of columns, whose values are
// distinct across every row of a delimited-text file.
//
// A scan is a single synchronous pass: each row is fed to a Tracker, which
// keeps one Record per column and per requested group, and to a Lengths
// accumulator. Nothing is reported until the input is exhausted.
package uniq

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ScanOptions controls a scan.
type ScanOptions struct {
	// Name labels the report, usually the input file name.
	Name string
	// Logger receives debug progress. If nil, slog.Default() is used.
	Logger *slog.Logger
	// ProgressEvery logs progress every N rows; 0 disables it.
	ProgressEvery int
}

// Scan reads every row of src and returns the final report. reg may be nil when
// no groups were requested. Any input or index error aborts the whole scan.
func Scan(src *Source, reg *Registry, opt ScanOptions) (*Report, error) {
	if reg == nil {
		r, err := NewRegistry(nil, "", false)
		if err != nil {
			return nil, err
		}
		reg = r
	}
	log := opt.Logger
	if log == nil {
		log = slog.Default()
	}
	header := src.Header()
	ncol := len(header)
	if err := reg.Validate(ncol); err != nil {
		return nil, err
	}

	tr := NewTracker(ncol, reg)
	lens := NewLengths(ncol)
	log.Debug("scan started", "name", opt.Name, "columns", ncol, "groups", reg.Len())

	for {
		row, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", src.Rows()+1, err)
		}
		lens.Observe(row)
		if err := tr.Observe(row); err != nil {
			return nil, err
		}
		if opt.ProgressEvery > 0 && src.Rows()%opt.ProgressEvery == 0 {
			log.Debug("scan progress", "rows", src.Rows(), "still_unique", tr.Live())
		}
	}

	rep := &Report{
		Name:            opt.Name,
		Rows:            src.Rows(),
		Header:          append([]string(nil), header...),
		MaxLen:          lens.All(),
		Columns:         tr.UniqueColumns(),
		GroupsRequested: reg.Len(),
	}
	for _, key := range tr.UniqueGroups() {
		g, _ := reg.Lookup(key)
		rep.Groups = append(rep.Groups, g)
	}
	log.Debug("scan finished", "name", opt.Name, "rows", rep.Rows,
		"unique_columns", len(rep.Columns), "unique_groups", len(rep.Groups))
	return rep, nil
}
