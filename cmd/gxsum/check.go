package main

import (
	"context"
	"fmt"

	"github.com/hupe1980/gxhash/codec"
	"github.com/hupe1980/gxhash/manifest"
)

type checkRecord struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Expected string `json:"expected"`
	Actual   string `json:"actual,omitempty"`
	Error    string `json:"error,omitempty"`
}

// check verifies every entry of the -c manifest.
func (a *app) check(ctx context.Context) int {
	m, err := a.loadManifest(ctx, a.opts.check)
	if err != nil {
		a.errorf(a.opts.check, err)
		return exitFailure
	}
	if m.Len() == 0 {
		a.errorf(a.opts.check, fmt.Errorf("no properly formatted checksum lines found"))
		return exitFailure
	}

	results, err := manifest.Verify(ctx, m, a.open,
		manifest.WithConcurrency(a.opts.jobs),
		manifest.WithHashOptions(a.hashOptions(0)...),
	)
	if err != nil {
		a.errorf("gxsum", err)
		return exitFailure
	}

	if a.opts.json {
		records := make([]checkRecord, len(results))
		for i, r := range results {
			records[i] = checkRecord{
				Name:     r.Entry.Name,
				Status:   r.Status.String(),
				Expected: r.Entry.Digest,
				Actual:   r.Actual,
			}
			if r.Err != nil {
				records[i].Error = r.Err.Error()
			}
		}
		b, err := codec.MarshalIndent(nil, records)
		if err != nil {
			a.errorf("gxsum", err)
			return exitFailure
		}
		fmt.Fprintf(a.stdout, "%s\n", b)
	} else {
		for _, r := range results {
			if r.OK() && a.opts.quiet {
				continue
			}
			fmt.Fprintf(a.stdout, "%s: %s\n", r.Entry.Name, r.Status)
			if r.Err != nil {
				a.errorf(r.Entry.Name, r.Err)
			}
		}
	}

	var mismatched, unreadable int
	for _, r := range results {
		switch r.Status {
		case manifest.StatusMismatch:
			mismatched++
		case manifest.StatusMissing, manifest.StatusError:
			unreadable++
		}
	}
	if unreadable > 0 {
		fmt.Fprintf(a.stderr, "gxsum: WARNING: %d listed %s could not be read\n", unreadable, plural(unreadable, "file"))
	}
	if mismatched > 0 {
		fmt.Fprintf(a.stderr, "gxsum: WARNING: %d computed %s did NOT match\n", mismatched, plural(mismatched, "checksum"))
	}
	if mismatched+unreadable > 0 {
		return exitFailure
	}
	return exitOK
}

func (a *app) loadManifest(ctx context.Context, name string) (*manifest.Manifest, error) {
	if name == stdinName {
		return manifest.Parse(a.stdin, manifest.FormatText)
	}
	st, key, err := a.sources.resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	return manifest.NewStore(st).Get(ctx, key)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
