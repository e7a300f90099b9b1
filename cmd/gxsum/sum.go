package main

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/gxhash"
	"github.com/hupe1980/gxhash/hashlib"
	"github.com/hupe1980/gxhash/internal/hex"
	"github.com/hupe1980/gxhash/manifest"
	"github.com/hupe1980/gxhash/resource"
)

type sumResult struct {
	digest string
	err    error
}

// sum hashes every input and writes a manifest of the successful ones.
func (a *app) sum(ctx context.Context) int {
	results := make([]sumResult, len(a.opts.files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.jobs)
	for i, name := range a.opts.files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, err := a.digest(gctx, name)
			results[i] = sumResult{digest: d, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.errorf("gxsum", err)
		return exitFailure
	}

	code := exitOK
	m := manifest.New()
	for i, name := range a.opts.files {
		if err := results[i].err; err != nil {
			a.errorf(name, err)
			code = exitFailure
			continue
		}
		m.Add(manifest.Entry{
			Name:      name,
			Algorithm: a.alg.String(),
			Seed:      a.opts.seed,
			Digest:    results[i].digest,
		})
	}

	if err := a.writeManifest(ctx, m); err != nil {
		a.errorf("gxsum", err)
		return exitFailure
	}
	return code
}

func (a *app) writeManifest(ctx context.Context, m *manifest.Manifest) error {
	if a.opts.output == "" {
		f := manifest.FormatText
		if a.opts.json {
			f = manifest.FormatJSON
		}
		return manifest.Write(a.stdout, m, f)
	}

	st, key, err := a.sources.resolve(ctx, a.opts.output)
	if err != nil {
		return err
	}
	if err := manifest.NewStore(st).Put(ctx, key, m); err != nil {
		return err
	}
	a.logger.Debug("manifest written", "path", a.opts.output, "entries", m.Len())
	return nil
}

// digest returns the hex digest of name. Mapped local files go through the
// dual-mode hasher so large inputs are offloaded to the runtime; everything
// else is streamed through hashlib.
func (a *app) digest(ctx context.Context, name string) (string, error) {
	rc, err := a.open(ctx, name)
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	if mr, ok := rc.(*mappedReader); ok {
		return a.digestBytes(ctx, mr.Bytes())
	}

	h, err := hashlib.FileDigest(ctx, rc, a.alg.String(), a.hashOptions(a.opts.seed)...)
	if err != nil {
		return "", err
	}
	return h.HexDigest(), nil
}

func (a *app) digestBytes(ctx context.Context, data []byte) (string, error) {
	switch a.alg {
	case hashlib.GxHash32:
		return hashWith(ctx, gxhash.W32, a.opts.seed, data, a.hasherOptions()...)
	case hashlib.GxHash64:
		return hashWith(ctx, gxhash.W64, a.opts.seed, data, a.hasherOptions()...)
	default:
		return hashWith(ctx, gxhash.W128, a.opts.seed, data, a.hasherOptions()...)
	}
}

func hashWith[T gxhash.Digest](ctx context.Context, w gxhash.Width[T], seed int64, data []byte, optFns ...gxhash.Option) (string, error) {
	h, err := gxhash.NewHasher(w, seed, optFns...)
	if err != nil {
		return "", err
	}

	v, err := h.HashAsync(ctx, data).Wait(ctx)
	if errors.Is(err, resource.ErrMemoryLimitExceeded) {
		// No room for an owned copy; the mapping outlives this call, so
		// hash it in place.
		v, err = h.Hash(data), nil
	}
	if err != nil {
		return "", err
	}
	return string(hex.AppendEncode(nil, w.AppendDigest(nil, v))), nil
}
