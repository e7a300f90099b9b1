package hashlib

import "github.com/hupe1980/gxhash/resource"

// DefaultChunkSize is the read size used by FileDigest.
const DefaultChunkSize = 256 << 10

type options struct {
	seed            int64
	usedForSecurity bool
	chunkSize       int
	rc              *resource.Controller
}

// Option configures a digest. Options that do not apply to a call are
// ignored.
type Option func(*options)

// WithSeed sets the hash seed. The default is 0.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithUsedForSecurity is accepted for compatibility with hashlib-style
// constructors. GxHash is never suitable for security purposes.
func WithUsedForSecurity(v bool) Option {
	return func(o *options) {
		o.usedForSecurity = v
	}
}

// WithChunkSize sets the read size for FileDigest. Values <= 0 select
// DefaultChunkSize.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// WithResourceController throttles FileDigest reads with rc's IO limit.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		chunkSize: DefaultChunkSize,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.chunkSize <= 0 {
		o.chunkSize = DefaultChunkSize
	}
	return o
}
