package sqlstyle

// WithScanCache keeps the scan results of the most recent size
// distinct statements in an LRU cache. Useful when the same statements
// are converted repeatedly with different parameters, as with prepared
// statements in a request loop.
func WithScanCache(size int) Option {
	return func(c *Converter) {
		c.cacheSize = size
	}
}
