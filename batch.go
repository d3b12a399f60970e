package william3

// defaultReducer backs BatchHash.
// Reducers are stateless, so sharing one is safe.
var defaultReducer = NewReducer(DefaultReducerConfig())

// BatchHash returns the WILLIAM3 digest of data.
//
// It is equivalent to reducing data with [DefaultReducerConfig]:
// the default contexts, [ShapeLeftFold], and no extra goroutines.
func BatchHash(data []byte) Digest {
	return defaultReducer.Reduce(data)
}
