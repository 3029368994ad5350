package reader

// DataIterator yields the elements of one data source, each decoded as the
// type the iterator was created for. It is single-pass.
type DataIterator[T any] interface {
	// Next advances to the next element. It returns false when the source is
	// exhausted or an element failed to decode; Err tells the two apart.
	Next() bool
	Value() T
	Err() error
	// Count is the number of elements in the source, known up front.
	Count() int
	Close() error
}
