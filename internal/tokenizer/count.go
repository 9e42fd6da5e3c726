package tokenizer

import (
	"errors"
	"strings"
)

// errNilCounter is returned when counting without a Counter.
var errNilCounter = errors.New("nil tokenizer counter")

// CountDocuments estimates the total tokens of documents.
func CountDocuments(counter Counter, documents ...string) (int, error) {
	if counter == nil {
		return 0, errNilCounter
	}
	return counter.CountString(strings.Join(documents, ""))
}
