package tokenizer

import (
	"errors"

	"github.com/pkoukk/tiktoken-go"
)

// errNilEncoding is returned by a counter built without a tiktoken encoding.
var errNilEncoding = errors.New("nil tiktoken encoder")

// openAICounter counts tokens with a tiktoken BPE encoding.
type openAICounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter openAICounter) Name() string {
	return counter.name
}

func (counter openAICounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errNilEncoding
	}
	return len(counter.encoding.Encode(input, nil, nil)), nil
}
