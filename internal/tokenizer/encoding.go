package tokenizer

import (
	"errors"

	"github.com/pkoukk/tiktoken-go"
)

var errMissingEncoding = errors.New("tokenizer encoding is not initialized")

// encodingCounter counts tokens with a tiktoken byte-pair encoding.
type encodingCounter struct {
	encoding     *tiktoken.Tiktoken
	encodingName string
}

func (counter encodingCounter) Name() string {
	return counter.encodingName
}

func (counter encodingCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errMissingEncoding
	}
	return len(counter.encoding.Encode(input, nil, nil)), nil
}
