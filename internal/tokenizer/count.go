package tokenizer

import (
	"errors"

	"github.com/temirov/devassist/internal/utils"
)

var errNilCounter = errors.New("nil tokenizer counter")

// CountResult reports the tokens found in a payload. Counted is false for binary payloads.
type CountResult struct {
	Tokens  int
	Counted bool
}

// CountBytes counts the tokens of a rendered export or any other text payload.
func CountBytes(counter Counter, data []byte) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errNilCounter
	}
	if utils.IsBinary(data) {
		return CountResult{}, nil
	}
	tokenCount, countError := counter.CountString(string(data))
	if countError != nil {
		return CountResult{}, countError
	}
	return CountResult{Tokens: tokenCount, Counted: true}, nil
}
