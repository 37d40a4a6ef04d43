package fetcher

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
)

// ErrNotArray is returned when a body expected to hold a JSON array does not
// start with '['.
var ErrNotArray = eris.New("json: expected array")

// DecodeJSONArray streams the elements of a top-level JSON array to fn, one
// element at a time. Decoding stops at the first error from fn or the decoder,
// or when ctx is done. An empty body decodes as an empty array.
func DecodeJSONArray[T any](ctx context.Context, r io.Reader, fn func(T) error) error {
	decoder := json.NewDecoder(r)

	tok, err := decoder.Token()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return eris.Wrap(err, "json: read opening token")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return eris.Wrapf(ErrNotArray, "got %v", tok)
	}

	for i := 0; decoder.More(); i++ {
		if err := ctx.Err(); err != nil {
			return eris.Wrap(err, "json: context cancelled")
		}

		var item T
		if err := decoder.Decode(&item); err != nil {
			return eris.Wrapf(err, "json: decode element %d", i)
		}
		if err := fn(item); err != nil {
			return err
		}
	}

	if _, err := decoder.Token(); err != nil {
		return eris.Wrap(err, "json: read closing token")
	}
	return nil
}

// ReadJSONArray decodes a top-level JSON array into a slice.
func ReadJSONArray[T any](ctx context.Context, r io.Reader) ([]T, error) {
	var out []T
	err := DecodeJSONArray(ctx, r, func(item T) error {
		out = append(out, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeJSONObject decodes a single JSON object from a reader.
func DecodeJSONObject[T any](r io.Reader) (*T, error) {
	var obj T
	if err := json.NewDecoder(r).Decode(&obj); err != nil {
		return nil, eris.Wrap(err, "json: decode object")
	}
	return &obj, nil
}
