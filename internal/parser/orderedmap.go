package parser

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/iancoleman/orderedmap"
	"github.com/mcncl/jtestgen/internal/errors"
	"github.com/mcncl/jtestgen/internal/models"
)

// wrapperKey holds the document inside the synthetic object the orderedmap
// backend decodes, since orderedmap only accepts objects at the root.
const wrapperKey = "root"

var wrapperPrefix = []byte(`{"` + wrapperKey + `":`)

func decodeOrdered(reader io.Reader) (models.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Value{}, errors.NewParsingError("failed to read JSON input", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return models.Value{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	value, err := singleValue(data)
	if err != nil {
		return models.Value{}, err
	}

	// Only the validated value is wrapped, so nothing can close the wrapper early.
	wrapped := make([]byte, 0, len(wrapperPrefix)+len(value)+1)
	wrapped = append(wrapped, wrapperPrefix...)
	wrapped = append(wrapped, value...)
	wrapped = append(wrapped, '}')

	om := orderedmap.New()
	if err := json.Unmarshal(wrapped, om); err != nil {
		return models.Value{}, errors.NewParsingError("failed to decode JSON", err)
	}

	raw, _ := om.Get(wrapperKey)
	root, err := models.FromInterface(raw)
	if err != nil {
		return models.Value{}, errors.NewParsingError("failed to convert decoded JSON", err)
	}
	return root, nil
}

// singleValue returns the bytes of the one JSON value in data and rejects
// syntax errors and anything following that value.
func singleValue(data []byte) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var first json.RawMessage
	if err := dec.Decode(&first); err != nil {
		return nil, classifyStd(err)
	}
	if dec.InputOffset() == int64(len(data)) {
		return first, nil
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); err == nil {
		return nil, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	}
	return nil, errors.NewParsingError(
		fmt.Sprintf("invalid trailing data after first JSON value at offset %d", dec.InputOffset()),
		errors.ErrInvalidJSON,
	)
}

func classifyStd(err error) error {
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}
