package parser

import (
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/mcncl/jtestgen/internal/config"
	"github.com/mcncl/jtestgen/internal/errors" // Custom errors package
	"github.com/mcncl/jtestgen/internal/models"
)

// Parse decodes one JSON value from reader with the default backend.
func Parse(reader io.Reader) (models.Document, error) {
	return ParseWith(reader, config.BackendJSONText)
}

// ParseWith decodes one JSON value from reader using the named backend.
func ParseWith(reader io.Reader, backend string) (models.Document, error) {
	var (
		root models.Value
		err  error
	)
	switch backend {
	case config.BackendJSONText:
		root, err = decodeStream(reader)
	case config.BackendOrderedMap:
		root, err = decodeOrdered(reader)
	default:
		return models.Document{}, errors.NewParsingError(fmt.Sprintf("backend '%s' is not supported", backend), errors.ErrUnknownBackend)
	}
	if err != nil {
		return models.Document{}, err
	}
	return models.NewDocument(root), nil
}

func decodeStream(reader io.Reader) (models.Value, error) {
	dec := jsontext.NewDecoder(reader)

	root, err := decodeValue(dec)
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.Value{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return models.Value{}, classify(err)
	}

	// Anything other than EOF after the first value is trailing data.
	if _, err := dec.ReadToken(); err == nil {
		return models.Value{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return models.Value{}, errors.NewParsingError(
			fmt.Sprintf("invalid trailing data after first JSON value: %v", err),
			errors.ErrInvalidJSON,
		)
	}

	return root, nil
}

// decodeValue reads the next complete value, keeping object member order.
func decodeValue(dec *jsontext.Decoder) (models.Value, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return models.Value{}, err
	}

	switch tok.Kind() {
	case 'n':
		return models.Null(), nil
	case 't', 'f':
		return models.Bool(tok.Bool()), nil
	case '"':
		return models.String(tok.String()), nil
	case '0':
		return models.NumberText(tok.Float(), tok.String()), nil
	case '{':
		members := make([]models.Member, 0)
		for dec.PeekKind() != '}' {
			keyTok, err := dec.ReadToken()
			if err != nil {
				return models.Value{}, fmt.Errorf("read object key: %w", err)
			}
			key := keyTok.String()
			val, err := decodeValue(dec)
			if err != nil {
				return models.Value{}, fmt.Errorf("read object value for key %q: %w", key, err)
			}
			members = append(members, models.Member{Key: key, Value: val})
		}
		if _, err := dec.ReadToken(); err != nil { // '}'
			return models.Value{}, fmt.Errorf("read object close: %w", err)
		}
		return models.Object(members...), nil
	case '[':
		items := make([]models.Value, 0)
		for dec.PeekKind() != ']' {
			item, err := decodeValue(dec)
			if err != nil {
				return models.Value{}, fmt.Errorf("read array element %d: %w", len(items), err)
			}
			items = append(items, item)
		}
		if _, err := dec.ReadToken(); err != nil { // ']'
			return models.Value{}, fmt.Errorf("read array close: %w", err)
		}
		return models.Array(items...), nil
	default:
		return models.Value{}, fmt.Errorf("unexpected token kind %v", tok.Kind())
	}
}

// classify turns decoder failures into parsing errors with an offset when known.
func classify(err error) error {
	var syntaxError *jsontext.SyntacticError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.ByteOffset),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Document, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Document{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseFile parses JSON from a file path with the default backend.
func ParseFile(filePath string) (models.Document, error) {
	return ParseFileWith(filePath, config.BackendJSONText)
}

// ParseFileWith parses JSON from a file path using the named backend.
// The file is closed before returning on every path.
func ParseFileWith(filePath, backend string) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.Warn("error closing input file", slog.String("path", filePath), slog.String("error", err.Error()))
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.IsDir() {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("'%s' is a directory", filePath),
			errors.ErrInvalidFilePath,
		)
	}
	if stat.Size() == 0 {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	doc, err := ParseWith(file, backend)
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return models.Document{}, errors.NewParsingError(
				fmt.Sprintf("%s in '%s'", appErr.Message, filePath),
				appErr.Err,
			)
		}
		return models.Document{}, err
	}
	return doc, nil
}
