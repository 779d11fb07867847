package ml

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxSimilarProducts caps the number of matches taken from a model reply
const MaxSimilarProducts = 5

var errNoJSONList = errors.New("reply does not contain a JSON list")

// SimilarProduct is one image match
type SimilarProduct struct {
	ProductID  uint    `json:"product_id"`
	Similarity float64 `json:"similarity"`
}

// ParseResult is the outcome of reading a model reply: ParsedList or ParseFailure
type ParseResult[T any] interface {
	isParseResult()
}

// ParsedList holds the items recovered from a reply
type ParsedList[T any] struct {
	Items []T
}

// ParseFailure keeps the raw reply and the reason it could not be used
type ParseFailure[T any] struct {
	Raw string
	Err error
}

func (ParsedList[T]) isParseResult()   {}
func (ParseFailure[T]) isParseResult() {}

// ParseSimilarProducts reads a list of {product_id, similarity} objects.
// Only the first MaxSimilarProducts elements are considered.
func ParseSimilarProducts(raw string) ParseResult[SimilarProduct] {
	elems, err := decodeList(raw)
	if err != nil {
		return ParseFailure[SimilarProduct]{Raw: raw, Err: err}
	}
	if len(elems) > MaxSimilarProducts {
		elems = elems[:MaxSimilarProducts]
	}

	items := make([]SimilarProduct, 0, len(elems))
	for _, elem := range elems {
		obj, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		id, ok := productID(obj["product_id"])
		if !ok {
			continue
		}
		item := SimilarProduct{ProductID: id}
		if n, ok := obj["similarity"].(json.Number); ok {
			item.Similarity, _ = n.Float64()
		}
		items = append(items, item)
	}
	return ParsedList[SimilarProduct]{Items: items}
}

// ParseProductIDs reads a list of ids. Non-negative integers and digit strings
// are kept, anything else is dropped.
func ParseProductIDs(raw string) ParseResult[uint] {
	elems, err := decodeList(raw)
	if err != nil {
		return ParseFailure[uint]{Raw: raw, Err: err}
	}

	ids := make([]uint, 0, len(elems))
	for _, elem := range elems {
		if id, ok := productID(elem); ok {
			ids = append(ids, id)
		}
	}
	return ParsedList[uint]{Items: ids}
}

// decodeList pulls the outermost [...] out of a reply; models tend to wrap JSON in prose.
func decodeList(raw string) ([]any, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end < start {
		return nil, errNoJSONList
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw[start : end+1])))
	dec.UseNumber()

	var elems []any
	if err := dec.Decode(&elems); err != nil {
		return nil, fmt.Errorf("invalid JSON list: %w", err)
	}
	return elems, nil
}

func productID(v any) (uint, bool) {
	switch x := v.(type) {
	case json.Number:
		n, err := strconv.ParseUint(x.String(), 10, 64)
		if err != nil {
			return 0, false
		}
		return uint(n), true
	case string:
		if x == "" || strings.TrimLeft(x, "0123456789") != "" {
			return 0, false
		}
		n, err := strconv.ParseUint(x, 10, 64)
		if err != nil {
			return 0, false
		}
		return uint(n), true
	default:
		return 0, false
	}
}
