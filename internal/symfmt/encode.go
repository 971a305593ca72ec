package symfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Write renders l to w in opts.Format.
func Write(w io.Writer, l Listing, opts Opts) error {
	switch opts.Format {
	case FormatPretty:
		return Pretty(w, l, opts)
	case FormatJSON:
		return JSON(w, l, opts)
	case FormatMsgpack:
		return Msgpack(w, l, opts)
	default:
		return fmt.Errorf("unknown listing format %d", opts.Format)
	}
}

// JSON writes the listing as one indented JSON document.
func JSON(w io.Writer, l Listing, opts Opts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toRecord(l, opts.Stats))
}

// Msgpack writes the listing as a single msgpack-encoded ListingRecord.
func Msgpack(w io.Writer, l Listing, opts Opts) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(toRecord(l, opts.Stats)); err != nil {
		return fmt.Errorf("msgpack listing: %w", err)
	}
	return nil
}

// DecodeMsgpack reads back a listing written by Msgpack.
func DecodeMsgpack(r io.Reader) (ListingRecord, error) {
	var rec ListingRecord
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return ListingRecord{}, fmt.Errorf("msgpack listing: %w", err)
	}
	return rec, nil
}
