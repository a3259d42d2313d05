// Package parser decodes upstream vehicle bodies whose format is not known in
// advance. Relays rewrite or drop the upstream Content-Type, so the format is
// sniffed from the body itself: a cheap prefix check picks a decoder and the
// real decode decides the outcome.
package parser

import (
	"bytes"

	"github.com/Nefnief-tech/transit-app-test/internal/models"
)

// Kind tags the result of decoding a body
type Kind int

const (
	// Unparseable means the body was neither a vehicle list nor an upstream error
	Unparseable Kind = iota
	// Success means the body held a (possibly empty) vehicle list
	Success
	// UpstreamError means the body was a vendor error document
	UpstreamError
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case UpstreamError:
		return "upstream-error"
	default:
		return "unparseable"
	}
}

// Format identifies which decoder produced an Outcome
type Format string

const (
	FormatUnknown Format = "unknown"
	FormatJSON    Format = "json"
	FormatXML     Format = "xml"
)

// Outcome is the tagged result of Parse
type Outcome struct {
	Kind     Kind
	Format   Format
	Vehicles []models.VehicleRecord
	Code     string
	Message  string
}

func success(format Format, vehicles []models.VehicleRecord) Outcome {
	if vehicles == nil {
		vehicles = []models.VehicleRecord{}
	}
	return Outcome{Kind: Success, Format: format, Vehicles: vehicles}
}

func upstreamError(format Format, code, message string) Outcome {
	return Outcome{Kind: UpstreamError, Format: format, Code: code, Message: message}
}

func unparseable(format Format) Outcome {
	return Outcome{Kind: Unparseable, Format: format}
}

var utf8BOM = []byte("\xef\xbb\xbf")

// Parse decodes a raw response body.
//
// A body starting with '{' or '[' is decoded as JSON; if that fails and the
// body contains '<' the XML decoder gets a chance too. Any other body containing
// '<' is decoded as XML. Everything else is Unparseable.
func Parse(body []byte) Outcome {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(body, utf8BOM))
	if len(trimmed) == 0 {
		return unparseable(FormatUnknown)
	}

	hasAngle := bytes.IndexByte(trimmed, '<') >= 0

	if trimmed[0] == '{' || trimmed[0] == '[' {
		out := parseJSON(trimmed)
		if out.Kind != Unparseable || !hasAngle {
			return out
		}
	}

	if hasAngle {
		return parseXML(trimmed)
	}

	return unparseable(FormatUnknown)
}
