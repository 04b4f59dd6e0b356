package embedding

import (
	"encoding/base64"
	"math"
	"strings"

	"github.com/hyperjump/vekta/internal/vector"
)

const (
	imageByteScale    = 255
	imageLengthScale  = 2048
	imagePlaceholderA = 0.2
	imagePlaceholderB = 0.18
)

var base64Encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// ImageEmbedding returns [mean/255, (mean mod 100)/100, len/2048, 0.2, 0.18] over
// the bytes of a "<prefix>,<base64>" data URI. A missing, undecodable or empty
// payload yields the zero vector.
func ImageEmbedding(dataURI string) vector.Vector {
	payload, ok := imagePayload(dataURI)
	if !ok {
		return vector.Zero(Dimensions)
	}
	buf, ok := decodeBase64(payload)
	if !ok || len(buf) == 0 {
		return vector.Zero(Dimensions)
	}

	var sum float64
	for _, b := range buf {
		sum += float64(b)
	}
	mean := sum / float64(len(buf))

	return vector.Vector{
		mean / imageByteScale,
		math.Mod(mean, 100) / 100,
		float64(len(buf)) / imageLengthScale,
		imagePlaceholderA,
		imagePlaceholderB,
	}
}

// imagePayload returns the comma-separated segment that follows the data URI
// prefix. Anything after a second comma is not part of the payload.
func imagePayload(dataURI string) (string, bool) {
	parts := strings.SplitN(dataURI, ",", 3)
	if len(parts) < 2 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// decodeBase64 accepts standard and URL-safe alphabets, with or without padding,
// and ignores ASCII whitespace.
func decodeBase64(s string) ([]byte, bool) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			return -1
		}
		return r
	}, s)
	for _, enc := range base64Encodings {
		if buf, err := enc.DecodeString(s); err == nil {
			return buf, true
		}
	}
	return nil, false
}

// EncodeDataURI wraps raw bytes as a base64 data URI with the given MIME type.
func EncodeDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
