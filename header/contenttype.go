package header

import (
	"fmt"
	"mime"
	"strings"
)

/*
MediaType is a media type value for the Content-Type and Accept headers.
Non default types are built with the family constructors:

	header.Text("csv")
*/
type MediaType struct {
	Type    string
	Subtype string
}

// Default media types.
var (
	JSON           = Application("json")
	FormURLEncoded = Application("x-www-form-urlencoded")
	PlainText      = Text("plain")
	OctetStream    = Application("octet-stream")
)

func Application(subtype string) MediaType { return MediaType{"application", subtype} }
func Text(subtype string) MediaType        { return MediaType{"text", subtype} }
func Video(subtype string) MediaType       { return MediaType{"video", subtype} }
func Audio(subtype string) MediaType       { return MediaType{"audio", subtype} }
func Image(subtype string) MediaType       { return MediaType{"image", subtype} }
func Multipart(subtype string) MediaType   { return MediaType{"multipart", subtype} }

// Value renders the media type, e.g. "application/json".
func (c MediaType) Value() string {
	return strings.ToLower(c.Type) + "/" + strings.ToLower(c.Subtype)
}

// String is the same as Value.
func (c MediaType) String() string {
	return c.Value()
}

// WithParam renders the media type with one parameter,
// e.g. "application/json; charset=utf-8".
func (c MediaType) WithParam(key, value string) string {
	formatted := mime.FormatMediaType(c.Value(), map[string]string{key: value})
	if formatted == "" {
		return c.Value()
	}
	return formatted
}

// ParseMediaType extracts the media type from a header value, dropping
// any parameters.
func ParseMediaType(value string) (MediaType, error) {
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return MediaType{}, fmt.Errorf("invalid content type %q: %w", value, err)
	}
	parts := strings.SplitN(mediaType, "/", 2)
	if len(parts) != 2 {
		return MediaType{}, fmt.Errorf("invalid content type %q", value)
	}
	return MediaType{Type: parts[0], Subtype: parts[1]}, nil
}
