package menu

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// Codec names the override applied to the raw body before parsing.
type Codec string

const (
	CodecNone  Codec = ""
	CodecCP949 Codec = "cp949"
)

// SniffWindow is how many leading body bytes are searched for a meta charset.
const SniffWindow = 4096

// euc-kr and ks_c_5601 are served by the site interchangeably; cp949 is a
// superset of both.
var codecMarkers = []string{"euc-kr", "ks_c_5601", "cp949"}

var reMetaCharset = regexp.MustCompile(`charset\s*=\s*["']?\s*(euc-kr|ks_c_5601|cp949)`)

// ResolveCodec decides whether the body must be force-decoded as CP949.
// The content type wins; the body prefix is only consulted when the header
// carries no marker.
func ResolveCodec(contentType string, bodyPrefix []byte) Codec {
	ct := strings.ToLower(contentType)
	for _, m := range codecMarkers {
		if strings.Contains(ct, m) {
			return CodecCP949
		}
	}

	if len(bodyPrefix) > SniffWindow {
		bodyPrefix = bodyPrefix[:SniffWindow]
	}
	if reMetaCharset.Match(bytes.ToLower(bodyPrefix)) {
		return CodecCP949
	}
	return CodecNone
}

// newUTF8Reader wraps raw with the single decode pass for codec.
func newUTF8Reader(raw []byte, contentType string, codec Codec) io.Reader {
	if codec == CodecCP949 {
		return transform.NewReader(bytes.NewReader(raw), korean.EUCKR.NewDecoder())
	}
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return bytes.NewReader(raw)
	}
	return r
}

// Decode returns the body as UTF-8 text along with the codec that was applied.
func Decode(raw []byte, contentType string) (string, Codec) {
	codec := ResolveCodec(contentType, raw)
	// invalid sequences come back as U+FFFD, so a read error only truncates
	out, _ := io.ReadAll(newUTF8Reader(raw, contentType, codec))
	return string(out), codec
}
