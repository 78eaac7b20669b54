package erp

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/dispatch/backend/internal/domain/orders"
)

const exportResultElement = "wsExportDataByIdResult"

// collectElementText streams through the document and returns the
// concatenated character data of the first element whose local name matches,
// regardless of namespace prefix. found is false when no such element exists.
func collectElementText(r io.Reader, localName string) (text string, found bool, err error) {
	dec := xml.NewDecoder(r)
	var buf strings.Builder
	depth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth > 0 {
				depth++
			} else if t.Name.Local == localName {
				depth = 1
			}
		case xml.CharData:
			if depth > 0 {
				buf.Write(t)
			}
		case xml.EndElement:
			if depth > 0 {
				depth--
				if depth == 0 {
					return buf.String(), true, nil
				}
			}
		}
	}
}

// unwrapInnerDocument pulls the escaped inner XML document out of the
// export response. The upstream double-encodes the dataset: the result
// element's text is itself an XML document with entities escaped.
func unwrapInnerDocument(outer []byte) (string, error) {
	content, found, err := collectElementText(bytes.NewReader(outer), exportResultElement)
	if err != nil {
		return "", fmt.Errorf("%w: %v", orders.ErrMalformedResponse, err)
	}
	if !found || strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: no export payload in response", orders.ErrEmptyResult)
	}
	return html.UnescapeString(content), nil
}

// detectFault reports whether the body carries a SOAP fault and, if so,
// its faultstring.
func detectFault(body []byte) (string, bool) {
	if !bytes.Contains(body, []byte("Fault")) {
		return "", false
	}
	faultString, found, err := collectElementText(bytes.NewReader(body), "faultstring")
	if err != nil || !found {
		return "", false
	}
	return faultString, true
}

var authFaultPatterns = []string{
	"Authentication failed",
	"Invalid token",
	"Token expired",
}

// isAuthFault reports whether a faultstring indicates the token was
// rejected, meaning a fresh authentication may succeed.
func isAuthFault(faultString string) bool {
	for _, p := range authFaultPatterns {
		if strings.Contains(faultString, p) {
			return true
		}
	}
	return false
}
