package legacy

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/s0up4200/petpy/petfinder"
)

// Response is the raw body of one v1 call.
type Response struct {
	Method string
	Format Format
	Body   []byte

	lastOffset string
}

// Decode parses a JSON response into its generic form.
func (r *Response) Decode() (map[string]any, error) {
	if r.Format != FormatJSON {
		return nil, fmt.Errorf("%s: %w", r.Method, ErrNotJSON)
	}

	var out map[string]any
	dec := json.NewDecoder(bytes.NewReader(r.Body))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", r.Method, err)
	}
	return out, nil
}

// NextOffset returns the lastOffset reported by the response, if any.
func (r *Response) NextOffset() (int, bool) {
	if r.lastOffset == "" {
		return 0, false
	}
	n, err := strconv.Atoi(r.lastOffset)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (r *Response) String() string {
	return string(r.Body)
}

// text is the {"$t": value} wrapper v1 uses for every JSON scalar.
type text struct {
	Value string
}

func (t *text) UnmarshalJSON(data []byte) error {
	var raw struct {
		T any `json:"$t"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.T != nil {
		t.Value = strings.TrimSpace(fmt.Sprint(raw.T))
	}
	return nil
}

type envelopeHeader struct {
	Code    string
	Message string
}

type jsonEnvelope struct {
	Petfinder struct {
		Header struct {
			Status struct {
				Code    text `json:"code"`
				Message text `json:"message"`
			} `json:"status"`
		} `json:"header"`
		LastOffset text `json:"lastOffset"`
	} `json:"petfinder"`
}

type xmlEnvelope struct {
	XMLName xml.Name `xml:"petfinder"`
	Header  struct {
		Status struct {
			Code    string `xml:"code"`
			Message string `xml:"message"`
		} `xml:"status"`
	} `xml:"header"`
	LastOffset string `xml:"lastOffset"`
}

// parseEnvelope reads the status header and lastOffset of a body.
func parseEnvelope(format Format, body []byte) (envelopeHeader, string, error) {
	switch format {
	case FormatXML:
		var env xmlEnvelope
		if err := xml.Unmarshal(body, &env); err != nil {
			return envelopeHeader{}, "", fmt.Errorf("%w: invalid XML response: %v", petfinder.ErrUnexpected, err)
		}
		h := envelopeHeader{
			Code:    strings.TrimSpace(env.Header.Status.Code),
			Message: strings.TrimSpace(env.Header.Status.Message),
		}
		return h, strings.TrimSpace(env.LastOffset), nil
	default:
		var env jsonEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return envelopeHeader{}, "", fmt.Errorf("%w: invalid JSON response: %v", petfinder.ErrUnexpected, err)
		}
		h := envelopeHeader{
			Code:    env.Petfinder.Header.Status.Code.Value,
			Message: env.Petfinder.Header.Status.Message.Value,
		}
		return h, env.Petfinder.LastOffset.Value, nil
	}
}

// statusError converts a non-OK header into an APIError. An absent code is
// treated as success.
func statusError(method string, h envelopeHeader) error {
	if h.Code == "" {
		return nil
	}
	code, err := strconv.Atoi(h.Code)
	if err != nil {
		return &APIError{Method: method, Code: StatusInternal, Message: "malformed status code " + h.Code}
	}
	if code == StatusOK {
		return nil
	}
	return &APIError{Method: method, Code: code, Message: h.Message}
}
