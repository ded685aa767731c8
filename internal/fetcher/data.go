package fetcher

// Response is what a Fetcher hands back for one identifier.
// Status and body each carry a presence flag so that envelopes missing
// either field can be told apart from zero values.
type Response struct {
	statusCode int
	body       string
	hasStatus  bool
	hasBody    bool
}

func NewResponse(statusCode int, body string) Response {
	return Response{
		statusCode: statusCode,
		body:       body,
		hasStatus:  true,
		hasBody:    true,
	}
}

// NewPartialResponse builds a Response where a nil argument marks the
// corresponding field as absent.
func NewPartialResponse(statusCode *int, body *string) Response {
	r := Response{}
	if statusCode != nil {
		r.statusCode = *statusCode
		r.hasStatus = true
	}
	if body != nil {
		r.body = *body
		r.hasBody = true
	}
	return r
}

func (r Response) StatusCode() int {
	return r.statusCode
}

func (r Response) Body() string {
	return r.body
}

func (r Response) HasStatus() bool {
	return r.hasStatus
}

func (r Response) HasBody() bool {
	return r.hasBody
}

// Complete reports whether both the status and the body are present.
func (r Response) Complete() bool {
	return r.hasStatus && r.hasBody
}
