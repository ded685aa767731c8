package quote

// Wire keys of a serialized Result.
const (
	SuccessKey = "Arnie Quote"
	FailureKey = "FAILURE"
)

// UnknownErrorReason replaces an empty failure reason.
const UnknownErrorReason = "unknown error"

type Kind int

const (
	KindSuccess Kind = iota
	KindFailure
)

func (k Kind) String() string {
	if k == KindSuccess {
		return "success"
	}
	return "failure"
}
