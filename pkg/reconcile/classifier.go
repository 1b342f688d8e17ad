package reconcile

// Outcome is the control decision for one send cycle. It is what keeps an
// assistant Q&A turn from being mistaken for a finished interaction log.
type Outcome string

const (
	OutcomeSubmit             Outcome = "SUBMIT"
	OutcomeNoSubmit           Outcome = "NO_SUBMIT"
	OutcomeInvalidEmptySubmit Outcome = "INVALID_EMPTY_SUBMIT"
)

// ActionManualFormSubmit stands in for the assistant action type when the
// user submits the form without typing a message.
const ActionManualFormSubmit = "MANUAL_FORM_SUBMIT"

// informationalActions is the closed set of assistant action types that
// only executed a lookup, asked for more information, or answered a
// general query. Turns carrying one of these merge their extraction but
// never persist.
var informationalActions = map[string]struct{}{
	"RETRIEVE_HCP_PROFILE_EXECUTED": {},
	"SUGGEST_NEXT_ACTION_EXECUTED":  {},
	"QUERY_PRODUCT_INFO_EXECUTED":   {},
	"RETRIEVE_HCP_PROFILE":          {},
	"SUGGEST_NEXT_ACTION":           {},
	"QUERY_PRODUCT_INFO":            {},
	"NEED_MORE_INFO":                {},
	"GENERAL_QUERY":                 {},
}

// IsInformational reports whether actionType belongs to the closed
// informational/tool set.
func IsInformational(actionType string) bool {
	_, ok := informationalActions[actionType]
	return ok
}

// Classify decides whether the current cycle terminates in a submission.
// typedMessage tells whether the cycle had a non-empty user message;
// recordEmpty reflects the record state at cycle start. Unclassified action
// types are submit-eligible.
func Classify(actionType string, typedMessage, recordEmpty bool) Outcome {
	if !typedMessage && recordEmpty {
		return OutcomeInvalidEmptySubmit
	}
	if IsInformational(actionType) {
		return OutcomeNoSubmit
	}
	return OutcomeSubmit
}
