package loan

type Status string

const (
	StatusRequested                   Status = "REQUESTED"
	StatusApprovedPendingConfirmation Status = "APPROVED_PENDING_CONFIRMATION"
	StatusActive                      Status = "ACTIVE"
	StatusRepaymentSubmitted          Status = "REPAYMENT_SUBMITTED"
	StatusCleared                     Status = "CLEARED"
	StatusRescinded                   Status = "RESCINDED"
	StatusDefaulted                   Status = "DEFAULTED"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusRequested,
	StatusApprovedPendingConfirmation,
	StatusActive,
	StatusRepaymentSubmitted,
	StatusCleared,
	StatusRescinded,
	StatusDefaulted,
}

func (s Status) Valid() bool {
	switch s {
	case StatusRequested, StatusApprovedPendingConfirmation, StatusActive,
		StatusRepaymentSubmitted, StatusCleared, StatusRescinded, StatusDefaulted:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	switch s {
	case StatusCleared, StatusRescinded, StatusDefaulted:
		return true
	case StatusRequested, StatusApprovedPendingConfirmation, StatusActive, StatusRepaymentSubmitted:
		return false
	}
	return false
}

// Outstanding reports whether money is out with the loanee.
func (s Status) Outstanding() bool {
	return s == StatusActive || s == StatusRepaymentSubmitted
}

func (s Status) Label() string {
	switch s {
	case StatusRequested:
		return "Requested"
	case StatusApprovedPendingConfirmation:
		return "Disbursement Sent - Waiting Confirmation"
	case StatusActive:
		return "Active"
	case StatusRepaymentSubmitted:
		return "Repayment Review"
	case StatusCleared:
		return "Cleared"
	case StatusRescinded:
		return "Rescinded"
	case StatusDefaulted:
		return "Defaulted"
	}
	return string(s)
}

// Color is the badge colour clients use for the status.
func (s Status) Color() string {
	switch s {
	case StatusRequested:
		return "yellow"
	case StatusApprovedPendingConfirmation, StatusRepaymentSubmitted:
		return "blue"
	case StatusActive:
		return "green"
	case StatusCleared:
		return "gray"
	case StatusRescinded, StatusDefaulted:
		return "red"
	}
	return "gray"
}
