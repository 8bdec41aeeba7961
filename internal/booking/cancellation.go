package booking

import "strings"

type CancellationReason string

const (
	ReasonScheduleConflict CancellationReason = "schedule_conflict"
	ReasonIllness          CancellationReason = "illness"
	ReasonWeather          CancellationReason = "weather"
	ReasonLowTicketSales   CancellationReason = "low_ticket_sales"
	ReasonEventCancelled   CancellationReason = "event_cancelled"
	ReasonOther            CancellationReason = "other"
)

var CancellationReasons = []CancellationReason{
	ReasonScheduleConflict,
	ReasonIllness,
	ReasonWeather,
	ReasonLowTicketSales,
	ReasonEventCancelled,
	ReasonOther,
}

// ResolveCancellationReason returns the value stored in cancellation_reason: the free text when
// reason is "other", the enum value otherwise.
func ResolveCancellationReason(reason CancellationReason, otherText string) (string, error) {
	if strings.TrimSpace(string(reason)) == "" {
		return "", ValidationError{Code: "CANCELLATION_REASON_REQUIRED", Message: "a cancellation reason is required"}
	}
	known := false
	for _, r := range CancellationReasons {
		if r == reason {
			known = true
			break
		}
	}
	if !known {
		return "", ValidationError{Code: "VALIDATION_FAILED", Message: "unknown cancellation reason"}
	}
	if reason == ReasonOther {
		text := strings.TrimSpace(otherText)
		if text == "" {
			return "", ValidationError{Code: "CANCELLATION_DETAILS_REQUIRED", Message: "describe the reason when choosing other"}
		}
		return text, nil
	}
	return string(reason), nil
}
