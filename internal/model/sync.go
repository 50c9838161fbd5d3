package model

// SyncFailedSentinel is the legacy string contract: booking surfaces that
// only understand "code or sentinel" get this value in place of a real code.
const SyncFailedSentinel = "SYNC_FAILED"

// SyncResult is the structured outcome of one CRM sync. It replaces the bare
// sentinel string so a failure can never be mistaken for a real code.
type SyncResult struct {
	Synced          bool   `json:"synced"`
	AppointmentCode string `json:"appointment_code,omitempty"`
	FailureReason   string `json:"failure_reason,omitempty"`
}

// Code returns the CRM appointment code on success and the failure sentinel
// otherwise. Surfaces persist this value verbatim.
func (r SyncResult) Code() string {
	if r.Synced {
		return r.AppointmentCode
	}
	return SyncFailedSentinel
}

func SyncSucceeded(code string) SyncResult {
	return SyncResult{Synced: true, AppointmentCode: code}
}

func SyncFailed(reason string) SyncResult {
	return SyncResult{Synced: false, FailureReason: reason}
}
