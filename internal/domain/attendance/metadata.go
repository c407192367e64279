package attendance

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"
)

// MissedCheckoutMarker is the substring that flags a session as terminally
// missed; once present the escalation scheduler never touches the session
// again.
const MissedCheckoutMarker = "Checkout Not Done"

// IPLogEntry is one entry in the rolling IP audit trail.
type IPLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	IP        string    `json:"ip"`
}

// Metadata is the side-document attached to an attendance record. Every
// mutation path (login, IP tracker, escalation, manual correction) reads and
// writes the whole value, never individual JSON keys.
type Metadata struct {
	Status               string       `json:"status,omitempty"`
	Shift                string       `json:"shift,omitempty"`
	Lat                  *float64     `json:"lat,omitempty"`
	Lng                  *float64     `json:"lng,omitempty"`
	Device               string       `json:"device,omitempty"`
	IPHistory            []IPLogEntry `json:"ipHistory,omitempty"`
	CheckoutReminderSent bool         `json:"checkoutReminderSent,omitempty"`
	Remark               string       `json:"remark,omitempty"`
}

// IsEmpty reports whether nothing has been recorded yet.
func (m Metadata) IsEmpty() bool {
	return m.Status == "" && m.Shift == "" && m.Lat == nil && m.Lng == nil &&
		m.Device == "" && len(m.IPHistory) == 0 && !m.CheckoutReminderSent && m.Remark == ""
}

// IsMissedCheckout reports whether the status carries the terminal
// missed-checkout marker.
func (m Metadata) IsMissedCheckout() bool {
	return strings.Contains(m.Status, MissedCheckoutMarker)
}

// LastIPEntry returns the newest IP audit entry, or nil if the trail is empty.
func (m Metadata) LastIPEntry() *IPLogEntry {
	if len(m.IPHistory) == 0 {
		return nil
	}
	return &m.IPHistory[len(m.IPHistory)-1]
}

// ParseMetadata decodes a raw metadata document. Historical rows contain
// free-form JSON written by several generations of the portal, so a document
// that fails to decode is logged and replaced with an empty state instead of
// failing the read path.
func ParseMetadata(raw []byte) Metadata {
	if len(raw) == 0 {
		return Metadata{}
	}
	var m Metadata
	if err := json.Unmarshal(raw, &m); err != nil {
		slog.Warn("Recovered from malformed attendance metadata", "error", err)
		return Metadata{}
	}
	return m
}

// Encode serializes the metadata document for storage.
func (m Metadata) Encode() ([]byte, error) {
	return json.Marshal(m)
}
