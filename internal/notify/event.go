package notify

// Name identifies a published event, matching the names spec §6 enumerates.
type Name string

// Event names published by a Document.
const (
	Replaced      Name = "doc:replaced"
	ReplacedAttr  Name = "doc:replaced-attr"
	StatusChanged Name = "doc:status-changed"
	NotifyViewers Name = "doc:notify-viewers"
	Clip          Name = "Notify:clip"
	Close         Name = "Notify:Close"
	Revisit       Name = "doc:revisit"
)

// Result is a handler's reply, following spec §4.4's convention: Handled
// means "I dealt with this", negative values are caller-defined error
// codes, and Fallthrough means "I did nothing, try the next subscriber" (or
// here, "I had nothing to add").
type Result int

const (
	Fallthrough Result = 0
	Handled     Result = 1
)

// ReplacedPayload accompanies Replaced: the byte range [Start,End) of the
// document that changed.
type ReplacedPayload struct {
	Start, End int64
}

// ReplacedAttrPayload accompanies ReplacedAttr: the mark IDs bounding the
// region whose attributes changed, as uint32 handles (internal/mark.ID)
// so this package does not need to import internal/mark.
type ReplacedAttrPayload struct {
	Mark1, Mark2 uint32
}

// ClipPayload accompanies Clip: a region about to collapse, so observers
// can relocate marks they own that lie within it.
type ClipPayload struct {
	Low, High int64
}
