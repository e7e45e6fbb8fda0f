package progress

// DefaultKey is the storage key the tracker has always written to.
const DefaultKey = "courseStatus"

// Options tunes persistence behaviour.
type Options struct {
	// Key is the storage key; DefaultKey when empty.
	Key string
	// ResetOnCorrupt reseeds from the curriculum when the persisted snapshot
	// cannot be decoded, instead of failing Initialize.
	ResetOnCorrupt bool
}
