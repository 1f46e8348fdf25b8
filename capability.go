package sensitive

// Struct tag names read by Processor.
const (
	// TagSeal marks a field to be sealed on Store and opened on Load:
	// `sensitive:"encrypt"` or `sensitive:"lower"`.
	TagSeal = "sensitive"

	// TagMask marks a field to be masked by Display: `mask:"email"`.
	TagMask = "mask"
)

// SealAction represents how a tagged field is sealed.
type SealAction string

const (
	// SealEncrypt seals the value as is.
	SealEncrypt SealAction = "encrypt"

	// SealLower lower-cases the value before sealing it.
	SealLower SealAction = "lower"
)

// validSealActions contains all valid seal actions for tag validation.
var validSealActions = map[SealAction]bool{
	SealEncrypt: true,
	SealLower:   true,
}

// validMaskTypes contains all valid mask types for tag validation.
var validMaskTypes = map[MaskType]bool{
	MaskEmail:      true,
	MaskPhone:      true,
	MaskName:       true,
	MaskPostal:     true,
	MaskAddress:    true,
	MaskCoordinate: true,
	MaskFull:       true,
}

// IsValidSealAction returns true if the action is a known seal action.
func IsValidSealAction(action SealAction) bool {
	return validSealActions[action]
}

// IsValidMaskType returns true if the type is a known mask type.
func IsValidMaskType(mt MaskType) bool {
	return validMaskTypes[mt]
}
