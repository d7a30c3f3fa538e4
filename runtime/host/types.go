package host

// PropertyType identifies the value kind of a registered property. The set
// mirrors the host's variant types; hostbind only passes these through.
type PropertyType int

const (
	TypeNil PropertyType = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeNodePath
	TypeObject
)

// String returns the lowercase name of the property type.
func (t PropertyType) String() string {
	switch t {
	case TypeNil:
		return "nil"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeNodePath:
		return "node_path"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// PropertyHint qualifies how the host's inspector presents a property.
type PropertyHint int

const (
	HintNone PropertyHint = iota
	// HintEnum presents the property as a dropdown. The descriptor's
	// HintString carries the ordered labels joined by commas; the host maps
	// selection index to label by position.
	HintEnum
	HintRange
	HintFile
)

// String returns the lowercase name of the property hint.
func (h PropertyHint) String() string {
	switch h {
	case HintNone:
		return "none"
	case HintEnum:
		return "enum"
	case HintRange:
		return "range"
	case HintFile:
		return "file"
	default:
		return "unknown"
	}
}

// PropertyDescriptor is the shape the host expects for property
// registration. Immutable once passed to the host.
type PropertyDescriptor struct {
	Type       PropertyType `json:"type"`
	Hint       PropertyHint `json:"hint"`
	HintString string       `json:"hint_string,omitempty"`
	Default    any          `json:"default,omitempty"`
}

// RPCMode controls who may invoke a remote procedure.
type RPCMode int

const (
	// ModeAuthority is the host's standard unicast mode: only the instance's
	// multiplayer authority may call. Zero value, so it is the default for
	// declarations that leave the mode unspecified.
	ModeAuthority RPCMode = iota
	ModeAnyPeer
	ModeDisabled
)

// String returns the lowercase name of the RPC mode.
func (m RPCMode) String() string {
	switch m {
	case ModeAuthority:
		return "authority"
	case ModeAnyPeer:
		return "any_peer"
	case ModeDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// TransferMode controls delivery guarantees for a remote procedure.
type TransferMode int

const (
	// TransferReliable is the host's default delivery guarantee.
	TransferReliable TransferMode = iota
	TransferUnreliable
	TransferUnreliableOrdered
)

// String returns the lowercase name of the transfer mode.
func (m TransferMode) String() string {
	switch m {
	case TransferReliable:
		return "reliable"
	case TransferUnreliable:
		return "unreliable"
	case TransferUnreliableOrdered:
		return "unreliable_ordered"
	default:
		return "unknown"
	}
}

// RPCConfig describes how a method is exposed over the host's multiplayer
// transport. The zero value of every field is the host default, so partial
// configs fall back field-by-field simply by leaving fields unset.
type RPCConfig struct {
	Mode            RPCMode      `json:"mode"`
	TransferMode    TransferMode `json:"transfer_mode"`
	TransferChannel int          `json:"transfer_channel"`
	CallLocal       bool         `json:"call_local"`
}

// Normalized returns the config with host defaults applied. With the enums
// defined so their zero values are the defaults this is the identity today;
// it exists so the defaulting point is explicit and stays in one place if a
// non-zero default is ever introduced.
func (c RPCConfig) Normalized() RPCConfig {
	return c
}
