package render

// Origin tags where a fixed-tree node's text can be reused from. There are
// exactly two origins; a node with neither is absent from the provenance
// table and must be synthesized.
type Origin uint8

const (
	// OriginTarget marks a node reused unchanged from the file being fixed,
	// reached through a metavariable binding.
	OriginTarget Origin = iota
	// OriginFixPattern marks a node reused unchanged from the rule's
	// replacement pattern.
	OriginFixPattern
)

func (o Origin) String() string {
	switch o {
	case OriginTarget:
		return "target"
	case OriginFixPattern:
		return "fix-pattern"
	}
	return "unknown"
}
