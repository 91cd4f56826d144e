package ast

// NodeID addresses a node inside its Tree's arena (1-based).
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }
