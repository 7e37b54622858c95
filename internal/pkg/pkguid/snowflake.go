package pkguid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Epoch is the snowflake epoch for record row IDs: 2025-01-01T00:00:00Z.
const Epoch int64 = 1735689600000

// maxNode is the largest node ID for the library's default 10 node bits.
const maxNode = 1<<10 - 1

var setEpoch sync.Once

// Snowflake generates time-ordered numeric IDs.
type Snowflake struct {
	node *snowflake.Node
}

func randomNodeID() (int64, error) {
	var nodeID int64
	if err := binary.Read(rand.Reader, binary.BigEndian, &nodeID); err != nil {
		return 0, err
	}
	return nodeID & maxNode, nil
}

// NewSnowflake constructs a generator on a random node.
func NewSnowflake() (*Snowflake, error) {
	nodeID, err := randomNodeID()
	if err != nil {
		return nil, err
	}
	return NewSnowflakeNode(nodeID)
}

// NewSnowflakeNode constructs a generator on a fixed node, for deployments
// that assign one node ID per instance. A negative node picks one at random.
func NewSnowflakeNode(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 {
		return NewSnowflake()
	}
	if nodeID > maxNode {
		return nil, fmt.Errorf("snowflake node %d out of range 0..%d", nodeID, maxNode)
	}

	setEpoch.Do(func() { snowflake.Epoch = Epoch })

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new unique numeric ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
