package kernel

import (
	"fmt"
	"strconv"

	"freight/internal/pkg/errs"

	"github.com/bwmarrin/snowflake"
)

// ID identifies an entity. Valid identities are strictly positive; the zero
// value marks "not assigned".
type ID int64

// NewID validates a raw identity coming from persistence or the API.
func NewID(raw int64) (ID, error) {
	id := ID(raw)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// ParseID parses the decimal form used in URLs and headers.
func ParseID(s string) (ID, error) {
	raw, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return NewID(raw)
}

func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", int64(id)))
	}
	return nil
}

func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func (id ID) IsEqual(other ID) bool {
	return id == other
}

// IDGenerator issues new identities.
type IDGenerator interface {
	NextID() ID
}

// SnowflakeGenerator issues time-ordered identities from a snowflake node.
// Each running instance must use a distinct node number.
type SnowflakeGenerator struct {
	node *snowflake.Node
}

func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("nodeId", err)
	}
	return &SnowflakeGenerator{node: node}, nil
}

func (g *SnowflakeGenerator) NextID() ID {
	return ID(g.node.Generate().Int64())
}
