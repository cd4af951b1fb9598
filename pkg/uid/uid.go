package uid

import (
	"fmt"
	"time"

	"github.com/sony/sonyflake"
)

// UID generates process-unique, roughly time-ordered identifiers.
type UID interface {
	NextID() (uint64, error)
}

type Sonyflake struct {
	gen *sonyflake.Sonyflake
}

var _ UID = (*Sonyflake)(nil)

func NewSonyflake(startTime time.Time) (*Sonyflake, error) {
	gen := sonyflake.NewSonyflake(sonyflake.Settings{
		StartTime:      startTime,
		MachineID:      nil,
		CheckMachineID: nil,
	})

	if gen == nil {
		return nil, fmt.Errorf("sonyflake generator is nil, check machine id resolution")
	}

	return &Sonyflake{gen: gen}, nil
}

func (s *Sonyflake) NextID() (uint64, error) {
	return s.gen.NextID()
}
