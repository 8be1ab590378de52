package ft8xx

import (
	"fmt"

	"evedecode/internal/common"
	"evedecode/internal/eve"
)

// Config selects the chip variant the decoder checks against.
type Config struct {
	Family eve.Family
	Touch  eve.TouchMode
}

// NewConfig returns a configuration accepting every family and touch engine.
func NewConfig() *Config {
	return &Config{
		Family: eve.FamilyAny,
		Touch:  eve.TouchAny,
	}
}

// SetFamily selects the family by name ("any", "ft80x", "ft81x", "bt81x").
func (c *Config) SetFamily(name string) *common.Error {
	f, ok := eve.ParseFamily(name)
	if !ok {
		return common.NewErrorMsg(eve.ErrSevError, eve.ErrUnknownFamily, fmt.Sprintf("unknown chip family %q", name))
	}
	c.Family = f
	return nil
}

// SetTouchMode selects the touch engine by name ("any", "resistive", "capacitive").
// FT80x parts only have the resistive engine.
func (c *Config) SetTouchMode(name string) *common.Error {
	t, ok := eve.ParseTouchMode(name)
	if !ok {
		return common.NewErrorMsg(eve.ErrSevError, eve.ErrInvalidParamVal, fmt.Sprintf("unknown touch mode %q", name))
	}
	c.Touch = t
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("family=%s touch=%s", c.Family, c.Touch)
}
