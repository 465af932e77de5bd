package quality

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopfloor-io/shopfloor/internal/shared/id"
)

// GateConfig defines one quality gate on a machine: a mandatory test due
// every testFrequencyHours or every productsPerTest units, whichever
// condition trips first. The two conditions are evaluated independently.
type GateConfig struct {
	id                 uint
	sid                string
	machineID          uint
	testName           string
	testFrequencyHours float64
	productsPerTest    int
	isRequired         bool
	blockProduction    bool
	minPassRate        float64
	isActive           bool
	createdAt          time.Time
	updatedAt          time.Time
	mu                 sync.RWMutex
}

func NewGateConfig(
	machineID uint,
	testName string,
	testFrequencyHours float64,
	productsPerTest int,
	isRequired bool,
	blockProduction bool,
	minPassRate float64,
) (*GateConfig, error) {
	if machineID == 0 {
		return nil, fmt.Errorf("machine ID is required")
	}
	if len(testName) == 0 {
		return nil, fmt.Errorf("test name is required")
	}
	if len(testName) > 100 {
		return nil, fmt.Errorf("test name exceeds maximum length of 100 characters")
	}
	if testFrequencyHours <= 0 && productsPerTest <= 0 {
		return nil, fmt.Errorf("at least one of test frequency or products per test must be set")
	}
	if testFrequencyHours < 0 || productsPerTest < 0 {
		return nil, fmt.Errorf("thresholds cannot be negative")
	}
	if minPassRate < 0 || minPassRate > 100 {
		return nil, fmt.Errorf("min pass rate must be within [0,100]")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixGateConfig, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate gate config SID: %w", err)
	}

	now := time.Now().UTC()
	return &GateConfig{
		sid:                sid,
		machineID:          machineID,
		testName:           testName,
		testFrequencyHours: testFrequencyHours,
		productsPerTest:    productsPerTest,
		isRequired:         isRequired,
		blockProduction:    blockProduction,
		minPassRate:        minPassRate,
		isActive:           true,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

func ReconstructGateConfig(
	configID uint,
	sid string,
	machineID uint,
	testName string,
	testFrequencyHours float64,
	productsPerTest int,
	isRequired bool,
	blockProduction bool,
	minPassRate float64,
	isActive bool,
	createdAt, updatedAt time.Time,
) (*GateConfig, error) {
	if configID == 0 {
		return nil, fmt.Errorf("config ID cannot be zero")
	}
	if machineID == 0 {
		return nil, fmt.Errorf("machine ID is required")
	}
	if sid == "" {
		return nil, fmt.Errorf("config SID is required")
	}

	return &GateConfig{
		id:                 configID,
		sid:                sid,
		machineID:          machineID,
		testName:           testName,
		testFrequencyHours: testFrequencyHours,
		productsPerTest:    productsPerTest,
		isRequired:         isRequired,
		blockProduction:    blockProduction,
		minPassRate:        minPassRate,
		isActive:           isActive,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

func (c *GateConfig) ID() uint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.id
}

func (c *GateConfig) SID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sid
}

func (c *GateConfig) MachineID() uint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.machineID
}

func (c *GateConfig) TestName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.testName
}

func (c *GateConfig) TestFrequencyHours() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.testFrequencyHours
}

func (c *GateConfig) ProductsPerTest() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.productsPerTest
}

func (c *GateConfig) IsRequired() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isRequired
}

func (c *GateConfig) BlockProduction() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.blockProduction
}

func (c *GateConfig) MinPassRate() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.minPassRate
}

func (c *GateConfig) IsActive() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isActive
}

func (c *GateConfig) CreatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.createdAt
}

func (c *GateConfig) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}

func (c *GateConfig) SetID(configID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.id != 0 {
		return fmt.Errorf("config ID is already set")
	}
	if configID == 0 {
		return fmt.Errorf("config ID cannot be zero")
	}
	c.id = configID
	return nil
}

// Deactivate retires the gate without deleting its test history.
func (c *GateConfig) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.isActive = false
	c.updatedAt = time.Now().UTC()
}
