package levelgen

import (
	"fmt"
	"strings"

	"github.com/milk9111/zonegen/common"
)

// ZoneID identifies a zone within a single graph. Zone 0 is the spawn zone.
type ZoneID uint32

// SpawnZoneID is the id of the zone growth starts from.
const SpawnZoneID ZoneID = 0

const (
	baseZoneSize   = 20.0
	zoneHeight     = 10.0
	corridorWidth  = 0.3
	corridorLength = 2.0
)

type ZoneType uint8

const (
	ZoneHub ZoneType = iota
	ZoneCorridor
	ZoneUtility
	ZoneIndustrial
	ZoneObjective
	ZoneStorage
)

var zoneTypeNames = [...]string{
	ZoneHub:        "hub",
	ZoneCorridor:   "corridor",
	ZoneUtility:    "utility",
	ZoneIndustrial: "industrial",
	ZoneObjective:  "objective",
	ZoneStorage:    "storage",
}

// ZoneTypes lists every zone type in declaration order.
func ZoneTypes() []ZoneType {
	return []ZoneType{ZoneHub, ZoneCorridor, ZoneUtility, ZoneIndustrial, ZoneObjective, ZoneStorage}
}

func (t ZoneType) String() string {
	if int(t) < len(zoneTypeNames) {
		return zoneTypeNames[t]
	}
	return fmt.Sprintf("zonetype(%d)", uint8(t))
}

func (t ZoneType) MarshalText() ([]byte, error) {
	if int(t) >= len(zoneTypeNames) {
		return nil, fmt.Errorf("unknown zone type %d", uint8(t))
	}
	return []byte(zoneTypeNames[t]), nil
}

func (t *ZoneType) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for i, name := range zoneTypeNames {
		if name == s {
			*t = ZoneType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown zone type %q", s)
}

// SizeMultiplier scales the base zone footprint.
func (t ZoneType) SizeMultiplier() float64 {
	switch t {
	case ZoneHub:
		return 2.0
	case ZoneCorridor:
		return 0.5
	case ZoneUtility:
		return 0.8
	case ZoneIndustrial:
		return 2.5
	case ZoneObjective:
		return 1.5
	default:
		return 1.0
	}
}

// MaxConnections caps how many neighbours a zone of this type may have.
func (t ZoneType) MaxConnections() int {
	switch t {
	case ZoneHub:
		return 5
	case ZoneIndustrial:
		return 4
	case ZoneCorridor, ZoneUtility, ZoneObjective:
		return 2
	default:
		return 1
	}
}

// Zone is a rectangular room in the level.
type Zone struct {
	ID          ZoneID      `yaml:"id"`
	Type        ZoneType    `yaml:"type"`
	Position    common.Vec3 `yaml:"position"`
	Size        common.Vec3 `yaml:"size"`
	Connections []ZoneID    `yaml:"connections"`
	// IsBuilt is never set by generation or physics building.
	IsBuilt bool `yaml:"is_built"`
}

// NewZone creates a zone with its size derived from the type.
func NewZone(id ZoneID, t ZoneType, pos common.Vec3) *Zone {
	var size common.Vec3
	if t == ZoneCorridor {
		size = common.Vec3{X: baseZoneSize * corridorWidth, Y: zoneHeight, Z: baseZoneSize * corridorLength}
	} else {
		m := t.SizeMultiplier()
		size = common.Vec3{X: baseZoneSize * m, Y: zoneHeight, Z: baseZoneSize * m}
	}
	return &Zone{
		ID:       id,
		Type:     t,
		Position: pos,
		Size:     size,
	}
}

// HasConnection reports whether z is linked to other.
func (z *Zone) HasConnection(other ZoneID) bool {
	for _, c := range z.Connections {
		if c == other {
			return true
		}
	}
	return false
}

// RemainingCapacity is the number of further connections z may accept.
func (z *Zone) RemainingCapacity() int {
	r := z.Type.MaxConnections() - len(z.Connections)
	if r < 0 {
		return 0
	}
	return r
}

func (z *Zone) connect(other ZoneID) {
	if z.HasConnection(other) {
		return
	}
	z.Connections = append(z.Connections, other)
}

// ZoneConnection is a door between two zones.
type ZoneConnection struct {
	From            ZoneID      `yaml:"from"`
	To              ZoneID      `yaml:"to"`
	DoorPosition    common.Vec3 `yaml:"door_position"`
	DoorOrientation common.Quat `yaml:"door_orientation"`
}

func newZoneConnection(from, to *Zone) ZoneConnection {
	dir := to.Position.Sub(from.Position).Normalize()
	orientation := common.QuatIdentity
	if dir != (common.Vec3{}) {
		orientation = common.RotationArc(common.Forward, dir)
	}
	return ZoneConnection{
		From:            from.ID,
		To:              to.ID,
		DoorPosition:    common.Midpoint(from.Position, to.Position),
		DoorOrientation: orientation,
	}
}
