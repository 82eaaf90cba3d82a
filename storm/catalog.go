package storm

import (
	"github.com/mlange-42/ark/ecs"
)

// Position is the current fix of an active typhoon.
type Position struct {
	Lat float64
	Lon float64
}

// Meta identifies an active typhoon entity.
type Meta struct {
	Number      int
	GenesisUnix int64
	LastFixUnix int64
}

// Catalog maintains the set of typhoons active at the current simulation
// time as ECS entities. Entities spawn at a typhoon's first fix and are
// removed once its track ends.
type Catalog struct {
	tracks *TrackSet

	world    *ecs.World
	mapper   *ecs.Map2[Position, Meta]
	filter   *ecs.Filter2[Position, Meta]
	entities map[int]ecs.Entity
}

// NewCatalog builds a catalog over a track set.
func NewCatalog(tracks *TrackSet) *Catalog {
	world := ecs.NewWorld()
	return &Catalog{
		tracks:   tracks,
		world:    world,
		mapper:   ecs.NewMap2[Position, Meta](world),
		filter:   ecs.NewFilter2[Position, Meta](world),
		entities: make(map[int]ecs.Entity),
	}
}

// Advance updates the world to the given time: new typhoons spawn, active
// ones move to their fix, expired ones are removed.
func (c *Catalog) Advance(now int64) {
	// Expire tracks that ended before now.
	for num, e := range c.entities {
		if last, ok := c.tracks.LastFixTime(num); ok && last < now {
			c.world.RemoveEntity(e)
			delete(c.entities, num)
		}
	}

	for _, p := range c.tracks.At(now) {
		if e, ok := c.entities[p.Number]; ok {
			pos, _ := c.mapper.Get(e)
			pos.Lat = p.Lat
			pos.Lon = p.Lon
			continue
		}
		genesis, _ := c.tracks.GenesisTime(p.Number)
		last, _ := c.tracks.LastFixTime(p.Number)
		pos := Position{Lat: p.Lat, Lon: p.Lon}
		meta := Meta{Number: p.Number, GenesisUnix: genesis, LastFixUnix: last}
		c.entities[p.Number] = c.mapper.NewEntity(&pos, &meta)
	}
}

// Active returns the currently active typhoons in number order.
func (c *Catalog) Active() []TrackPoint {
	var out []TrackPoint
	query := c.filter.Query()
	for query.Next() {
		pos, meta := query.Get()
		out = append(out, TrackPoint{Number: meta.Number, Lat: pos.Lat, Lon: pos.Lon})
	}
	// Query order is archetype order; callers expect number order.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Number < out[j-1].Number; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// ActiveCount returns the number of typhoons alive at the current time.
func (c *Catalog) ActiveCount() int {
	n := 0
	query := c.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Tracks exposes the underlying track set.
func (c *Catalog) Tracks() *TrackSet {
	return c.tracks
}
