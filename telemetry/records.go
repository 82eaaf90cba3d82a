package telemetry

import (
	"time"

	"github.com/mitsuyukiLab/tpg-ship-sim/base"
	"github.com/mitsuyukiLab/tpg-ship-sim/ship"
	"github.com/mitsuyukiLab/tpg-ship-sim/support"
)

// timestamp renders a unix time the way the log consumers expect.
func timestamp(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("2006-01-02 15:04:05")
}

// ShipRecord is one tick of the generation ship log.
type ShipRecord struct {
	Unixtime int64  `csv:"unixtime"`
	Datetime string `csv:"datetime"`

	TargetTyphoon    int     `csv:"TARGET TYPHOON"`
	TargetLat        float64 `csv:"TARGET TY LAT"`
	TargetLon        float64 `csv:"TARGET TY LON"`
	TargetDistanceKm float64 `csv:"TARGET DISTANCE[km]"`

	Lat     float64 `csv:"TPGSHIP LAT"`
	Lon     float64 `csv:"TPGSHIP LON"`
	Status  int     `csv:"TPGSHIP STATUS"`
	SpeedKt float64 `csv:"SHIP SPEED[kt]"`

	TimestepGenerationWh  float64 `csv:"TIMESTEP POWER GENERATION[Wh]"`
	TotalGeneTimeH        float64 `csv:"TOTAL GENE TIME[h]"`
	TotalGenerationWh     float64 `csv:"TOTAL POWER GENERATION[Wh]"`
	TotalGeneCarrierWh    float64 `csv:"TOTAL GENE CARRIER[Wh]"`
	TimestepConsumptionWh float64 `csv:"TIMESTEP POWER CONSUMPTION[Wh]"`
	TotalConsTimeH        float64 `csv:"TOTAL CONS TIME[h]"`
	TotalConsumptionWh    float64 `csv:"TOTAL POWER CONSUMPTION[Wh]"`
	WindTrustWorkWh       float64 `csv:"WIND TRUST WORK[Wh]"`

	WindU     float64 `csv:"WIND U[m/s]"`
	WindV     float64 `csv:"WIND V[m/s]"`
	WindState float64 `csv:"WIND STATE"`

	StoragePer          float64 `csv:"ONBOARD POWER STORAGE PER[%]"`
	StorageWh           float64 `csv:"ONBOARD ENERGY STORAGE[Wh]"`
	EPStorageWh         float64 `csv:"ONBOARD ELECTRIC PROPULSION STORAGE[Wh]"`
	TotalSupplyWh       float64 `csv:"TOTAL SUPPLY ELECTRICITY[Wh]"`
	MinusStoragePenalty float64 `csv:"MINUS STORAGE PENALTY"`
}

// NewShipRecord snapshots the generation ship after one tick.
func NewShipRecord(now int64, s *ship.Ship) ShipRecord {
	rec := ShipRecord{
		Unixtime: now,
		Datetime: timestamp(now),

		Lat:     s.Lat,
		Lon:     s.Lon,
		Status:  s.State,
		SpeedKt: s.SpeedKt,

		TimestepGenerationWh:  s.GeneratedWh,
		TotalGeneTimeH:        s.TotalGeneHours,
		TotalGenerationWh:     s.SumGeneratedWh,
		TotalGeneCarrierWh:    s.SumGeneCarrierWh,
		TimestepConsumptionWh: s.LossWh,
		TotalConsTimeH:        s.TotalLossHours,
		TotalConsumptionWh:    s.SumLossWh,
		WindTrustWorkWh:       s.BrakeWindWorkWh,

		WindU:     s.WindU,
		WindV:     s.WindV,
		WindState: s.WindState,

		StoragePer:          s.StoragePercentage(),
		StorageWh:           s.StorageWh,
		EPStorageWh:         s.EPStorageWh,
		TotalSupplyWh:       s.SumSupplyWh,
		MinusStoragePenalty: s.MinusStoragePenalty,
	}
	if s.HasTarget {
		rec.TargetTyphoon = s.Target.Number
		rec.TargetLat = s.Target.Lat
		rec.TargetLon = s.Target.Lon
		rec.TargetDistanceKm = s.Target.DistanceKm
	}
	return rec
}

// BaseRecord is one tick of a storage or supply base log.
type BaseRecord struct {
	Unixtime int64  `csv:"unixtime"`
	Datetime string `csv:"datetime"`

	StorageWh       float64 `csv:"STORAGE[Wh]"`
	StoragePer      float64 `csv:"STORAGE PER[%]"`
	TotalReceivedWh float64 `csv:"TOTAL QUANTITY RECEIVED[Wh]"`
	TotalSupplyWh   float64 `csv:"TOTAL SUPPLY[Wh]"`
}

// NewBaseRecord snapshots a base after one tick.
func NewBaseRecord(now int64, b *base.Base) BaseRecord {
	return BaseRecord{
		Unixtime:        now,
		Datetime:        timestamp(now),
		StorageWh:       b.StorageWh,
		StoragePer:      b.StoragePercentage(),
		TotalReceivedWh: b.TotalReceivedWh,
		TotalSupplyWh:   b.TotalSupplyWh,
	}
}

// SupportRecord is one tick of a support shuttle log.
type SupportRecord struct {
	Unixtime int64  `csv:"unixtime"`
	Datetime string `csv:"datetime"`

	TargetLat float64 `csv:"targetLAT"`
	TargetLon float64 `csv:"targetLON"`
	Lat       float64 `csv:"LAT"`
	Lon       float64 `csv:"LON"`

	StorageWh          float64 `csv:"STORAGE[Wh]"`
	StoragePer         float64 `csv:"STORAGE PER[%]"`
	EPStorageWh        float64 `csv:"EP STORAGE[Wh]"`
	TotalConsumptionWh float64 `csv:"TOTAL CONSUMPTION ELECT[Wh]"`
	TotalReceivedWh    float64 `csv:"TOTAL RECEIVED ELECT[Wh]"`
}

// NewSupportRecord snapshots a support shuttle after one tick.
func NewSupportRecord(now int64, sp *support.Ship) SupportRecord {
	return SupportRecord{
		Unixtime:           now,
		Datetime:           timestamp(now),
		TargetLat:          sp.TargetLat,
		TargetLon:          sp.TargetLon,
		Lat:                sp.Lat,
		Lon:                sp.Lon,
		StorageWh:          sp.StorageWh,
		StoragePer:         sp.StoragePercentage(),
		EPStorageWh:        sp.EPStorageWh,
		TotalConsumptionWh: sp.TotalConsumptionWh,
		TotalReceivedWh:    sp.TotalReceivedWh,
	}
}
