package ship

import (
	"math"

	"github.com/mitsuyukiLab/tpg-ship-sim/geo"
	"github.com/mitsuyukiLab/tpg-ship-sim/storm"
)

// bestTarget scores every forecast point over open sea and returns the one
// with the best time effect. The score trades projected generation hours
// against intercept hours through the forecast weight; interceptions that
// need more than judgeTimeTimes of the typhoon's own travel time are out.
func (s *Ship) bestTarget(env Env) (Target, bool) {
	cfg := s.cfg

	speedKmh := geo.KtToKmh(s.SpeedKt)
	if speedKmh == 0 {
		speedKmh = geo.KtToKmh(cfg.MaxSpeedKt)
	}

	// Latest forecast fix per typhoon, for the generation-hours estimate.
	forecastEnd := make(map[int]int64)
	for _, p := range env.Forecast {
		if p.ValidUnix > forecastEnd[p.Number] {
			forecastEnd[p.Number] = p.ValidUnix
		}
	}

	var best Target
	found := false
	meanLifeUnix := int64(typhoonMeanLifeH * 3600)

	for _, p := range env.Forecast {
		if !storm.OverOpenSea(p.Lat, p.Lon) {
			continue
		}

		end := forecastEnd[p.Number]
		genesis := env.GenesisTimes[p.Number]

		// A typhoon still alive at the forecast edge is assumed to last
		// its mean life from genesis; otherwise it dies where the
		// forecast says it does.
		var geneH float64
		if end == env.LastForecast && end-genesis < meanLifeUnix {
			geneH = float64(genesis+meanLifeUnix-p.ValidUnix) / 3600
		} else {
			geneH = float64(end-p.ValidUnix) / 3600
		}

		dist := geo.Distance(s.Position(), geo.Point{Lat: p.Lat, Lon: p.Lon})
		catchH := math.Ceil(dist / speedKmh)
		arrivalH := float64((p.ValidUnix - env.Now) / 3600)

		if catchH/arrivalH > cfg.JudgeTimeTimes {
			continue
		}
		if arrivalH > catchH {
			catchH = arrivalH
		}

		effect := geneH*cfg.ForecastWeight - catchH*(100-cfg.ForecastWeight)

		cand := Target{
			Number:     p.Number,
			Lat:        p.Lat,
			Lon:        p.Lon,
			ValidUnix:  p.ValidUnix,
			DistanceKm: dist,
			CatchH:     catchH,
			GeneH:      geneH,
			TimeEffect: effect,
		}
		if !found || betterTarget(cand, best) {
			best = cand
			found = true
		}
	}
	return best, found
}

// betterTarget orders candidates by time effect, then longer generation,
// then quicker intercept.
func betterTarget(a, b Target) bool {
	if a.TimeEffect != b.TimeEffect {
		return a.TimeEffect > b.TimeEffect
	}
	if a.GeneH != b.GeneH {
		return a.GeneH > b.GeneH
	}
	return a.CatchH < b.CatchH
}

// nextTargetPos is the tracked typhoon's forecast position one tick ahead.
func (s *Ship) nextTargetPos(env Env) (geo.Point, bool) {
	next := env.Now + int64(env.StepHours)*3600
	for _, p := range env.Forecast {
		if p.ValidUnix == next && p.Number == s.Target.Number {
			return geo.Point{Lat: p.Lat, Lon: p.Lon}, true
		}
	}
	return geo.Point{}, false
}

// returnBaseAction points the ship home to unload. Arrival within the tick
// docks it: cargo above the operational reserve moves ashore up to the
// base's headroom.
func (s *Ship) returnBaseAction(env Env) {
	s.targetPoint(s.BaseLat, s.BaseLon)
	s.GoBase = true
	s.SpeedKt = s.cfg.ReturnSpeedKt

	hours := geo.Distance(s.Position(), geo.Point{Lat: s.BaseLat, Lon: s.BaseLon}) /
		geo.KtToKmh(s.SpeedKt)
	if hours <= float64(env.StepHours) {
		s.GoBase = false
		s.ViaBase = false
		s.SpeedKt = 0
		s.unloadCargo(env.BaseHeadroom)
		s.geneJudge = false
		s.lossJudge = false
		s.State = StateStandby
	} else {
		s.geneJudge = false
		s.lossJudge = true
		s.State = StateTransit
	}
}

// returnStandbyAction heads for the standby point. When the standby point
// is the base itself, docking also unloads and recharges the battery.
func (s *Ship) returnStandbyAction(env Env) {
	s.targetPoint(s.StandbyLat, s.StandbyLon)
	s.SpeedKt = s.cfg.ReturnSpeedKt

	hours := geo.Distance(s.Position(), geo.Point{Lat: s.StandbyLat, Lon: s.StandbyLon}) /
		geo.KtToKmh(s.SpeedKt)
	if hours <= float64(env.StepHours) {
		s.SpeedKt = 0
		s.geneJudge = false
		s.lossJudge = false

		if s.StandbyLat == s.BaseLat && s.StandbyLon == s.BaseLon {
			s.unloadCargo(env.BaseHeadroom)
			s.EPStorageWh = s.cfg.ElectricPropulsionMaxStorageWh
		}
		s.State = StateStandby
	} else {
		s.geneJudge = false
		s.lossJudge = true
		s.State = StateTransit
	}
}

// unloadCargo moves everything above the operational reserve ashore,
// capped by what the base can still take.
func (s *Ship) unloadCargo(baseHeadroom float64) {
	reserve := s.cfg.MaxStorageWh * s.cfg.OperationalReservePercentage / 100
	if s.StorageWh >= reserve {
		surplus := s.StorageWh - reserve
		if surplus > baseHeadroom {
			surplus = baseHeadroom
		}
		s.SupplyElectWh = surplus
		s.StorageWh -= surplus
	} else {
		s.SupplyElectWh = 0
	}
	s.SumSupplyWh += s.SupplyElectWh
}

// chaseAction closes on the selected typhoon at whatever speed arrives on
// time, up to flank. When the intercept falls inside this tick, the ship
// is on station and generating. A worthwhile detour over the base is
// taken when the hold is full enough.
func (s *Ship) chaseAction(env Env) (distanceCheck bool) {
	cfg := s.cfg
	s.SpeedKt = cfg.MaxSpeedKt
	maxKmh := geo.KtToKmh(cfg.MaxSpeedKt)

	trackingKmh := s.Target.DistanceKm / s.Target.CatchH
	if trackingKmh <= maxKmh {
		s.SpeedKt = trackingKmh / 1.852
	}

	s.targetPoint(s.Target.Lat, s.Target.Lon)

	if s.Target.CatchH <= float64(env.StepHours) {
		s.SpeedKt = s.Design.GeneratingSpeedKt
		s.geneJudge = true
		s.lossJudge = false
		s.State = StateGenerating
	} else {
		s.geneJudge = false
		s.lossJudge = true
		s.State = StateChasing
		distanceCheck = true
	}

	// Detour over the base: worth it with enough cargo aboard when the
	// round goes base-then-typhoon without missing the intercept, or when
	// the base is nearer and nearly on the way.
	shipPos := s.Position()
	basePos := geo.Point{Lat: s.BaseLat, Lon: s.BaseLon}
	tyPos := geo.Point{Lat: s.targetLat, Lon: s.targetLon}

	dirTY := geo.RelativeDirection(shipPos, tyPos)
	dirBase := geo.RelativeDirection(shipPos, basePos)
	dirDiff := math.Abs(dirTY - dirBase)

	needKm := geo.Distance(shipPos, basePos) + geo.Distance(tyPos, basePos)
	needH := needKm / maxKmh

	tyKm := geo.Distance(shipPos, tyPos)
	baseKm := geo.Distance(shipPos, basePos)

	s.ViaBase = false
	if s.StoragePercentage() >= cfg.GoviaBaseJudgeStoragePer {
		if needH <= s.Target.CatchH ||
			(dirDiff < bearingJudgeDeg && tyKm > baseKm) {
			s.SpeedKt = cfg.MaxSpeedKt
			s.ViaBase = true
			s.returnBaseAction(env)
		}
	}
	return distanceCheck
}

// targetLat/targetLon hold the current navigation destination.
func (s *Ship) targetPoint(lat, lon float64) {
	s.targetLat = lat
	s.targetLon = lon
}

// nextState is the agent's decision rule, evaluated once per tick:
// a full hold or a standing order sends it home, no typhoon sends it to
// standby, otherwise it chases the best candidate and generates once on
// station.
func (s *Ship) nextState(env Env) {
	cfg := s.cfg
	distanceCheck := false
	s.StandbyViaBase = false

	var nextTY geo.Point
	var nextTYKnown bool

	if s.StoragePercentage() >= fullStoragePer || s.GoBase {
		s.SpeedKt = cfg.ReturnSpeedKt
		s.returnBaseAction(env)

		target, ok := s.bestTarget(env)
		switch {
		case !ok || s.StoragePercentage() >= fullStoragePer:
			s.HasTarget = false
			s.Target = Target{}

		case s.StoragePercentage() >= cfg.GoviaBaseJudgeStoragePer && s.ViaBase:
			// Still bound for the typhoon by way of the base. A moved
			// forecast reopens the chase decision.
			s.SpeedKt = cfg.MaxSpeedKt
			moved := target.Lat != s.Target.Lat || target.Lon != s.Target.Lon
			s.Target = target
			s.HasTarget = true
			nextTY, nextTYKnown = s.nextTargetPos(env)
			if moved {
				distanceCheck = s.chaseAction(env)
			}
		}
	} else {
		s.SpeedKt = cfg.MaxSpeedKt
		target, ok := s.bestTarget(env)

		if !ok {
			s.HasTarget = false
			s.Target = Target{}
			if s.StoragePercentage() >= cfg.GoviaBaseJudgeStoragePer {
				s.returnBaseAction(env)
				s.StandbyViaBase = true
			} else {
				s.returnStandbyAction(env)
			}
		} else {
			s.Target = target
			s.HasTarget = true
			nextTY, nextTYKnown = s.nextTargetPos(env)
			distanceCheck = s.chaseAction(env)
		}
	}

	s.advance(env)

	// One tick ahead the typhoon may already be in range even though the
	// nominal intercept is not; generate early in that case.
	if distanceCheck {
		if nextTYKnown &&
			geo.Distance(s.Position(), nextTY) <= cfg.TyphoonEffectiveRangeKm {
			s.geneJudge = true
			s.lossJudge = false
			s.State = StateGenerating
		} else {
			s.geneJudge = false
			s.lossJudge = true
			s.State = StateChasing
		}
	}
}

// advance moves the ship toward its destination for one tick, snapping to
// the destination when it is reachable within the tick.
func (s *Ship) advance(env Env) {
	dest := geo.Point{Lat: s.targetLat, Lon: s.targetLon}
	kmh := geo.KtToKmh(s.SpeedKt)
	next := geo.Advance(s.Position(), dest, kmh, float64(env.StepHours))
	s.Lat = next.Lat
	s.Lon = next.Lon
}
